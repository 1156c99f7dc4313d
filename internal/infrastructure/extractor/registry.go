package extractor

import (
	"strings"

	"github.com/inflective/voice-reader/internal/core/domain"
	"github.com/inflective/voice-reader/internal/core/ports"
	"github.com/inflective/voice-reader/internal/infrastructure/extractor/fallback"
	"github.com/inflective/voice-reader/internal/infrastructure/extractor/imagedoc"
	"github.com/inflective/voice-reader/internal/infrastructure/extractor/pdfdoc"
	"github.com/inflective/voice-reader/internal/infrastructure/extractor/plaintext"
	"github.com/inflective/voice-reader/internal/infrastructure/extractor/tabular"
	"github.com/inflective/voice-reader/internal/infrastructure/extractor/worddoc"
)

type entry struct {
	extractor ports.FormatExtractor
	modality  domain.ContentModality
}

// Registry maps lower-cased file extensions to extractors. Lookup is total:
// unknown extensions get the fallback entry.
type Registry struct {
	entries  map[string]entry
	fallback entry
}

func NewRegistry(fb ports.FormatExtractor, fbModality domain.ContentModality) *Registry {
	return &Registry{
		entries:  make(map[string]entry),
		fallback: entry{extractor: fb, modality: fbModality},
	}
}

// Register binds an extension (with leading dot) to an extractor and the
// modality its output carries. Adding a format is one registration call.
func (r *Registry) Register(ext string, x ports.FormatExtractor, m domain.ContentModality) {
	r.entries[strings.ToLower(ext)] = entry{extractor: x, modality: m}
}

func (r *Registry) Lookup(ext string) (ports.FormatExtractor, domain.ContentModality) {
	if e, ok := r.entries[strings.ToLower(ext)]; ok {
		return e.extractor, e.modality
	}
	return r.fallback.extractor, r.fallback.modality
}

var imageMIMETypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// NewDefaultRegistry wires every supported format.
func NewDefaultRegistry(vision ports.VisionDescriber) *Registry {
	r := NewRegistry(fallback.New(), domain.ModalityUnknownFile)

	r.Register(".pdf", pdfdoc.New(), domain.ModalityPDFDocument)

	word := worddoc.New()
	r.Register(".doc", word, domain.ModalityWordDocument)
	r.Register(".docx", word, domain.ModalityWordDocument)

	plain := plaintext.New()
	r.Register(".txt", plain, domain.ModalityTextDocument)
	r.Register(".md", plain, domain.ModalityTextDocument)

	r.Register(".csv", tabular.NewCSV(), domain.ModalityStructuredData)
	workbook := tabular.NewWorkbook()
	r.Register(".xlsx", workbook, domain.ModalityStructuredData)
	r.Register(".xls", workbook, domain.ModalityStructuredData)

	for ext, mimeType := range imageMIMETypes {
		r.Register(ext, imagedoc.New(vision, mimeType), domain.ModalityImageVisual)
	}

	return r
}

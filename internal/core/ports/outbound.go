package ports

import (
	"context"

	"github.com/inflective/voice-reader/internal/core/domain"
)

// URLFetcher retrieves a remote page as plain text. Implementations are
// responsible for refusing private/internal network targets.
type URLFetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// FormatExtractor turns one recognized byte format into extracted text.
type FormatExtractor interface {
	Extract(ctx context.Context, payload []byte) (string, error)
}

// ExtractorRegistry selects the extractor and modality for a file extension.
// Lookup is total: unrecognized extensions get the fallback extractor.
type ExtractorRegistry interface {
	Lookup(ext string) (FormatExtractor, domain.ContentModality)
}

// ScriptGenerator converts normalized text plus its modality into a
// narration-ready spoken-style script.
type ScriptGenerator interface {
	GenerateScript(ctx context.Context, text string, modality domain.ContentModality) (string, error)
}

// SpeechSynthesizer renders a narration script to encoded audio bytes (MP3).
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, script string) ([]byte, error)
}

// Transcriber converts recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// VisionDescriber produces a narration-ready description of an image.
type VisionDescriber interface {
	DescribeImage(ctx context.Context, image []byte, mimeType string) (string, error)
}

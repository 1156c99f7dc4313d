package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/inflective/voice-reader/internal/core/domain"
	"github.com/inflective/voice-reader/internal/core/ports"
)

var urlPattern = regexp.MustCompile(`(?i)^https?://`)

// NormalizeContentUseCase funnels every entry path (pasted text, URLs, file
// uploads) into narration-ready text plus a modality label. Normalize never
// fails: extraction and fetch problems degrade to explanatory text so the
// narrator can tell the listener what went wrong.
type NormalizeContentUseCase struct {
	fetcher  ports.URLFetcher
	registry ports.ExtractorRegistry
	observer ports.PipelineObserver
	logger   *slog.Logger
}

func NewNormalizeContentUseCase(
	fetcher ports.URLFetcher,
	registry ports.ExtractorRegistry,
	observer ports.PipelineObserver,
	logger *slog.Logger,
) *NormalizeContentUseCase {
	if observer == nil {
		observer = ports.NopObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NormalizeContentUseCase{
		fetcher:  fetcher,
		registry: registry,
		observer: observer,
		logger:   logger,
	}
}

func (uc *NormalizeContentUseCase) Normalize(ctx context.Context, input domain.RawInput) domain.NormalizedContent {
	var result domain.NormalizedContent
	switch {
	case input.HasPayload():
		result = uc.normalizeFile(ctx, input)
	default:
		result = uc.normalizeText(ctx, input.Text)
	}

	if strings.TrimSpace(result.Text) == "" {
		result.Text = domain.PlaceholderEmptyInput
	}
	uc.observer.NormalizationCompleted(result.Modality)
	return result
}

func (uc *NormalizeContentUseCase) normalizeFile(ctx context.Context, input domain.RawInput) domain.NormalizedContent {
	ext := strings.ToLower(filepath.Ext(input.Filename))
	extractor, modality := uc.registry.Lookup(ext)

	text, err := extractor.Extract(ctx, input.Payload)
	if err != nil {
		uc.observer.ExtractionFailed(ext)
		uc.logger.Warn("extraction_degraded",
			"filename", input.Filename,
			"ext", ext,
			"modality", modality,
			"error", err,
		)
		text = domain.PlaceholderUnparsedFile
	}
	return domain.NormalizedContent{Text: text, Modality: modality}
}

func (uc *NormalizeContentUseCase) normalizeText(ctx context.Context, raw string) domain.NormalizedContent {
	trimmed := strings.TrimSpace(raw)
	if !urlPattern.MatchString(trimmed) {
		return domain.NormalizedContent{Text: trimmed, Modality: domain.ModalityDirectText}
	}

	page, err := uc.fetcher.Fetch(ctx, trimmed)
	if err != nil {
		uc.observer.FetchFailed(err)
		uc.logger.Warn("url_fetch_degraded", "url", trimmed, "error", err)
		page = fmt.Sprintf("Failed to fetch URL %s: %v", trimmed, err)
	}
	return domain.NormalizedContent{Text: page, Modality: domain.ModalityRemoteURL}
}

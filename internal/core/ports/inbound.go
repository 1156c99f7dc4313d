package ports

import (
	"context"

	"github.com/inflective/voice-reader/internal/core/domain"
)

// ContentNormalizer is the inbound contract for the normalization stage.
// Normalize is total: it always yields usable text, downgrading failures to
// explanatory placeholder content.
type ContentNormalizer interface {
	Normalize(ctx context.Context, input domain.RawInput) domain.NormalizedContent
}

// Narrator is the inbound contract for the full narration pipeline.
type Narrator interface {
	// NarrateContent normalizes raw input, generates a narration script and
	// renders it to MP3 bytes.
	NarrateContent(ctx context.Context, input domain.RawInput) ([]byte, error)
	// NarrateSpeech transcribes recorded audio and narrates the transcript.
	NarrateSpeech(ctx context.Context, audio []byte, filename string) ([]byte, error)
}

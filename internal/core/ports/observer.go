package ports

import (
	"time"

	"github.com/inflective/voice-reader/internal/core/domain"
)

// PipelineObserver receives pipeline events for instrumentation. Methods must
// be cheap and must never fail.
type PipelineObserver interface {
	NormalizationCompleted(modality domain.ContentModality)
	FetchFailed(err error)
	ExtractionFailed(ext string)
	NarrationCompleted(entry string, duration time.Duration, audioBytes int)
}

// NopObserver discards all pipeline events.
type NopObserver struct{}

func (NopObserver) NormalizationCompleted(domain.ContentModality) {}
func (NopObserver) FetchFailed(error)                             {}
func (NopObserver) ExtractionFailed(string)                       {}
func (NopObserver) NarrationCompleted(string, time.Duration, int) {}

// Package imagedoc hands image payloads to the vision description service;
// the returned description is the "extracted text" of the image.
package imagedoc

import (
	"context"

	"github.com/inflective/voice-reader/internal/core/ports"
)

type Extractor struct {
	vision   ports.VisionDescriber
	mimeType string
}

// New builds an extractor for one image format; the registry registers one
// instance per extension so the declared mime type travels with the bytes.
func New(vision ports.VisionDescriber, mimeType string) *Extractor {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return &Extractor{vision: vision, mimeType: mimeType}
}

func (e *Extractor) Extract(ctx context.Context, payload []byte) (string, error) {
	return e.vision.DescribeImage(ctx, payload, e.mimeType)
}

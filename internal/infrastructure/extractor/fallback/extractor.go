// Package fallback handles payloads with no recognized extension: keep
// whatever reads as text, and if nothing does, explain that instead of
// handing binary noise to the narrator.
package fallback

import (
	"context"
	"strings"
	"unicode"

	"github.com/inflective/voice-reader/internal/core/domain"
)

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, payload []byte) (string, error) {
	text := strings.Map(func(r rune) rune {
		if r == '�' {
			return -1
		}
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, strings.ToValidUTF8(string(payload), "�"))

	if strings.TrimSpace(text) == "" {
		return domain.PlaceholderUnparsedFile, nil
	}
	return text, nil
}

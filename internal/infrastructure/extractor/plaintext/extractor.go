// Package plaintext decodes .txt and .md payloads. Extraction is total:
// undecodable bytes are replaced, never fatal, and valid UTF-8 passes
// through byte-for-byte.
package plaintext

import (
	"context"
	"strings"
)

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, payload []byte) (string, error) {
	return strings.ToValidUTF8(string(payload), "�"), nil
}

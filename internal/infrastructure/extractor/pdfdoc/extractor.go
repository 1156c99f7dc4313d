// Package pdfdoc extracts text from paginated PDF documents. Pages that fail
// to decode are skipped rather than failing the whole document.
package pdfdoc

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(ctx context.Context, payload []byte) (text string, err error) {
	// The pdf library panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if content, ok := pageText(reader.Page(i)); ok {
			pages = append(pages, content)
		}
	}
	return strings.Join(pages, "\n\n"), nil
}

// pageText swallows per-page failures so one broken page cannot sink the
// remaining pages.
func pageText(page pdf.Page) (text string, ok bool) {
	defer func() {
		if recover() != nil {
			text = ""
			ok = false
		}
	}()

	if page.V.IsNull() {
		return "", false
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return "", false
	}
	return content, true
}

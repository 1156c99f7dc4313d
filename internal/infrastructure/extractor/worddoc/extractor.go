// Package worddoc extracts paragraph text from Word documents. A .docx file
// is a zip archive whose word/document.xml holds the paragraph structure; the
// pre-OOXML binary .doc format is not a zip and fails parsing, which the
// dispatcher degrades to placeholder text.
package worddoc

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const documentEntry = "word/document.xml"

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, payload []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return "", fmt.Errorf("open word archive: %w", err)
	}

	for _, file := range archive.File {
		if file.Name != documentEntry {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open %s: %w", documentEntry, err)
		}
		defer rc.Close()
		return paragraphs(rc)
	}
	return "", fmt.Errorf("word archive has no %s", documentEntry)
}

// paragraphs walks the WordprocessingML stream collecting run text (<w:t>)
// and emitting one line per paragraph (<w:p>), matching how a reader sees
// the document.
func paragraphs(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var (
		out     []string
		current strings.Builder
		inText  bool
	)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				current.WriteByte('\t')
			case "br":
				current.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				out = append(out, current.String())
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	return strings.Join(out, "\n"), nil
}

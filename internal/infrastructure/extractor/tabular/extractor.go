// Package tabular turns spreadsheet and CSV payloads into a compact textual
// summary the narrator can describe instead of reading cell by cell.
package tabular

import "context"

// CSVExtractor summarizes comma-separated payloads.
type CSVExtractor struct{}

func NewCSV() *CSVExtractor {
	return &CSVExtractor{}
}

func (e *CSVExtractor) Extract(_ context.Context, payload []byte) (string, error) {
	ds, err := ParseCSV(payload)
	if err != nil {
		return "", err
	}
	return Summarize(ds), nil
}

// WorkbookExtractor summarizes xlsx workbook payloads.
type WorkbookExtractor struct{}

func NewWorkbook() *WorkbookExtractor {
	return &WorkbookExtractor{}
}

func (e *WorkbookExtractor) Extract(_ context.Context, payload []byte) (string, error) {
	ds, err := ParseWorkbook(payload)
	if err != nil {
		return "", err
	}
	return Summarize(ds), nil
}

package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Dataset is a rectangular snapshot of parsed tabular content: a header row
// plus string cells. Rows are padded or truncated to the header width.
type Dataset struct {
	Columns []string
	Rows    [][]string
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// ParseCSV reads the first record as the header row. Ragged rows are
// tolerated and squared off against the header width.
func ParseCSV(payload []byte) (Dataset, error) {
	payload = bytes.TrimPrefix(payload, utf8BOM)
	if len(bytes.TrimSpace(payload)) == 0 {
		return Dataset{}, nil
	}

	reader := csv.NewReader(bytes.NewReader(payload))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return Dataset{}, nil
		}
		return Dataset{}, fmt.Errorf("read csv header: %w", err)
	}

	ds := Dataset{Columns: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Dataset{}, fmt.Errorf("read csv row: %w", err)
		}
		ds.Rows = append(ds.Rows, squareRow(record, len(header)))
	}
	return ds, nil
}

// ParseWorkbook reads the first sheet of an xlsx workbook, first row as
// headers. The legacy binary .xls layout is not a zip container and fails
// here; the dispatcher turns that into placeholder text.
func ParseWorkbook(payload []byte) (Dataset, error) {
	book, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return Dataset{}, fmt.Errorf("open workbook: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return Dataset{}, nil
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return Dataset{}, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return Dataset{}, nil
	}

	ds := Dataset{Columns: rows[0]}
	for _, row := range rows[1:] {
		ds.Rows = append(ds.Rows, squareRow(row, len(ds.Columns)))
	}
	return ds, nil
}

func squareRow(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	squared := make([]string, width)
	copy(squared, row)
	return squared
}

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/arloliu/olsfit/errs"
)

// utf8BOM is prepended by spreadsheet tools that export CSV.
const utf8BOM = "\ufeff"

// Parse reads a CSV or XLSX upload, chosen by the extension of name.
//
// Returns errs.ErrUnsupportedFormat for any other extension.
func Parse(name string, r io.Reader) (*Table, error) {
	var (
		t   *Table
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv":
		t, err = ParseCSV(r)
	case ".xlsx":
		t, err = ParseXLSX(r, "")
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	t.Name = filepath.Base(name)

	return t, nil
}

// ParseCSV reads comma-separated values whose first record is the header.
//
// Records may have varying lengths; see NewTable for how they are aligned.
// Returns errs.ErrMalformedFile when the input is not valid CSV.
func ParseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV: %w", errs.ErrMalformedFile, err)
	}
	if len(records) == 0 {
		return nil, errs.ErrEmptyTable
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	return NewTable(header, records[1:])
}

// ParseXLSX reads one worksheet of an XLSX workbook whose first row is the header.
//
// An empty sheet name selects the first worksheet. Returns errs.ErrMalformedFile
// when the workbook or the sheet cannot be read.
func ParseXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open XLSX: %w", errs.ErrMalformedFile, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errs.ErrEmptyTable
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %q: %w", errs.ErrMalformedFile, sheet, err)
	}
	if len(rows) == 0 {
		return nil, errs.ErrEmptyTable
	}

	return NewTable(rows[0], rows[1:])
}

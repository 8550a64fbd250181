package payroll

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrBadWorkbook means the uploaded bytes could not be decoded as a spreadsheet.
	ErrBadWorkbook = errors.New("could not parse spreadsheet file")
	// ErrNoRows means the first sheet held a header row but no data rows (or nothing at all).
	ErrNoRows = errors.New("spreadsheet contains no data rows")
)

const maxXLSRows = 100000

// RawRow maps an original spreadsheet column header to the raw cell value.
type RawRow map[string]string

// ReadWorkbook decodes a spreadsheet into one RawRow per data row of the
// first sheet, using the first row as headers. Every row carries the full
// header key set; cells missing from short rows default to "".
func ReadWorkbook(r io.Reader, fileName string) ([]RawRow, error) {
	if strings.ToLower(filepath.Ext(fileName)) == ".xls" {
		return readXLS(r)
	}
	return readXLSX(r)
}

func readXLSX(r io.Reader) ([]RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadWorkbook, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return cellsToRows(rows), nil
}

func readXLS(r io.Reader) ([]RawRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadWorkbook, err)
	}
	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrBadWorkbook)
	}
	return cellsToRows(workbook.ReadAllCells(maxXLSRows)), nil
}

func cellsToRows(cells [][]string) []RawRow {
	if len(cells) == 0 {
		return nil
	}
	headers := cells[0]
	rows := make([]RawRow, 0, len(cells)-1)
	for _, cell := range cells[1:] {
		row := make(RawRow, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(cell) {
				row[header] = cell[i]
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

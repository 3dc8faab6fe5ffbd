package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadFile loads a spreadsheet into a sequence of rows keyed by header name.
// The format is chosen by extension: .csv, or .xlsx/.xls via excelize.
// Three conditions are fatal before any row processing: the file is missing,
// the file is zero bytes, or the file holds no data rows beyond the header.
func ReadFile(path string) ([]Row, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("import file not found: %s", path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("import file is empty: %s", path)
	}

	var rows []Row
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx", ".xls":
		rows, err = readExcel(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("import file contains no data rows: %s", path)
	}
	return rows, nil
}

func readCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var headers []string
	rows := make([]Row, 0, 256)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		if headers == nil {
			headers = normalizeHeaders(record)
			continue
		}
		rows = append(rows, recordToRow(headers, record))
	}
	return rows, nil
}

func readExcel(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(records) == 0 {
		return []Row{}, nil
	}

	headers := normalizeHeaders(records[0])
	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		if isBlankRecord(record) {
			continue
		}
		rows = append(rows, recordToRow(headers, record))
	}
	return rows, nil
}

// recordToRow keys cells by header name. Missing trailing cells default to
// empty string so every row exposes the full header set.
func recordToRow(headers, record []string) Row {
	row := make(Row, len(headers))
	for i, h := range headers {
		if h == "" {
			continue
		}
		if i < len(record) {
			row[h] = record[i]
		} else {
			row[h] = ""
		}
	}
	return row
}

func normalizeHeaders(record []string) []string {
	headers := make([]string, len(record))
	for i, col := range record {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(col, "\uFEFF"))
	}
	return headers
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

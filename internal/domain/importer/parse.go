package importer

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one tabular record keyed by normalized header name.
type Row map[string]string

var ErrNoHeader = errors.New("import file has no header row")

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

func allEmpty(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func mapRecord(headers, record []string) Row {
	row := make(Row, len(headers))
	for i, header := range headers {
		if header == "" {
			continue
		}
		if i < len(record) {
			row[header] = strings.TrimSpace(record[i])
		}
	}
	return row
}

// ParseCSV reads header-keyed rows. Malformed and empty rows are skipped,
// never fatal to the batch; the skip count is returned alongside the rows.
func ParseCSV(r io.Reader) ([]Row, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var headers []string
	var rows []Row
	skipped := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		if allEmpty(record) {
			continue
		}
		if headers == nil {
			headers = make([]string, len(record))
			for i, header := range record {
				headers[i] = normalizeHeader(header)
			}
			continue
		}
		rows = append(rows, mapRecord(headers, record))
	}
	if headers == nil {
		return nil, skipped, ErrNoHeader
	}
	return rows, skipped, nil
}

// ParseXLSX reads the first sheet of a workbook through the same header
// mapping as CSV.
func ParseXLSX(r io.Reader) ([]Row, int, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, 0, ErrNoHeader
	}
	records, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, 0, err
	}

	var headers []string
	var rows []Row
	skipped := 0
	for _, record := range records {
		if allEmpty(record) {
			continue
		}
		if headers == nil {
			headers = make([]string, len(record))
			for i, header := range record {
				headers[i] = normalizeHeader(header)
			}
			continue
		}
		rows = append(rows, mapRecord(headers, record))
	}
	if headers == nil {
		return nil, skipped, ErrNoHeader
	}
	return rows, skipped, nil
}

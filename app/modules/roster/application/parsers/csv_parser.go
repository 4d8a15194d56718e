package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser parses CSV roster files
type CSVParser struct{}

// NewCSVParser creates a new CSV parser
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse parses CSV data and returns a RawRoster
func (p *CSVParser) Parse(data []byte) (*RawRoster, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	// Roster exports are ragged; accept varying field counts.
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if isBlankRow(record) {
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	return &RawRoster{
		Header: records[0],
		Rows:   records[1:],
	}, nil
}

// isBlankRow reports whether every cell is empty after trimming.
func isBlankRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

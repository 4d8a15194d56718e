// Package parsers turns uploaded roster files into raw header and row
// tables. Everything beyond cell extraction (field mapping, inference)
// happens in the import normalizer.
package parsers

import (
	"bytes"
	"fmt"
	"strings"
)

// RawRoster is a parsed spreadsheet: one header row plus data rows. Rows
// may be ragged; consumers index defensively.
type RawRoster struct {
	Header []string
	Rows   [][]string
}

// Parser defines the interface for roster file parsers
type Parser interface {
	Parse(data []byte) (*RawRoster, error)
}

// ParserFactory defines the interface for creating parsers
type ParserFactory interface {
	GetParser(filename string) (Parser, error)
}

// Factory creates the appropriate parser based on file extension
type Factory struct{}

// NewFactory creates a new parser factory
func NewFactory() *Factory {
	return &Factory{}
}

// GetParser returns the appropriate parser for the given filename
func (f *Factory) GetParser(filename string) (Parser, error) {
	ext := strings.ToLower(getFileExtension(filename))

	switch ext {
	case ".csv":
		return NewCSVParser(), nil
	case ".xlsx", ".xls":
		return NewXLSXParser(), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// ParseRoster parses data using the parser matching filename, recovering
// from the two common mislabeling cases: CSV content behind an .xlsx name
// and XLSX content behind a .csv name.
func ParseRoster(filename string, data []byte) (*RawRoster, error) {
	factory := NewFactory()
	parser, err := factory.GetParser(filename)
	if err != nil {
		return nil, err
	}

	if _, isCSV := parser.(*CSVParser); isCSV && looksLikeZip(data) {
		return NewXLSXParser().Parse(data)
	}

	roster, err := parser.Parse(data)
	if err != nil {
		if _, isXLSX := parser.(*XLSXParser); isXLSX && !looksLikeZip(data) {
			if roster, csvErr := NewCSVParser().Parse(data); csvErr == nil {
				return roster, nil
			}
		}
		return nil, err
	}
	return roster, nil
}

// looksLikeZip checks the XLSX container magic bytes.
func looksLikeZip(data []byte) bool {
	return bytes.HasPrefix(data, []byte("PK"))
}

// getFileExtension extracts the file extension from a filename
func getFileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx == -1 {
		return ""
	}
	return filename[idx:]
}

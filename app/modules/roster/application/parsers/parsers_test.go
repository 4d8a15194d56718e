package parsers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFactory_GetParser(t *testing.T) {
	factory := NewFactory()
	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{name: "csv file", filename: "roster.csv", want: "csv"},
		{name: "xlsx file", filename: "roster.xlsx", want: "xlsx"},
		{name: "xls file", filename: "roster.xls", want: "xlsx"},
		{name: "unsupported file", filename: "roster.txt", wantErr: true},
		{name: "no extension", filename: "roster", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, err := factory.GetParser(tt.filename)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			switch tt.want {
			case "csv":
				_, ok := parser.(*CSVParser)
				require.True(t, ok)
			case "xlsx":
				_, ok := parser.(*XLSXParser)
				require.True(t, ok)
			default:
				t.Fatalf("unexpected parser type %q", tt.want)
			}
		})
	}
}

func TestCSVParser_Parse(t *testing.T) {
	parser := NewCSVParser()
	tests := []struct {
		name       string
		data       string
		wantErr    bool
		wantHeader []string
		wantRows   int
	}{
		{
			name:       "simple roster",
			data:       "Name,Gender,Rating\nAda Lovelace,F,2100\nBert Bobs,M,1900",
			wantHeader: []string{"Name", "Gender", "Rating"},
			wantRows:   2,
		},
		{
			name:       "blank rows skipped",
			data:       "Name,Rating\n\nAda,2100\n,,\nBert,1900\n",
			wantHeader: []string{"Name", "Rating"},
			wantRows:   2,
		},
		{
			name:       "ragged rows accepted",
			data:       "Name,Gender,Rating\nAda,F\nBert,M,1900,extra",
			wantHeader: []string{"Name", "Gender", "Rating"},
			wantRows:   2,
		},
		{
			name:    "empty file",
			data:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parser.Parse([]byte(tt.data))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantHeader, result.Header)
			require.Len(t, result.Rows, tt.wantRows)
		})
	}
}

func TestXLSXParser_Parse(t *testing.T) {
	parser := NewXLSXParser()

	t.Run("normal sheet", func(t *testing.T) {
		data := buildXLSX(t, [][]string{
			{"Name", "Gender", "Rating"},
			{"Ada Lovelace", "F", "2100"},
			{"Bert Bobs", "M", "1900"},
		})

		result, err := parser.Parse(data)
		require.NoError(t, err)
		require.Equal(t, []string{"Name", "Gender", "Rating"}, result.Header)
		require.Len(t, result.Rows, 2)
		require.Equal(t, "Ada Lovelace", result.Rows[0][0])
	})

	t.Run("empty sheet", func(t *testing.T) {
		data := buildXLSX(t, [][]string{})
		_, err := parser.Parse(data)
		require.Error(t, err)
	})

	t.Run("csv bytes behind xlsx parser", func(t *testing.T) {
		_, err := parser.Parse([]byte("Name,Rating\nAda,2100"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "csv extension")
	})
}

func TestParseRoster_MislabeledFiles(t *testing.T) {
	t.Run("csv content behind xlsx name", func(t *testing.T) {
		result, err := ParseRoster("roster.xlsx", []byte("Name,Rating\nAda,2100"))
		require.NoError(t, err)
		require.Equal(t, []string{"Name", "Rating"}, result.Header)
	})

	t.Run("xlsx content behind csv name", func(t *testing.T) {
		data := buildXLSX(t, [][]string{
			{"Name", "Rating"},
			{"Ada", "2100"},
		})

		result, err := ParseRoster("roster.csv", data)
		require.NoError(t, err)
		require.Equal(t, []string{"Name", "Rating"}, result.Header)
		require.Len(t, result.Rows, 1)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := ParseRoster("roster.pdf", []byte("x"))
		require.Error(t, err)
	})
}

func buildXLSX(t *testing.T, rows [][]string) []byte {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for idx, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, idx+1)
		require.NoError(t, err)
		cells := make([]interface{}, len(row))
		for i, val := range row {
			cells[i] = val
		}
		require.NoError(t, f.SetSheetRow(sheet, axis, &cells))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())
	return buf.Bytes()
}

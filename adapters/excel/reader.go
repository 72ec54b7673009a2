package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"surveystat/adapters/datareadiness/coercer"
	"surveystat/domain/core"
	"surveystat/domain/dataset"
	"surveystat/domain/variable"
	"surveystat/internal"
	"surveystat/internal/errors"
)

const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// DataReader loads Excel and CSV files into datasets.
type DataReader struct {
	coercer *coercer.TypeCoercer
	logger  *internal.Logger
}

// NewDataReader creates a reader using the given type coercer.
func NewDataReader(c *coercer.TypeCoercer) *DataReader {
	if c == nil {
		c = coercer.NewTypeCoercer(coercer.DefaultCoercionConfig())
	}
	return &DataReader{coercer: c, logger: internal.DefaultLogger.With("DataReader")}
}

// FormatOf derives the file format from a filename extension.
func FormatOf(filename string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", errors.Unsupported(ext)
	}
}

// ReadFile opens and reads a file from disk.
func (r *DataReader) ReadFile(path string) (*dataset.Dataset, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s file", strings.ToUpper(format))
	}
	defer f.Close()

	return r.Read(filepath.Base(path), format, f)
}

// Read parses src as format. The first row holds the column names; xlsx
// files are read from their first sheet.
func (r *DataReader) Read(name, format string, src io.Reader) (*dataset.Dataset, error) {
	start := time.Now()

	var (
		rows  [][]string
		sheet string
		err   error
	)
	switch format {
	case FormatXLSX:
		rows, sheet, err = readWorkbook(src)
	case FormatCSV:
		rows, err = readCSV(src)
	default:
		return nil, errors.Unsupported(format)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errors.InvalidInput(fmt.Sprintf("%s file must have a header row and at least one data row", strings.ToUpper(format)))
	}

	ds := &dataset.Dataset{
		ID:       core.NewDatasetID(),
		Name:     name,
		Source:   format,
		Sheet:    sheet,
		RowCount: len(rows) - 1,
		Columns:  r.columns(rows),
		LoadedAt: core.Now(),
	}
	r.logger.Info("%s file %q processed (%d columns, %d rows) in %.2fms",
		strings.ToUpper(format), name, len(ds.Columns), ds.RowCount, float64(time.Since(start).Nanoseconds())/1e6)
	return ds, nil
}

func readWorkbook(src io.Reader) ([][]string, string, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, "", errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("failed to open Excel file: %w", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, "", errors.InvalidInput("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, "", errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err))
	}
	return rows, sheets[0], nil
}

func readCSV(src io.Reader) ([][]string, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV file")
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("failed to parse CSV file: %w", err))
	}
	return rows, nil
}

// columns transposes data rows into typed columns. Short rows are padded
// with missing cells; unnamed or repeated headers get unique names, and so
// do cells beyond the last header.
func (r *DataReader) columns(rows [][]string) []variable.Column {
	data := rows[1:]
	width := len(rows[0])
	for _, row := range data {
		if len(row) > width {
			width = len(row)
		}
	}
	headerRow := make([]string, width)
	copy(headerRow, rows[0])
	if extra := width - len(rows[0]); extra > 0 {
		r.logger.Warn("%d data column(s) beyond the header row were given generated names", extra)
	}
	headers := uniqueHeaders(headerRow)

	cols := make([]variable.Column, len(headers))
	for j, header := range headers {
		raw := make([]string, len(data))
		for i, row := range data {
			if j < len(row) {
				raw[i] = row[j]
			}
		}
		cols[j] = r.coercer.CoerceColumn(header, raw)
	}
	return cols
}

func uniqueHeaders(headerRow []string) []string {
	headers := make([]string, len(headerRow))
	seen := make(map[string]int, len(headerRow))
	for i, h := range headerRow {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		seen[h]++
		if n := seen[h]; n > 1 {
			h = fmt.Sprintf("%s_%d", h, n)
		}
		headers[i] = h
	}
	return headers
}

package excel

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"surveystat/domain/variable"
	"surveystat/internal/errors"
)

func workbook(t *testing.T, sheet string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
		require.NoError(t, f.DeleteSheet("Sheet1"))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadXLSXFirstSheet(t *testing.T) {
	buf := workbook(t, "Responses", [][]interface{}{
		{"gender", "age", "satisfaction"},
		{"F", 23, "High"},
		{"M", 31, "Low"},
		{"F", "NA", "High"},
		{"M", 45},
	})

	ds, err := NewDataReader(nil).Read("survey.xlsx", FormatXLSX, buf)
	require.NoError(t, err)

	assert.Equal(t, "Responses", ds.Sheet)
	assert.Equal(t, FormatXLSX, ds.Source)
	assert.Equal(t, 4, ds.RowCount)
	require.Len(t, ds.Columns, 3)
	assert.False(t, ds.ID.String() == "")

	age, err := ds.Column("age")
	require.NoError(t, err)
	assert.Equal(t, variable.KindNumeric, age.Kind)
	assert.Equal(t, []float64{23, 31, 45}, age.Numbers())

	sat, err := ds.Column("satisfaction")
	require.NoError(t, err)
	assert.Equal(t, variable.KindTextual, sat.Kind)
	assert.Equal(t, 4, sat.Len())
	assert.Equal(t, 3, sat.PresentCount())
}

func TestReadCSV(t *testing.T) {
	src := "\xef\xbb\xbfregion,score,,score\nWest,10,a,1\nEast, 12 ,b,2\nWest,-,c\n"

	ds, err := NewDataReader(nil).Read("scores.csv", FormatCSV, strings.NewReader(src))
	require.NoError(t, err)

	names := make([]string, len(ds.Columns))
	for i, c := range ds.Columns {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"region", "score", "column_3", "score_2"}, names)
	assert.Equal(t, 3, ds.RowCount)

	score, _ := ds.Column("score")
	assert.Equal(t, variable.KindNumeric, score.Kind)
	assert.Equal(t, []float64{10, 12}, score.Numbers())

	padded, _ := ds.Column("score_2")
	assert.Equal(t, 3, padded.Len())
	assert.Equal(t, 2, padded.PresentCount())
}

func TestReadCSV_CellsBeyondHeader(t *testing.T) {
	src := "region,score\nWest,10,yes\nEast,12\nNorth,9,no,7\n"

	ds, err := NewDataReader(nil).Read("wide.csv", FormatCSV, strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, ds.Columns, 4)
	assert.Equal(t, 3, ds.RowCount)

	extra, err := ds.Column("column_3")
	require.NoError(t, err)
	assert.Equal(t, 3, extra.Len())
	assert.Equal(t, 2, extra.PresentCount())

	last, err := ds.Column("column_4")
	require.NoError(t, err)
	assert.Equal(t, []float64{7}, last.Numbers())
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "survey.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,x\n2,y\n"), 0o644))

	ds, err := NewDataReader(nil).ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "survey.csv", ds.Name)
	assert.Len(t, ds.Columns, 2)
}

func TestReadErrors(t *testing.T) {
	r := NewDataReader(nil)

	_, err := FormatOf("data.json")
	assert.Equal(t, errors.CodeUnsupported, errors.GetCode(err))

	_, err = r.Read("empty.csv", FormatCSV, strings.NewReader("a,b\n"))
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = r.Read("broken.xlsx", FormatXLSX, strings.NewReader("not a zip"))
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = r.ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestFormatOf(t *testing.T) {
	f, err := FormatOf("Survey.XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	f, err = FormatOf("/tmp/data.csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
}

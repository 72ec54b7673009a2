package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveystat/app"
	"surveystat/domain/dataset"
	"surveystat/domain/stats"
	"surveystat/internal/errors"
)

const responsesCSV = `x,y,answer,group
1,2,Yes,X
2,4,No,X
3,6,Yes,Y
4,8,Yes,Y
5,10,No,X
6,12,No,Y
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestColumnsCommand(t *testing.T) {
	file := writeTemp(t, "responses.csv", responsesCSV)

	out, err := run(t, "columns", "--file", file)
	require.NoError(t, err)

	var fields []dataset.FieldInfo
	require.NoError(t, json.Unmarshal([]byte(out), &fields))
	require.Len(t, fields, 4)
	assert.Equal(t, "x", fields[0].Name)
	assert.Equal(t, "group", fields[3].Name)
}

func TestDescribeCommand(t *testing.T) {
	file := writeTemp(t, "responses.csv", responsesCSV)

	out, err := run(t, "describe", "x", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, `"mean": 3.5`)

	_, err = run(t, "describe", "missing", "--file", file)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestAnalyzeCommandYAML(t *testing.T) {
	file := writeTemp(t, "responses.csv", responsesCSV)

	out, err := run(t, "analyze", "answer", "group", "--file", file, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "family: chi_square")
	assert.Contains(t, out, "test_name: ")
	assert.NotContains(t, out, "{")
}

func TestAnalyzeCommandFlags(t *testing.T) {
	file := writeTemp(t, "responses.csv", responsesCSV)

	out, err := run(t, "analyze", "x", "y", "--file", file, "--method", "pearson", "--lang", "id")
	require.NoError(t, err)

	var got analyzeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotNil(t, got.Verdict)
	assert.Equal(t, stats.FamilyPearson, got.Verdict.Family)
	assert.Equal(t, "id", got.Verdict.Interpretation.Language)
	assert.Empty(t, got.Warning)
}

func TestAnalyzeCommandOptionsFile(t *testing.T) {
	file := writeTemp(t, "responses.csv", responsesCSV)
	optsFile := writeTemp(t, "options.yaml", "language: id\ncorrelation_method: pearson\nsignificance_threshold: 0.01\n")

	out, err := run(t, "analyze", "x", "y", "--file", file, "--options", optsFile)
	require.NoError(t, err)

	var got analyzeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, stats.FamilyPearson, got.Verdict.Family)
	assert.Equal(t, 0.01, got.Verdict.Interpretation.Threshold)
	assert.Equal(t, "id", got.Verdict.Interpretation.Language)
}

func TestCommandErrors(t *testing.T) {
	file := writeTemp(t, "responses.csv", responsesCSV)

	_, err := run(t, "columns")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = run(t, "columns", "--file", file, "--format", "xml")
	require.Error(t, err)

	_, err = run(t, "columns", "--file", writeTemp(t, "notes.txt", "a,b\n"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnsupported, errors.GetCode(err))

	_, err = run(t, "analyze", "x", "nope", "--file", file)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

	bad := writeTemp(t, "bad.yaml", "strength_bounds: [0.5, 0.4, 0.6, 0.8]\n")
	_, err = run(t, "analyze", "x", "y", "--file", file, "--options", bad)
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
}

func TestSweepCommand(t *testing.T) {
	file := writeTemp(t, "responses.csv", responsesCSV)

	out, err := run(t, "sweep", "x", "y", "answer", "--file", file)
	require.NoError(t, err)

	var report app.SweepReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, []string{"x", "y", "answer"}, report.Columns)
	assert.Len(t, report.Pairs, 3)

	out, err = run(t, "sweep", "x", "y", "answer", "--file", file, "--significant", "--method", "pearson")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	for _, p := range report.Pairs {
		assert.True(t, p.Significant())
	}
}

func TestToYAMLUsesBlockStyle(t *testing.T) {
	out, err := toYAML(map[string]interface{}{"a": []int{1, 2}, "b": "1"})
	require.NoError(t, err)
	assert.Equal(t, "a:\n    - 1\n    - 2\nb: \"1\"\n", string(out))
}

func TestLoadOptionsEmptyPath(t *testing.T) {
	opts, err := loadOptions("")
	require.NoError(t, err)
	assert.Equal(t, app.Options{}, opts)
}

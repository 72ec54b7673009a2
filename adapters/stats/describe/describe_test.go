package describe

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveystat/domain/variable"
)

func TestDescribeNumeric(t *testing.T) {
	col := variable.NewNumericColumn("age", []float64{2, 4, 4, 4, 5, 5, 7, 9, math.NaN()})
	d := Describe(col)

	assert.Equal(t, "age", d.Variable)
	assert.Equal(t, variable.Ordinal, d.Classification)
	assert.Equal(t, 8, d.Present)
	assert.Equal(t, 1, d.Missing)
	require.NotNil(t, d.Numeric)
	assert.Nil(t, d.Frequencies)

	s := d.Numeric
	assert.Equal(t, 8, s.Count)
	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(32.0/7.0), s.Std, 1e-12)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
	assert.Equal(t, 4.5, s.Median)
	assert.LessOrEqual(t, s.Min, s.Q1)
	assert.LessOrEqual(t, s.Q1, s.Median)
	assert.LessOrEqual(t, s.Median, s.Q3)
	assert.LessOrEqual(t, s.Q3, s.Max)
}

func TestDescribeNumericSmallSamples(t *testing.T) {
	empty := Numeric(nil)
	assert.Equal(t, 0, empty.Count)
	assert.Equal(t, 0.0, empty.Mean)

	single := Numeric([]float64{3})
	assert.Equal(t, 3.0, single.Mean)
	assert.Equal(t, 0.0, single.Std)

	_, err := json.Marshal(single)
	assert.NoError(t, err)
}

func TestDescribeTextual(t *testing.T) {
	col := variable.NewTextColumn("city", []string{"Bandung", "Jakarta", "Jakarta", "", "Surabaya", "Bandung", "Jakarta"})
	d := Describe(col)

	assert.Nil(t, d.Numeric)
	assert.Equal(t, variable.Nominal, d.Classification)
	assert.Equal(t, 1, d.Missing)
	require.Len(t, d.Frequencies, 3)
	assert.Equal(t, Frequency{Label: "Jakarta", Count: 3, Percent: 50}, d.Frequencies[0])
	assert.Equal(t, "Bandung", d.Frequencies[1].Label)
	assert.Equal(t, "Surabaya", d.Frequencies[2].Label)
}

func TestFrequenciesTieBreakByLabel(t *testing.T) {
	got := Frequencies([]string{"b", "a", "c", "a", "b"})
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].Label, got[1].Label, got[2].Label})
	assert.InDelta(t, 40.0, got[0].Percent, 1e-12)
}

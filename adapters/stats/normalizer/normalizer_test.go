package normalizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveystat/domain/core"
	"surveystat/domain/variable"
)

func TestNormalizeKeepsFrequentCategories(t *testing.T) {
	col := variable.NewTextColumn("answer", []string{"Yes", "No", "Yes", "Yes", "No", "No"})

	series, err := Normalize(col, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"No", "Yes"}, series.Categories)
	assert.Equal(t, map[string]int{"No": 3, "Yes": 3}, series.Counts)
	assert.Equal(t, col.Labels(), series.Labels)
	assert.Empty(t, series.Merged)
}

func TestNormalizeMergesRareCategories(t *testing.T) {
	col := variable.NewTextColumn("city", []string{
		"Jakarta", "Jakarta", "Jakarta",
		"Bandung", "Bandung", "Bandung",
		"Medan", "Surabaya", "",
	})

	series, err := Normalize(col, Options{MinFrequency: 3, OtherLabel: "Lainnya"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Bandung", "Jakarta", "Lainnya"}, series.Categories)
	assert.Equal(t, 2, series.Counts["Lainnya"])
	assert.Equal(t, []string{"Medan", "Surabaya"}, series.Merged)
	assert.Equal(t, 8, series.Len(), "missing value dropped")
}

func TestNormalizeSingleCategoryFails(t *testing.T) {
	col := variable.NewTextColumn("brand", []string{"A", "A", "A", "A"})

	_, err := Normalize(col, Options{})
	require.Error(t, err)

	var catErr *core.InsufficientCategoriesError
	require.True(t, errors.As(err, &catErr))
	assert.Equal(t, "brand", catErr.Variable)
	assert.Equal(t, 1, catErr.Found)
	assert.True(t, errors.Is(err, core.ErrInsufficientCategories))
}

func TestNormalizeAllRareCollapsesToOther(t *testing.T) {
	col := variable.NewTextColumn("answer", []string{"a", "b", "c", "d"})

	_, err := Normalize(col, Options{MinFrequency: 3})
	assert.ErrorIs(t, err, core.ErrInsufficientCategories)
}

func TestNormalizeNumericOrder(t *testing.T) {
	col := variable.NewNumericColumn("likert", []float64{10, 2, 2, 10, 2, 10, 1, 1, 1})

	series, err := Normalize(col, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "10"}, series.Categories)
}

func TestNormalizeEqualFrequencyBins(t *testing.T) {
	values := make([]float64, 12)
	for i := range values {
		values[i] = float64(i + 1)
	}
	col := variable.NewNumericColumn("income", values)

	series, err := Normalize(col, Options{Bins: 3})
	require.NoError(t, err)
	require.NotNil(t, series.Binning)

	assert.Equal(t, EqualFrequency, series.Binning.Strategy)
	assert.Len(t, series.Categories, 3)
	for _, cat := range series.Categories {
		assert.Equal(t, 4, series.Counts[cat], "bucket %s", cat)
	}
	assert.Equal(t, []string{"[1, 4]", "(4, 8]", "(8, 12]"}, series.Categories)
}

func TestDiscretizeFallsBackToEqualWidth(t *testing.T) {
	// Heavy duplication collapses the quartile edges.
	values := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 5, 9, 10}

	binning := Discretize(values, 4)
	assert.Equal(t, EqualWidth, binning.Strategy)
	assert.Len(t, binning.Labels, 4)
	assert.Equal(t, []float64{1, 3.25, 5.5, 7.75, 10}, binning.Edges)

	labels := binning.Assign(values)
	assert.Equal(t, binning.Labels[0], labels[0])
	assert.Equal(t, binning.Labels[1], labels[9])
	assert.Equal(t, binning.Labels[3], labels[11])
}

func TestNormalizeBinsThenMerges(t *testing.T) {
	values := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 5, 9, 10}
	col := variable.NewNumericColumn("visits", values)

	series, err := Normalize(col, Options{Bins: 4, OtherLabel: "Other"})
	require.NoError(t, err)

	// Bucket counts: 9, 1, 0, 2 -> the 1 and the 2 are rare.
	assert.Equal(t, []string{"[1, 3.25]", "Other"}, series.Categories)
	assert.Equal(t, 3, series.Counts["Other"])
}

func TestDiscretizeConstantColumn(t *testing.T) {
	binning := Discretize([]float64{4, 4, 4, 4}, 3)
	assert.Equal(t, EqualWidth, binning.Strategy)
	assert.Len(t, binning.Labels, 1)

	_, err := Normalize(variable.NewNumericColumn("x", []float64{4, 4, 4, 4}), Options{Bins: 3})
	assert.ErrorIs(t, err, core.ErrInsufficientCategories)
}

package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveystat/domain/stats"
	"surveystat/domain/verdict"
)

func correlation(method stats.TestFamily, r, p float64) stats.TestResult {
	c := &stats.CorrelationResult{Method: method, Coefficient: r, PValue: stats.KnownPValue(p), SampleSize: 10}
	if method == stats.FamilySpearman {
		return stats.TestResult{Family: method, Spearman: c}
	}
	return stats.TestResult{Family: method, Pearson: c}
}

func TestInterpret_PerfectPositiveCorrelation(t *testing.T) {
	out := Interpret(correlation(stats.FamilyPearson, 1.0, 0), Names{A: "hours", B: "score"}, Options{})

	assert.True(t, out.SignificanceKnown)
	assert.True(t, out.Significant)
	assert.Equal(t, verdict.StrengthVeryStrong, out.Strength)
	assert.Equal(t, verdict.DirectionPositive, out.Direction)
	assert.Equal(t, DefaultThreshold, out.Threshold)
	assert.Equal(t, "en", out.Language)
	assert.Contains(t, out.Narrative, "**Pearson correlation** between *hours* and *score*: r = 1.000, p < 0.001.")
	assert.Contains(t, out.Narrative, "very strong and positive")
	assert.Contains(t, out.Narrative, "statistically significant at α = 0.05")
}

func TestStrengthBuckets(t *testing.T) {
	b := DefaultStrengthBounds()
	cases := []struct {
		r    float64
		want verdict.Strength
	}{
		{0, verdict.StrengthVeryWeak},
		{0.19, verdict.StrengthVeryWeak},
		{0.2, verdict.StrengthWeak},
		{-0.35, verdict.StrengthWeak},
		{0.4, verdict.StrengthModerate},
		{0.6, verdict.StrengthStrong},
		{-0.79, verdict.StrengthStrong},
		{0.8, verdict.StrengthVeryStrong},
		{-1, verdict.StrengthVeryStrong},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, b.Bucket(tc.r), "r=%v", tc.r)
	}
}

func TestCustomBoundsAndThreshold(t *testing.T) {
	opts := Options{Threshold: 0.01, Bounds: StrengthBounds{0.1, 0.3, 0.5, 0.7}}
	out := Interpret(correlation(stats.FamilySpearman, -0.55, 0.03), Names{A: "a", B: "b"}, opts)

	assert.False(t, out.Significant)
	assert.True(t, out.SignificanceKnown)
	assert.Equal(t, verdict.StrengthStrong, out.Strength)
	assert.Equal(t, verdict.DirectionNegative, out.Direction)
	assert.Contains(t, out.Narrative, "ρ = -0.550")
	assert.Contains(t, out.Narrative, "not statistically significant at α = 0.01")
}

func TestStrengthBoundsValidate(t *testing.T) {
	require.NoError(t, DefaultStrengthBounds().Validate())
	assert.Error(t, StrengthBounds{0.2, 0.2, 0.6, 0.8}.Validate())
	assert.Error(t, StrengthBounds{0.2, 0.4, 0.6, 1.2}.Validate())
	assert.Error(t, StrengthBounds{}.Validate())
}

func TestDirectionOf(t *testing.T) {
	assert.Equal(t, verdict.DirectionPositive, DirectionOf(0.1))
	assert.Equal(t, verdict.DirectionNegative, DirectionOf(-0.1))
	assert.Equal(t, verdict.DirectionNegative, DirectionOf(0))
}

func TestNonCorrelationFamilies(t *testing.T) {
	chi := stats.TestResult{Family: stats.FamilyAssociation, ChiSquare: &stats.ChiSquareResult{
		Statistic: 0.667, DegreesOfFreedom: 1, PValue: stats.KnownPValue(0.414), SampleSize: 6, CramersV: 0.333,
	}}
	out := Interpret(chi, Names{A: "answer", B: "group"}, Options{})
	assert.Equal(t, verdict.StrengthNotApplicable, out.Strength)
	assert.Equal(t, verdict.DirectionNone, out.Direction)
	assert.False(t, out.Significant)
	assert.Contains(t, out.Narrative, "χ² = 0.667 (df = 1), p = 0.414")

	anova := stats.TestResult{Family: stats.FamilyAnova, Anova: &stats.AnovaResult{
		FStatistic: 100, DFBetween: 2, DFWithin: 3, EtaSquared: 0.985, PValue: stats.KnownPValue(0.0017),
	}}
	out = Interpret(anova, Names{A: "group", B: "score"}, Options{})
	assert.Equal(t, verdict.StrengthNotApplicable, out.Strength)
	assert.True(t, out.Significant)
	assert.Contains(t, out.Narrative, "**One-way ANOVA** of *score* across the groups of *group*")
}

func TestUnavailablePValue(t *testing.T) {
	res := stats.TestResult{Family: stats.FamilyPearson, Pearson: &stats.CorrelationResult{
		Method: stats.FamilyPearson, Coefficient: 0.5, PValue: stats.UnavailablePValue("none"),
	}}
	out := Interpret(res, Names{A: "a", B: "b"}, Options{})

	assert.False(t, out.SignificanceKnown)
	assert.False(t, out.Significant)
	assert.Equal(t, verdict.StrengthModerate, out.Strength)
	assert.Contains(t, out.Narrative, "p unavailable")
	assert.Contains(t, out.Narrative, "could not be determined")
}

func TestIndonesianNarrative(t *testing.T) {
	out := Interpret(correlation(stats.FamilyPearson, 0.85, 0.001), Names{A: "usia", B: "pendapatan"}, Options{Language: "ID"})

	assert.Equal(t, "id", out.Language)
	assert.Contains(t, out.Narrative, "**Korelasi Pearson** antara *usia* dan *pendapatan*")
	assert.Contains(t, out.Narrative, "sangat kuat dan positif")
	assert.Contains(t, out.Narrative, "signifikan secara statistik")
}

func TestUnknownLanguageFallsBackToEnglish(t *testing.T) {
	out := Interpret(correlation(stats.FamilyPearson, 0.3, 0.2), Names{A: "a", B: "b"}, Options{Language: "fr"})
	assert.Equal(t, "en", out.Language)
	assert.Contains(t, out.Narrative, "weak and positive")
	assert.Equal(t, []string{"en", "id"}, Languages())
}

func TestInterpretIsDeterministic(t *testing.T) {
	res := correlation(stats.FamilySpearman, 0.42, 0.04)
	first := Interpret(res, Names{A: "a", B: "b"}, Options{Language: "id"})
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Interpret(res, Names{A: "a", B: "b"}, Options{Language: "id"}))
	}
}

package stats

import (
	"math"
)

// ============================================================================
// TEST FAMILIES
// ============================================================================

// TestFamily identifies the bivariate test applied to a pair of variables.
type TestFamily string

const (
	FamilyAssociation TestFamily = "chi_square"
	FamilyPearson     TestFamily = "pearson"
	FamilySpearman    TestFamily = "spearman"
	FamilyAnova       TestFamily = "anova"
)

// Families lists every test family in a stable order.
var Families = []TestFamily{FamilyAssociation, FamilyPearson, FamilySpearman, FamilyAnova}

// DisplayName returns the conventional name of the test.
func (f TestFamily) DisplayName() string {
	switch f {
	case FamilyAssociation:
		return "Chi-square test of independence"
	case FamilyPearson:
		return "Pearson correlation"
	case FamilySpearman:
		return "Spearman rank correlation"
	case FamilyAnova:
		return "One-way ANOVA"
	}
	return string(f)
}

// IsCorrelation reports whether the family yields a signed coefficient.
func (f TestFamily) IsCorrelation() bool {
	return f == FamilyPearson || f == FamilySpearman
}

// ============================================================================
// P-VALUES
// ============================================================================

// PValue carries a p-value or an explicit marker that none could be derived.
// An unavailable p-value is never replaced by a stand-in number.
type PValue struct {
	Value     float64 `json:"value"`
	Available bool    `json:"available"`
	Note      string  `json:"note,omitempty"`
}

// KnownPValue wraps a computed p-value. Non-finite input is reported unavailable.
func KnownPValue(p float64) PValue {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return UnavailablePValue("p-value is not finite")
	}
	// Survival functions can drift a hair outside [0,1].
	return PValue{Value: math.Max(0, math.Min(1, p)), Available: true}
}

// UnavailablePValue marks a result whose p-value could not be derived.
func UnavailablePValue(note string) PValue {
	return PValue{Note: note}
}

// ============================================================================
// RESULTS
// ============================================================================

// ChiSquareResult is the outcome of the association test.
type ChiSquareResult struct {
	Statistic        float64           `json:"statistic"`
	DegreesOfFreedom int               `json:"degrees_of_freedom"`
	PValue           PValue            `json:"p_value"`
	SampleSize       int               `json:"sample_size"`
	CramersV         float64           `json:"cramers_v"`
	Table            *ContingencyTable `json:"table"`
	Expected         *ExpectedTable    `json:"expected"`
}

// CorrelationResult is the outcome of Pearson or Spearman correlation.
type CorrelationResult struct {
	Method           TestFamily `json:"method"`
	Coefficient      float64    `json:"coefficient"`
	TStatistic       float64    `json:"t_statistic"`
	DegreesOfFreedom int        `json:"degrees_of_freedom"`
	PValue           PValue     `json:"p_value"`
	SampleSize       int        `json:"sample_size"`
}

// GroupSummary describes one group of a one-way ANOVA.
type GroupSummary struct {
	Label    string  `json:"label"`
	N        int     `json:"n"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
}

// AnovaResult is the outcome of the group-mean comparison.
type AnovaResult struct {
	FStatistic        float64        `json:"f_statistic"`
	DFBetween         int            `json:"df_between"`
	DFWithin          int            `json:"df_within"`
	SumSquaresBetween float64        `json:"ss_between"`
	SumSquaresWithin  float64        `json:"ss_within"`
	MeanSquareBetween float64        `json:"ms_between"`
	MeanSquareWithin  float64        `json:"ms_within"`
	EtaSquared        float64        `json:"eta_squared"`
	PValue            PValue         `json:"p_value"`
	SampleSize        int            `json:"sample_size"`
	GroupVariable     string         `json:"group_variable"`
	ResponseVariable  string         `json:"response_variable"`
	Groups            []GroupSummary `json:"groups"`
}

// TestResult is a tagged union: Family selects which result pointer is set.
type TestResult struct {
	Family    TestFamily         `json:"family"`
	ChiSquare *ChiSquareResult   `json:"chi_square,omitempty"`
	Pearson   *CorrelationResult `json:"pearson,omitempty"`
	Spearman  *CorrelationResult `json:"spearman,omitempty"`
	Anova     *AnovaResult       `json:"anova,omitempty"`
}

// Correlation returns the correlation payload for Pearson or Spearman results.
func (r TestResult) Correlation() (*CorrelationResult, bool) {
	switch r.Family {
	case FamilyPearson:
		return r.Pearson, r.Pearson != nil
	case FamilySpearman:
		return r.Spearman, r.Spearman != nil
	}
	return nil, false
}

// Statistic returns the headline statistic: chi-square, r, rho or F.
func (r TestResult) Statistic() float64 {
	switch {
	case r.ChiSquare != nil:
		return r.ChiSquare.Statistic
	case r.Anova != nil:
		return r.Anova.FStatistic
	}
	if c, ok := r.Correlation(); ok {
		return c.Coefficient
	}
	return math.NaN()
}

// PValue returns the p-value of whichever result is set.
func (r TestResult) PValue() PValue {
	switch {
	case r.ChiSquare != nil:
		return r.ChiSquare.PValue
	case r.Anova != nil:
		return r.Anova.PValue
	}
	if c, ok := r.Correlation(); ok {
		return c.PValue
	}
	return UnavailablePValue("no result")
}

// SampleSize returns the number of observations the test used.
func (r TestResult) SampleSize() int {
	switch {
	case r.ChiSquare != nil:
		return r.ChiSquare.SampleSize
	case r.Anova != nil:
		return r.Anova.SampleSize
	}
	if c, ok := r.Correlation(); ok {
		return c.SampleSize
	}
	return 0
}

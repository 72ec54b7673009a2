package executors

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"surveystat/ports"
)

// GonumDistributions provides p-values from gonum's exact distributions.
type GonumDistributions struct{}

var _ ports.PValueSource = GonumDistributions{}

// NewDistributions creates the default p-value source.
func NewDistributions() GonumDistributions {
	return GonumDistributions{}
}

// ChiSquareSurvival computes the upper tail of the chi-square distribution.
func (GonumDistributions) ChiSquareSurvival(statistic float64, dof int) (float64, bool) {
	if dof <= 0 || !finite(statistic) || statistic < 0 {
		return 0, false
	}
	chiDist := distuv.ChiSquared{K: float64(dof)}
	return checked(chiDist.Survival(statistic))
}

// StudentsTTwoSided computes the two-tailed p-value of a t statistic.
func (GonumDistributions) StudentsTTwoSided(t float64, dof int) (float64, bool) {
	if dof <= 0 || math.IsNaN(t) {
		return 0, false
	}
	if math.IsInf(t, 0) {
		return 0, true
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dof)}
	return checked(2 * tDist.Survival(math.Abs(t)))
}

// FSurvival computes the upper tail of the F distribution (ANOVA).
func (GonumDistributions) FSurvival(f float64, d1, d2 int) (float64, bool) {
	if d1 <= 0 || d2 <= 0 || math.IsNaN(f) || f < 0 {
		return 0, false
	}
	if math.IsInf(f, 1) {
		return 0, true
	}
	fDist := distuv.F{D1: float64(d1), D2: float64(d2)}
	return checked(fDist.Survival(f))
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func checked(p float64) (float64, bool) {
	if !finite(p) {
		return 0, false
	}
	return math.Max(0, math.Min(1, p)), true
}

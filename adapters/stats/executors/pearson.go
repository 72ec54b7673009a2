package executors

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"surveystat/domain/core"
	"surveystat/domain/stats"
	"surveystat/ports"
)

const minCorrelationSample = 3

// PearsonExecutor measures linear association between two numeric variables.
type PearsonExecutor struct {
	pvalues ports.PValueSource
}

// NewPearsonExecutor creates a Pearson executor.
func NewPearsonExecutor(pvalues ports.PValueSource) *PearsonExecutor {
	return &PearsonExecutor{pvalues: pvalues}
}

func (e *PearsonExecutor) Family() stats.TestFamily { return stats.FamilyPearson }

func (e *PearsonExecutor) Description() string {
	return "Pearson product-moment correlation for linear relationships"
}

func (e *PearsonExecutor) Execute(in Input) (stats.TestResult, error) {
	result, err := Pearson(in.ValuesA, in.ValuesB, e.pvalues)
	if err != nil {
		return stats.TestResult{}, err
	}
	return stats.TestResult{Family: stats.FamilyPearson, Pearson: result}, nil
}

// Pearson computes r over paired observations with a t-test on n−2 dof.
func Pearson(x, y []float64, pvalues ports.PValueSource) (*stats.CorrelationResult, error) {
	return correlate(stats.FamilyPearson, x, y, pvalues)
}

func correlate(method stats.TestFamily, x, y []float64, pvalues ports.PValueSource) (*stats.CorrelationResult, error) {
	if len(x) != len(y) {
		return nil, lengthMismatch(string(method), len(x), len(y))
	}
	n := len(x)
	if n < minCorrelationSample {
		return nil, &core.InsufficientSampleSizeError{Test: string(method), Observed: n, Required: minCorrelationSample}
	}
	if !allFinite(x) || !allFinite(y) {
		return nil, &core.DegenerateInputError{Test: string(method), Reason: "input contains a non-finite value"}
	}
	if constant(x) || constant(y) {
		return nil, &core.DegenerateInputError{Test: string(method), Reason: "a variable has zero variance"}
	}

	r := stat.Correlation(x, y, nil)
	if !finite(r) {
		return nil, &core.DegenerateInputError{Test: string(method), Reason: "correlation is undefined"}
	}
	r = math.Max(-1, math.Min(1, r))

	dof := n - 2
	t, p := correlationSignificance(r, dof, pvalues)

	return &stats.CorrelationResult{
		Method:           method,
		Coefficient:      r,
		TStatistic:       t,
		DegreesOfFreedom: dof,
		PValue:           p,
		SampleSize:       n,
	}, nil
}

// correlationSignificance tests r against zero with t = r·sqrt(df/(1−r²)).
// A perfect correlation has an infinite t, which the source maps to p = 0;
// the reported t is then 0 so results stay JSON-encodable.
func correlationSignificance(r float64, dof int, pvalues ports.PValueSource) (float64, stats.PValue) {
	t := math.Copysign(math.Inf(1), r)
	if math.Abs(r) < 1 {
		t = r * math.Sqrt(float64(dof)/(1-r*r))
	}
	reported := t
	if math.IsInf(t, 0) {
		reported = 0
	}
	if pvalues == nil {
		return reported, stats.UnavailablePValue("no t distribution available")
	}
	p, ok := pvalues.StudentsTTwoSided(t, dof)
	if !ok {
		return reported, stats.UnavailablePValue("t distribution gave no finite value")
	}
	return reported, stats.KnownPValue(p)
}

func constant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

func allFinite(values []float64) bool {
	for _, v := range values {
		if !finite(v) {
			return false
		}
	}
	return true
}

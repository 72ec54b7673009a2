package executors

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"surveystat/domain/core"
	"surveystat/domain/stats"
	"surveystat/ports"
)

// AnovaExecutor compares the means of a numeric response across groups.
type AnovaExecutor struct {
	pvalues ports.PValueSource
}

// NewAnovaExecutor creates a one-way ANOVA executor.
func NewAnovaExecutor(pvalues ports.PValueSource) *AnovaExecutor {
	return &AnovaExecutor{pvalues: pvalues}
}

func (e *AnovaExecutor) Family() stats.TestFamily { return stats.FamilyAnova }

func (e *AnovaExecutor) Description() string {
	return "One-way ANOVA comparing a numeric response across the groups of a categorical variable"
}

// Execute groups ValuesB by GroupsA, in the order given by CategoriesA.
func (e *AnovaExecutor) Execute(in Input) (stats.TestResult, error) {
	if len(in.GroupsA) != len(in.ValuesB) {
		return stats.TestResult{}, lengthMismatch("anova", len(in.GroupsA), len(in.ValuesB))
	}
	result, err := OneWayAnova(in.VariableA, in.VariableB, in.GroupsA, in.CategoriesA, in.ValuesB, e.pvalues)
	if err != nil {
		return stats.TestResult{}, err
	}
	return stats.TestResult{Family: stats.FamilyAnova, Anova: result}, nil
}

// OneWayAnova computes F = MSB/MSW with k−1 and N−k degrees of freedom.
// Groups listed in order but absent from labels are skipped.
func OneWayAnova(groupVar, responseVar string, labels, order []string, values []float64, pvalues ports.PValueSource) (*stats.AnovaResult, error) {
	if !allFinite(values) {
		return nil, &core.DegenerateInputError{Test: "anova", Reason: "response contains a non-finite value"}
	}

	buckets := make(map[string][]float64, len(order))
	for i, label := range labels {
		buckets[label] = append(buckets[label], values[i])
	}

	var groups [][]float64
	var names []string
	for _, label := range order {
		if vals := buckets[label]; len(vals) > 0 {
			groups = append(groups, vals)
			names = append(names, label)
		}
	}

	k := len(groups)
	if k < 2 {
		return nil, &core.InsufficientCategoriesError{Variable: groupVar, Found: k, Required: 2}
	}
	n, total := 0, 0.0
	for _, g := range groups {
		n += len(g)
		total += floats.Sum(g)
	}
	if n <= k {
		return nil, &core.InsufficientSampleSizeError{Test: "anova", Observed: n, Required: k + 1}
	}

	grandMean := total / float64(n)
	ssBetween, ssWithin := 0.0, 0.0
	summaries := make([]stats.GroupSummary, k)
	flat := true

	for i, g := range groups {
		mean := stat.Mean(g, nil)
		variance := 0.0
		if len(g) > 1 {
			variance = stat.Variance(g, nil)
		}
		summaries[i] = stats.GroupSummary{Label: names[i], N: len(g), Mean: mean, Variance: variance}

		d := mean - grandMean
		ssBetween += float64(len(g)) * d * d
		for _, v := range g {
			ssWithin += (v - mean) * (v - mean)
		}
		if !constant(g) {
			flat = false
		}
	}

	if flat {
		return nil, &core.DegenerateInputError{Test: "anova", Reason: "zero variance within every group"}
	}

	dfBetween, dfWithin := k-1, n-k
	msBetween := ssBetween / float64(dfBetween)
	msWithin := ssWithin / float64(dfWithin)
	f := msBetween / msWithin
	if !finite(ssBetween) || !finite(ssWithin) || !finite(f) {
		return nil, &core.DegenerateInputError{Test: "anova", Reason: "sums of squares overflow"}
	}

	return &stats.AnovaResult{
		FStatistic:        f,
		DFBetween:         dfBetween,
		DFWithin:          dfWithin,
		SumSquaresBetween: ssBetween,
		SumSquaresWithin:  ssWithin,
		MeanSquareBetween: msBetween,
		MeanSquareWithin:  msWithin,
		EtaSquared:        ssBetween / (ssBetween + ssWithin),
		PValue:            anovaPValue(pvalues, f, dfBetween, dfWithin),
		SampleSize:        n,
		GroupVariable:     groupVar,
		ResponseVariable:  responseVar,
		Groups:            summaries,
	}, nil
}

func anovaPValue(pvalues ports.PValueSource, f float64, d1, d2 int) stats.PValue {
	if pvalues == nil {
		return stats.UnavailablePValue("no F distribution available")
	}
	p, ok := pvalues.FSurvival(f, d1, d2)
	if !ok {
		return stats.UnavailablePValue("F distribution gave no finite value")
	}
	return stats.KnownPValue(p)
}

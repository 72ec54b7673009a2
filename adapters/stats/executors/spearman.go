package executors

import (
	"sort"

	"surveystat/domain/core"
	"surveystat/domain/stats"
	"surveystat/ports"
)

// SpearmanExecutor measures monotonic association on ranks.
type SpearmanExecutor struct {
	pvalues ports.PValueSource
}

// NewSpearmanExecutor creates a Spearman executor.
func NewSpearmanExecutor(pvalues ports.PValueSource) *SpearmanExecutor {
	return &SpearmanExecutor{pvalues: pvalues}
}

func (e *SpearmanExecutor) Family() stats.TestFamily { return stats.FamilySpearman }

func (e *SpearmanExecutor) Description() string {
	return "Spearman rank correlation for monotonic relationships between ordered variables"
}

func (e *SpearmanExecutor) Execute(in Input) (stats.TestResult, error) {
	result, err := Spearman(in.ValuesA, in.ValuesB, e.pvalues)
	if err != nil {
		return stats.TestResult{}, err
	}
	return stats.TestResult{Family: stats.FamilySpearman, Spearman: result}, nil
}

// Spearman is Pearson's r over average ranks, so ties are handled exactly.
func Spearman(x, y []float64, pvalues ports.PValueSource) (*stats.CorrelationResult, error) {
	if len(x) != len(y) {
		return nil, lengthMismatch(string(stats.FamilySpearman), len(x), len(y))
	}
	if !allFinite(x) || !allFinite(y) {
		return nil, &core.DegenerateInputError{Test: string(stats.FamilySpearman), Reason: "input contains a non-finite value"}
	}
	return correlate(stats.FamilySpearman, Ranks(x), Ranks(y), pvalues)
}

// Ranks converts values to 1-based ranks; tied values share their average rank.
func Ranks(data []float64) []float64 {
	n := len(data)
	ranks := make([]float64, n)
	if n == 0 {
		return ranks
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return data[idx[i]] < data[idx[j]]
	})

	for i := 0; i < n; {
		j := i + 1
		for j < n && data[idx[j]] == data[idx[i]] {
			j++
		}
		// Positions i..j-1 are tied; ranks are i+1..j.
		avg := float64(i+1+j) / 2
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		i = j
	}
	return ranks
}

// Package executors implements the four bivariate tests the engine selects
// between: chi-square association, Pearson and Spearman correlation, and
// one-way ANOVA. Every executor is a pure function of its input; p-values
// come from a ports.PValueSource and are marked unavailable, never invented,
// when the source cannot supply one.
package executors

import (
	"fmt"

	"surveystat/domain/stats"
	"surveystat/ports"
)

// Input carries cleaned, index-aligned data for one pair of variables.
// Categorical sides use Groups/Categories, numeric sides use Values. For
// ANOVA side A is the grouping variable and side B the response.
type Input struct {
	VariableA string
	VariableB string

	GroupsA     []string
	CategoriesA []string
	GroupsB     []string
	CategoriesB []string

	ValuesA []float64
	ValuesB []float64
}

// Executor runs one test family.
type Executor interface {
	Family() stats.TestFamily
	Description() string
	Execute(in Input) (stats.TestResult, error)
}

// Registry maps each test family to its executor.
type Registry struct {
	executors map[stats.TestFamily]Executor
}

// NewRegistry wires all four executors to the given p-value source. A nil
// source is allowed: results then carry unavailable p-values.
func NewRegistry(pvalues ports.PValueSource) *Registry {
	r := &Registry{executors: make(map[stats.TestFamily]Executor)}
	for _, e := range []Executor{
		NewChiSquareExecutor(pvalues),
		NewPearsonExecutor(pvalues),
		NewSpearmanExecutor(pvalues),
		NewAnovaExecutor(pvalues),
	} {
		r.executors[e.Family()] = e
	}
	return r
}

// For returns the executor of a family.
func (r *Registry) For(family stats.TestFamily) (Executor, error) {
	e, ok := r.executors[family]
	if !ok {
		return nil, fmt.Errorf("no executor for test family %q", family)
	}
	return e, nil
}

// Families lists the registered families in a stable order.
func (r *Registry) Families() []stats.TestFamily {
	out := make([]stats.TestFamily, 0, len(r.executors))
	for _, f := range stats.Families {
		if _, ok := r.executors[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

func lengthMismatch(test string, a, b int) error {
	return fmt.Errorf("%s: misaligned inputs (%d vs %d values)", test, a, b)
}

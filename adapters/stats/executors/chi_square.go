package executors

import (
	"fmt"
	"math"

	"surveystat/domain/core"
	"surveystat/domain/stats"
	"surveystat/ports"
)

// ChiSquareExecutor tests association between two categorical variables.
type ChiSquareExecutor struct {
	pvalues ports.PValueSource
}

// NewChiSquareExecutor creates a chi-square executor.
func NewChiSquareExecutor(pvalues ports.PValueSource) *ChiSquareExecutor {
	return &ChiSquareExecutor{pvalues: pvalues}
}

func (e *ChiSquareExecutor) Family() stats.TestFamily { return stats.FamilyAssociation }

func (e *ChiSquareExecutor) Description() string {
	return "Chi-square test of independence between two categorical variables"
}

// Execute cross-tabulates the two series and tests independence.
func (e *ChiSquareExecutor) Execute(in Input) (stats.TestResult, error) {
	if len(in.GroupsA) != len(in.GroupsB) {
		return stats.TestResult{}, lengthMismatch("chi_square", len(in.GroupsA), len(in.GroupsB))
	}
	if len(in.CategoriesA) < 2 {
		return stats.TestResult{}, &core.InsufficientCategoriesError{Variable: in.VariableA, Found: len(in.CategoriesA), Required: 2}
	}
	if len(in.CategoriesB) < 2 {
		return stats.TestResult{}, &core.InsufficientCategoriesError{Variable: in.VariableB, Found: len(in.CategoriesB), Required: 2}
	}

	table := stats.CrossTabulate(in.VariableA, in.VariableB, in.GroupsA, in.GroupsB, in.CategoriesA, in.CategoriesB)
	result, err := ChiSquare(table, e.pvalues)
	if err != nil {
		return stats.TestResult{}, err
	}
	return stats.TestResult{Family: stats.FamilyAssociation, ChiSquare: result}, nil
}

// ChiSquare computes Σ(O−E)²/E over a contingency table with dof (r−1)(c−1).
func ChiSquare(table *stats.ContingencyTable, pvalues ports.PValueSource) (*stats.ChiSquareResult, error) {
	rows, cols := table.NumRows(), table.NumCols()
	if rows < 2 {
		return nil, &core.InsufficientCategoriesError{Variable: table.RowVariable(), Found: rows, Required: 2}
	}
	if cols < 2 {
		return nil, &core.InsufficientCategoriesError{Variable: table.ColVariable(), Found: cols, Required: 2}
	}

	expected := table.Expected()
	chiSq := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			exp := expected.Value(i, j)
			if exp <= 0 {
				return nil, &core.DegenerateInputError{
					Test:   "chi_square",
					Reason: fmt.Sprintf("zero expected frequency in cell (%s, %s)", table.Rows()[i], table.Cols()[j]),
				}
			}
			diff := float64(table.Count(i, j)) - exp
			chiSq += diff * diff / exp
		}
	}

	if !finite(chiSq) {
		return nil, &core.DegenerateInputError{Test: "chi_square", Reason: "statistic is not finite"}
	}

	dof := (rows - 1) * (cols - 1)
	n := table.Total()
	minDim := math.Min(float64(rows-1), float64(cols-1))

	return &stats.ChiSquareResult{
		Statistic:        chiSq,
		DegreesOfFreedom: dof,
		PValue:           chiSquarePValue(pvalues, chiSq, dof),
		SampleSize:       n,
		CramersV:         math.Sqrt(chiSq / (float64(n) * minDim)),
		Table:            table,
		Expected:         expected,
	}, nil
}

func chiSquarePValue(pvalues ports.PValueSource, chiSq float64, dof int) stats.PValue {
	if pvalues == nil {
		return stats.UnavailablePValue("no chi-square distribution available")
	}
	p, ok := pvalues.ChiSquareSurvival(chiSq, dof)
	if !ok {
		return stats.UnavailablePValue("chi-square survival function gave no finite value")
	}
	return stats.KnownPValue(p)
}

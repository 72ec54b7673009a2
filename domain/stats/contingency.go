package stats

import (
	"encoding/json"
)

// ContingencyTable is an immutable cross-tabulation of two categorical
// variables. Rows follow the first variable, columns the second.
type ContingencyTable struct {
	rowVariable string
	colVariable string
	rows        []string
	cols        []string
	counts      [][]int
	rowTotals   []int
	colTotals   []int
	total       int
}

// CrossTabulate counts joint occurrences of aligned label slices. rowOrder
// and colOrder fix the category order; labels outside them are ignored.
func CrossTabulate(rowVariable, colVariable string, a, b []string, rowOrder, colOrder []string) *ContingencyTable {
	t := &ContingencyTable{
		rowVariable: rowVariable,
		colVariable: colVariable,
		rows:        append([]string(nil), rowOrder...),
		cols:        append([]string(nil), colOrder...),
		counts:      make([][]int, len(rowOrder)),
		rowTotals:   make([]int, len(rowOrder)),
		colTotals:   make([]int, len(colOrder)),
	}
	for i := range t.counts {
		t.counts[i] = make([]int, len(colOrder))
	}

	rowIndex := indexOf(rowOrder)
	colIndex := indexOf(colOrder)

	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for k := 0; k < n; k++ {
		i, okRow := rowIndex[a[k]]
		j, okCol := colIndex[b[k]]
		if !okRow || !okCol {
			continue
		}
		t.counts[i][j]++
		t.rowTotals[i]++
		t.colTotals[j]++
		t.total++
	}
	return t
}

func indexOf(labels []string) map[string]int {
	m := make(map[string]int, len(labels))
	for i, l := range labels {
		m[l] = i
	}
	return m
}

func (t *ContingencyTable) RowVariable() string { return t.rowVariable }
func (t *ContingencyTable) ColVariable() string { return t.colVariable }
func (t *ContingencyTable) NumRows() int        { return len(t.rows) }
func (t *ContingencyTable) NumCols() int        { return len(t.cols) }
func (t *ContingencyTable) Total() int          { return t.total }

// Rows returns a copy of the row category labels.
func (t *ContingencyTable) Rows() []string { return append([]string(nil), t.rows...) }

// Cols returns a copy of the column category labels.
func (t *ContingencyTable) Cols() []string { return append([]string(nil), t.cols...) }

// Count returns the observed count in cell (i, j).
func (t *ContingencyTable) Count(i, j int) int { return t.counts[i][j] }

// RowTotal returns the margin of row i.
func (t *ContingencyTable) RowTotal(i int) int { return t.rowTotals[i] }

// ColTotal returns the margin of column j.
func (t *ContingencyTable) ColTotal(j int) int { return t.colTotals[j] }

// RowTotals returns a copy of the row margins.
func (t *ContingencyTable) RowTotals() []int { return append([]int(nil), t.rowTotals...) }

// ColTotals returns a copy of the column margins.
func (t *ContingencyTable) ColTotals() []int { return append([]int(nil), t.colTotals...) }

// Expected derives cell frequencies under independence: row × col / total.
func (t *ContingencyTable) Expected() *ExpectedTable {
	e := &ExpectedTable{
		rows:   t.Rows(),
		cols:   t.Cols(),
		values: make([][]float64, len(t.rows)),
	}
	for i := range t.rows {
		e.values[i] = make([]float64, len(t.cols))
		if t.total == 0 {
			continue
		}
		for j := range t.cols {
			e.values[i][j] = float64(t.rowTotals[i]) * float64(t.colTotals[j]) / float64(t.total)
		}
	}
	return e
}

type contingencyJSON struct {
	RowVariable string   `json:"row_variable"`
	ColVariable string   `json:"col_variable"`
	Rows        []string `json:"rows"`
	Cols        []string `json:"cols"`
	Counts      [][]int  `json:"counts"`
	RowTotals   []int    `json:"row_totals"`
	ColTotals   []int    `json:"col_totals"`
	Total       int      `json:"total"`
}

// MarshalJSON exposes the table for rendering.
func (t *ContingencyTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(contingencyJSON{
		RowVariable: t.rowVariable,
		ColVariable: t.colVariable,
		Rows:        t.rows,
		Cols:        t.cols,
		Counts:      t.counts,
		RowTotals:   t.rowTotals,
		ColTotals:   t.colTotals,
		Total:       t.total,
	})
}

// ExpectedTable holds expected frequencies with the shape of its source table.
type ExpectedTable struct {
	rows   []string
	cols   []string
	values [][]float64
}

// Value returns the expected frequency of cell (i, j).
func (e *ExpectedTable) Value(i, j int) float64 { return e.values[i][j] }

// Sum returns the total of all expected cells.
func (e *ExpectedTable) Sum() float64 {
	s := 0.0
	for _, row := range e.values {
		for _, v := range row {
			s += v
		}
	}
	return s
}

// Min returns the smallest expected cell, or 0 for an empty table.
func (e *ExpectedTable) Min() float64 {
	min := 0.0
	first := true
	for _, row := range e.values {
		for _, v := range row {
			if first || v < min {
				min = v
				first = false
			}
		}
	}
	return min
}

// MarshalJSON exposes the expected frequencies for rendering.
func (e *ExpectedTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Rows   []string    `json:"rows"`
		Cols   []string    `json:"cols"`
		Values [][]float64 `json:"values"`
	}{e.rows, e.cols, e.values})
}

package app

import (
	"sort"

	"surveystat/adapters/stats/normalizer"
	"surveystat/domain/variable"
)

// rowSeries is a whole column prepared for a test, indexed by row: a category
// label for categorical use or a number for numeric use. Missing rows have
// present == false.
type rowSeries struct {
	present    []bool
	labels     []string
	values     []float64
	categories []string
}

// categorize normalizes the full column, then maps the labels back onto the
// rows they came from.
func categorize(col variable.Column, opts normalizer.Options) (*rowSeries, error) {
	series, err := normalizer.Normalize(col, opts)
	if err != nil {
		return nil, err
	}
	rs := &rowSeries{
		present:    make([]bool, col.Len()),
		labels:     make([]string, col.Len()),
		categories: series.Categories,
	}
	next := 0
	for i, v := range col.Values {
		if v.Present {
			rs.present[i] = true
			rs.labels[i] = series.Labels[next]
			next++
		}
	}
	return rs, nil
}

// encode returns numeric values as-is and encodes textual values by their
// position in order. Categories missing from order rank after it,
// lexicographically.
func encode(col variable.Column, order []string) *rowSeries {
	rs := &rowSeries{
		present: make([]bool, col.Len()),
		values:  make([]float64, col.Len()),
	}
	var rank map[string]int
	if col.Kind != variable.KindNumeric {
		rank = textRanks(col.Labels(), order)
	}
	for i, v := range col.Values {
		if !v.Present {
			continue
		}
		rs.present[i] = true
		if rank != nil {
			rs.values[i] = float64(rank[v.Label(col.Kind)])
		} else {
			rs.values[i] = v.Number
		}
	}
	return rs
}

func textRanks(labels, order []string) map[string]int {
	rank := make(map[string]int, len(order))
	for _, label := range order {
		if _, dup := rank[label]; !dup {
			rank[label] = len(rank)
		}
	}
	var extra []string
	for _, label := range labels {
		if _, ok := rank[label]; !ok {
			rank[label] = -1
			extra = append(extra, label)
		}
	}
	sort.Strings(extra)
	next := len(rank) - len(extra)
	for _, label := range extra {
		rank[label] = next
		next++
	}
	return rank
}

// sharedRows lists the rows present in both series.
func sharedRows(a, b *rowSeries) []int {
	var rows []int
	for i := range a.present {
		if a.present[i] && b.present[i] {
			rows = append(rows, i)
		}
	}
	return rows
}

// labelsAt returns the labels of rows together with the categories that
// still occur among them, in category order.
func (s *rowSeries) labelsAt(rows []int) ([]string, []string) {
	labels := make([]string, len(rows))
	seen := make(map[string]bool)
	for i, r := range rows {
		labels[i] = s.labels[r]
		seen[s.labels[r]] = true
	}
	categories := make([]string, 0, len(s.categories))
	for _, c := range s.categories {
		if seen[c] {
			categories = append(categories, c)
		}
	}
	return labels, categories
}

// valuesAt returns the numbers of rows.
func (s *rowSeries) valuesAt(rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = s.values[r]
	}
	return out
}

package normalizer

import (
	"fmt"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// BinStrategy records how bucket edges were chosen.
type BinStrategy string

const (
	EqualFrequency BinStrategy = "equal_frequency"
	EqualWidth     BinStrategy = "equal_width"
)

// Binning is a set of contiguous numeric buckets. Bucket i spans
// (Edges[i], Edges[i+1]]; the first bucket also includes Edges[0].
type Binning struct {
	Strategy  BinStrategy `json:"strategy"`
	Requested int         `json:"requested"`
	Edges     []float64   `json:"edges"`
	Labels    []string    `json:"labels"`
}

// Discretize builds k roughly equal-frequency buckets over values. When
// duplicate values collapse quantile edges so that fewer than k buckets
// remain, it falls back to k equal-width buckets over [min, max].
func Discretize(values []float64, k int) *Binning {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	b := &Binning{Requested: k}
	if len(sorted) == 0 {
		b.Strategy = EqualWidth
		return b
	}

	edges := quantileEdges(sorted, k)
	if len(edges)-1 >= k {
		b.Strategy = EqualFrequency
		b.Edges = edges
	} else {
		b.Strategy = EqualWidth
		b.Edges = widthEdges(sorted[0], sorted[len(sorted)-1], k)
	}
	b.Labels = intervalLabels(b.Edges)
	return b
}

// quantileEdges returns the deduplicated quantile cut points at i/k.
func quantileEdges(sorted []float64, k int) []float64 {
	edges := make([]float64, 0, k+1)
	edges = append(edges, sorted[0])
	for i := 1; i < k; i++ {
		q := stat.Quantile(float64(i)/float64(k), stat.LinInterp, sorted, nil)
		if q > edges[len(edges)-1] {
			edges = append(edges, q)
		}
	}
	if last := sorted[len(sorted)-1]; last > edges[len(edges)-1] {
		edges = append(edges, last)
	}
	return edges
}

func widthEdges(min, max float64, k int) []float64 {
	if max == min {
		return []float64{min, max}
	}
	edges := make([]float64, k+1)
	width := (max - min) / float64(k)
	for i := 0; i <= k; i++ {
		edges[i] = min + float64(i)*width
	}
	edges[k] = max
	return edges
}

// Assign maps each value to its bucket label.
func (b *Binning) Assign(values []float64) []string {
	out := make([]string, len(values))
	if len(b.Labels) == 0 {
		return out
	}
	upper := b.Edges[1:]
	for i, v := range values {
		j := sort.SearchFloat64s(upper, v)
		if j >= len(b.Labels) {
			j = len(b.Labels) - 1
		}
		out[i] = b.Labels[j]
	}
	return out
}

// intervalLabels renders bucket labels with the shortest precision that
// keeps every edge distinct.
func intervalLabels(edges []float64) []string {
	if len(edges) < 2 {
		return nil
	}

	var text []string
	for prec := 4; prec <= 17; prec++ {
		text = make([]string, len(edges))
		distinct := true
		for i, e := range edges {
			text[i] = strconv.FormatFloat(e, 'g', prec, 64)
			if i > 0 && text[i] == text[i-1] && edges[i] != edges[i-1] {
				distinct = false
			}
		}
		if distinct {
			break
		}
	}

	labels := make([]string, len(edges)-1)
	for i := range labels {
		open := "("
		if i == 0 {
			open = "["
		}
		labels[i] = fmt.Sprintf("%s%s, %s]", open, text[i], text[i+1])
	}
	return labels
}

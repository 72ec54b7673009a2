// Package describe produces per-column descriptive statistics.
package describe

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"surveystat/domain/variable"
)

// NumericSummary holds the classic count/mean/std/quartile summary.
type NumericSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q25"`
	Median float64 `json:"q50"`
	Q3     float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// Frequency is one category count of a textual column.
type Frequency struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Description summarizes one column.
type Description struct {
	Variable       string                  `json:"variable"`
	Kind           variable.Kind           `json:"kind"`
	Classification variable.Classification `json:"classification"`
	Present        int                     `json:"present"`
	Missing        int                     `json:"missing"`
	Numeric        *NumericSummary         `json:"numeric,omitempty"`
	Frequencies    []Frequency             `json:"frequencies,omitempty"`
}

// Describe summarizes numeric columns with moments and quartiles and textual
// columns with category frequencies, most frequent first.
func Describe(col variable.Column) *Description {
	present := col.PresentCount()
	d := &Description{
		Variable:       col.Name,
		Kind:           col.Kind,
		Classification: variable.Classify(col),
		Present:        present,
		Missing:        col.Len() - present,
	}
	if col.Kind == variable.KindNumeric {
		d.Numeric = Numeric(col.Numbers())
	} else {
		d.Frequencies = Frequencies(col.Labels())
	}
	return d
}

// Numeric computes the summary of data. Statistics that are undefined for the
// sample size are reported as 0 so the summary stays JSON-encodable.
func Numeric(data []float64) *NumericSummary {
	s := &NumericSummary{Count: len(data)}
	if len(data) == 0 {
		return s
	}

	s.Mean = orZero(stats.Mean(data))
	s.Min = orZero(stats.Min(data))
	s.Max = orZero(stats.Max(data))
	s.Median = orZero(stats.Median(data))
	s.Q1 = orZero(stats.Percentile(data, 25))
	s.Q3 = orZero(stats.Percentile(data, 75))
	if len(data) > 1 {
		s.Std = orZero(stats.StandardDeviationSample(data))
	}
	return s
}

// Frequencies counts labels, sorted by descending count then label.
func Frequencies(labels []string) []Frequency {
	counts := make(map[string]int)
	for _, l := range labels {
		counts[l]++
	}

	out := make([]Frequency, 0, len(counts))
	for label, n := range counts {
		out = append(out, Frequency{
			Label:   label,
			Count:   n,
			Percent: 100 * float64(n) / float64(len(labels)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func orZero(v float64, err error) float64 {
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

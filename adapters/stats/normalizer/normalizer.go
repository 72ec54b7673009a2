// Package normalizer turns a column into a consolidated categorical series:
// optional discretization of numeric values into buckets followed by merging
// of rare categories into a single catch-all label.
package normalizer

import (
	"sort"
	"strconv"

	"surveystat/domain/core"
	"surveystat/domain/variable"
)

const (
	DefaultMinFrequency = 3
	DefaultOtherLabel   = "Other"
	minCategories       = 2
)

// Options controls normalization of one column.
type Options struct {
	// MinFrequency is the smallest count a category may have before it is
	// merged into OtherLabel. Values below 1 mean DefaultMinFrequency.
	MinFrequency int
	// Bins > 1 discretizes a numeric column into that many buckets.
	Bins       int
	OtherLabel string
}

func (o Options) withDefaults() Options {
	if o.MinFrequency < 1 {
		o.MinFrequency = DefaultMinFrequency
	}
	if o.OtherLabel == "" {
		o.OtherLabel = DefaultOtherLabel
	}
	return o
}

// Series is a consolidated categorical view of a column's present values.
type Series struct {
	Variable string `json:"variable"`
	// Labels holds one category per present input value, in row order.
	Labels []string `json:"-"`
	// Categories lists the distinct labels in display order; OtherLabel last.
	Categories []string       `json:"categories"`
	Counts     map[string]int `json:"counts"`
	// Binning describes the buckets when the column was discretized.
	Binning *Binning `json:"binning,omitempty"`
	// Merged lists the original categories folded into OtherLabel.
	Merged []string `json:"merged,omitempty"`
}

// Len returns the number of labelled observations.
func (s *Series) Len() int {
	return len(s.Labels)
}

// Normalize drops missing values, optionally discretizes, then consolidates
// rare categories. It fails with *core.InsufficientCategoriesError when fewer
// than two categories survive.
func Normalize(col variable.Column, opts Options) (*Series, error) {
	opts = opts.withDefaults()

	series := &Series{Variable: col.Name}
	var order []string

	if opts.Bins > 1 && col.Kind == variable.KindNumeric {
		binning := Discretize(col.Numbers(), opts.Bins)
		series.Labels = binning.Assign(col.Numbers())
		series.Binning = binning
		order = binning.Labels
	} else {
		series.Labels = col.Labels()
		order = naturalOrder(series.Labels, col.Kind)
	}

	consolidate(series, order, opts)

	if len(series.Categories) < minCategories {
		return nil, &core.InsufficientCategoriesError{
			Variable: col.Name,
			Found:    len(series.Categories),
			Required: minCategories,
		}
	}
	return series, nil
}

// consolidate relabels categories rarer than MinFrequency and fixes the
// final category order.
func consolidate(series *Series, order []string, opts Options) {
	counts := make(map[string]int, len(order))
	for _, l := range series.Labels {
		counts[l]++
	}

	rare := make(map[string]bool)
	for _, cat := range order {
		if c := counts[cat]; c > 0 && c < opts.MinFrequency {
			rare[cat] = true
			series.Merged = append(series.Merged, cat)
		}
	}

	if len(rare) > 0 {
		for i, l := range series.Labels {
			if rare[l] {
				series.Labels[i] = opts.OtherLabel
			}
		}
	}

	series.Counts = make(map[string]int)
	for _, l := range series.Labels {
		series.Counts[l]++
	}

	hasOther := false
	for _, cat := range order {
		if cat == opts.OtherLabel {
			hasOther = true
			continue
		}
		if series.Counts[cat] > 0 {
			series.Categories = append(series.Categories, cat)
		}
	}
	if hasOther || len(rare) > 0 {
		if series.Counts[opts.OtherLabel] > 0 {
			series.Categories = append(series.Categories, opts.OtherLabel)
		}
	}
}

// naturalOrder sorts distinct labels: numerically for numeric columns,
// lexically otherwise.
func naturalOrder(labels []string, kind variable.Kind) []string {
	seen := make(map[string]struct{}, len(labels))
	distinct := make([]string, 0)
	for _, l := range labels {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			distinct = append(distinct, l)
		}
	}

	if kind == variable.KindNumeric {
		sort.SliceStable(distinct, func(i, j int) bool {
			a, _ := strconv.ParseFloat(distinct[i], 64)
			b, _ := strconv.ParseFloat(distinct[j], 64)
			return a < b
		})
		return distinct
	}
	sort.Strings(distinct)
	return distinct
}

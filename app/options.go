package app

import (
	"errors"
	"fmt"

	"surveystat/adapters/stats/interpret"
	"surveystat/adapters/stats/normalizer"
	"surveystat/domain/stats"
)

var (
	// ErrInvalidOptions marks an Options value that cannot be used.
	ErrInvalidOptions = errors.New("invalid analysis options")
	// ErrMisalignedColumns is returned when the two columns differ in length.
	ErrMisalignedColumns = errors.New("columns have different lengths")
)

// Options tunes one analysis. Zero fields take the service defaults.
type Options struct {
	// BinCountA/BinCountB > 1 discretize a numeric column into that many
	// equal-frequency buckets; the column is then analysed as nominal.
	BinCountA int `json:"bin_count_a,omitempty" yaml:"bin_count_a,omitempty"`
	BinCountB int `json:"bin_count_b,omitempty" yaml:"bin_count_b,omitempty"`

	MinCategoryFrequency  int                      `json:"min_category_frequency,omitempty" yaml:"min_category_frequency,omitempty"`
	SignificanceThreshold float64                  `json:"significance_threshold,omitempty" yaml:"significance_threshold,omitempty"`
	Language              string                   `json:"language,omitempty" yaml:"language,omitempty"`
	StrengthBounds        interpret.StrengthBounds `json:"strength_bounds" yaml:"strength_bounds"`
	OtherLabel            string                   `json:"other_label,omitempty" yaml:"other_label,omitempty"`

	// OrderA/OrderB rank the categories of a textual ordinal column, lowest
	// first. Unlisted categories follow in lexicographic order.
	OrderA []string `json:"order_a,omitempty" yaml:"order_a,omitempty"`
	OrderB []string `json:"order_b,omitempty" yaml:"order_b,omitempty"`

	// CorrelationMethod forces Pearson or Spearman when the selected family
	// is a correlation. Empty means automatic selection.
	CorrelationMethod stats.TestFamily `json:"correlation_method,omitempty" yaml:"correlation_method,omitempty"`
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{
		MinCategoryFrequency:  normalizer.DefaultMinFrequency,
		SignificanceThreshold: interpret.DefaultThreshold,
		Language:              interpret.DefaultLanguage,
		StrengthBounds:        interpret.DefaultStrengthBounds(),
		OtherLabel:            normalizer.DefaultOtherLabel,
	}
}

// Merge fills the zero fields of o from fallback.
func (o Options) Merge(fallback Options) Options {
	if o.BinCountA == 0 {
		o.BinCountA = fallback.BinCountA
	}
	if o.BinCountB == 0 {
		o.BinCountB = fallback.BinCountB
	}
	if o.MinCategoryFrequency == 0 {
		o.MinCategoryFrequency = fallback.MinCategoryFrequency
	}
	if o.SignificanceThreshold == 0 {
		o.SignificanceThreshold = fallback.SignificanceThreshold
	}
	if o.Language == "" {
		o.Language = fallback.Language
	}
	if o.StrengthBounds.IsZero() {
		o.StrengthBounds = fallback.StrengthBounds
	}
	if o.OtherLabel == "" {
		o.OtherLabel = fallback.OtherLabel
	}
	if o.OrderA == nil {
		o.OrderA = fallback.OrderA
	}
	if o.OrderB == nil {
		o.OrderB = fallback.OrderB
	}
	if o.CorrelationMethod == "" {
		o.CorrelationMethod = fallback.CorrelationMethod
	}
	return o
}

// Validate rejects out-of-range settings.
func (o Options) Validate() error {
	if o.BinCountA < 0 || o.BinCountB < 0 {
		return fmt.Errorf("%w: bin counts must not be negative", ErrInvalidOptions)
	}
	if o.MinCategoryFrequency < 0 {
		return fmt.Errorf("%w: minimum category frequency must not be negative", ErrInvalidOptions)
	}
	if o.SignificanceThreshold < 0 || o.SignificanceThreshold >= 1 {
		return fmt.Errorf("%w: significance threshold %v outside (0, 1)", ErrInvalidOptions, o.SignificanceThreshold)
	}
	if !o.StrengthBounds.IsZero() {
		if err := o.StrengthBounds.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
		}
	}
	switch o.CorrelationMethod {
	case "", stats.FamilyPearson, stats.FamilySpearman:
	default:
		return fmt.Errorf("%w: correlation method %q is not pearson or spearman", ErrInvalidOptions, o.CorrelationMethod)
	}
	return nil
}

func (o Options) interpretOptions() interpret.Options {
	return interpret.Options{
		Threshold: o.SignificanceThreshold,
		Bounds:    o.StrengthBounds,
		Language:  o.Language,
	}
}

func (o Options) normalizerOptions(bins int) normalizer.Options {
	return normalizer.Options{
		MinFrequency: o.MinCategoryFrequency,
		Bins:         bins,
		OtherLabel:   o.OtherLabel,
	}
}

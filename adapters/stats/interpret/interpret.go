// Package interpret turns a test result into a significance flag, a strength
// bucket, a direction and a short localized narrative.
package interpret

import (
	"fmt"
	"math"

	"surveystat/domain/stats"
	"surveystat/domain/verdict"
)

const DefaultThreshold = 0.05

// StrengthBounds are the ascending |r| cut points between the five strength
// buckets: very weak, weak, moderate, strong, very strong.
type StrengthBounds [4]float64

// DefaultStrengthBounds returns the conventional 0.2 step buckets.
func DefaultStrengthBounds() StrengthBounds {
	return StrengthBounds{0.2, 0.4, 0.6, 0.8}
}

// IsZero reports whether no bounds were supplied.
func (b StrengthBounds) IsZero() bool {
	return b == StrengthBounds{}
}

// Validate checks the bounds are strictly ascending inside (0, 1).
func (b StrengthBounds) Validate() error {
	prev := 0.0
	for i, v := range b {
		if v <= prev || v >= 1 {
			return fmt.Errorf("strength bound %d (%v) must be ascending within (0, 1)", i, v)
		}
		prev = v
	}
	return nil
}

// Bucket classifies a correlation coefficient by its magnitude.
func (b StrengthBounds) Bucket(r float64) verdict.Strength {
	abs := math.Abs(r)
	switch {
	case abs < b[0]:
		return verdict.StrengthVeryWeak
	case abs < b[1]:
		return verdict.StrengthWeak
	case abs < b[2]:
		return verdict.StrengthModerate
	case abs < b[3]:
		return verdict.StrengthStrong
	default:
		return verdict.StrengthVeryStrong
	}
}

// Options tunes interpretation. Zero values take the defaults.
type Options struct {
	Threshold float64
	Bounds    StrengthBounds
	Language  string
}

func (o Options) withDefaults() Options {
	if o.Threshold <= 0 || o.Threshold >= 1 {
		o.Threshold = DefaultThreshold
	}
	if o.Bounds.IsZero() {
		o.Bounds = DefaultStrengthBounds()
	}
	o.Language = ResolveLanguage(o.Language)
	return o
}

// Names labels the two variables in the narrative.
type Names struct {
	A string
	B string
}

// Interpret judges a result. It is pure: equal input gives equal output.
func Interpret(result stats.TestResult, names Names, opts Options) verdict.Interpretation {
	opts = opts.withDefaults()

	out := verdict.Interpretation{
		Threshold: opts.Threshold,
		Strength:  verdict.StrengthNotApplicable,
		Direction: verdict.DirectionNone,
		Language:  opts.Language,
	}

	if p := result.PValue(); p.Available {
		out.SignificanceKnown = true
		out.Significant = p.Value < opts.Threshold
	}

	if c, ok := result.Correlation(); ok {
		out.Strength = opts.Bounds.Bucket(c.Coefficient)
		out.Direction = DirectionOf(c.Coefficient)
	}

	out.Narrative = narrate(result, names, out)
	return out
}

// DirectionOf returns positive for r > 0 and negative otherwise.
func DirectionOf(r float64) verdict.Direction {
	if r > 0 {
		return verdict.DirectionPositive
	}
	return verdict.DirectionNegative
}

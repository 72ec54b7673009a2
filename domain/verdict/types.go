package verdict

import (
	"surveystat/domain/core"
	"surveystat/domain/stats"
	"surveystat/domain/variable"
)

// Strength is a coarse label for the magnitude of a correlation coefficient.
type Strength string

const (
	StrengthVeryWeak      Strength = "very_weak"
	StrengthWeak          Strength = "weak"
	StrengthModerate      Strength = "moderate"
	StrengthStrong        Strength = "strong"
	StrengthVeryStrong    Strength = "very_strong"
	StrengthNotApplicable Strength = "not_applicable"
)

// Direction is the sign of a correlation coefficient.
type Direction string

const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
	DirectionNone     Direction = "none"
)

// Interpretation is the judgement derived from a test result.
type Interpretation struct {
	Significant bool `json:"significant"`
	// SignificanceKnown is false when the result has no p-value; Significant
	// is then false and must not be read as "not significant".
	SignificanceKnown bool      `json:"significance_known"`
	Threshold         float64   `json:"threshold"`
	Strength          Strength  `json:"strength"`
	Direction         Direction `json:"direction"`
	Language          string    `json:"language"`
	Narrative         string    `json:"narrative"`
}

// Verdict is the complete answer for one pair of variables.
type Verdict struct {
	VariableA      variable.Profile `json:"variable_a"`
	VariableB      variable.Profile `json:"variable_b"`
	Family         stats.TestFamily `json:"family"`
	TestName       string           `json:"test_name"`
	Result         stats.TestResult `json:"result"`
	Interpretation Interpretation   `json:"interpretation"`
	Fingerprint    core.Hash        `json:"fingerprint"`
}

// Seal computes the verdict fingerprint from every other field.
func (v *Verdict) Seal() error {
	v.Fingerprint = ""
	h, err := core.ComputeFingerprint(v)
	if err != nil {
		return err
	}
	v.Fingerprint = h
	return nil
}

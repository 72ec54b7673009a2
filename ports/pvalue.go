package ports

// PValueSource turns test statistics into p-values. Each method reports ok ==
// false when it cannot produce a finite probability; callers must then mark the
// p-value unavailable rather than substitute a number.
type PValueSource interface {
	// ChiSquareSurvival returns P(X >= statistic) for a chi-square with dof degrees of freedom.
	ChiSquareSurvival(statistic float64, dof int) (float64, bool)

	// StudentsTTwoSided returns P(|T| >= |t|) for Student's t with dof degrees of freedom.
	// An infinite t, from a perfect correlation, yields 0.
	StudentsTTwoSided(t float64, dof int) (float64, bool)

	// FSurvival returns P(F >= f) for an F distribution with (d1, d2) degrees of freedom.
	FSurvival(f float64, d1, d2 int) (float64, bool)
}

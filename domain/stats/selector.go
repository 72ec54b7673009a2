package stats

import "surveystat/domain/variable"

// SelectTest maps a pair of classifications to the test family that applies.
// It is total over the classification grid and symmetric in its arguments.
//
//	nominal × nominal                    → chi-square
//	nominal × ordinal|continuous         → ANOVA
//	ordinal × ordinal                    → Spearman
//	any other ordinal|continuous pairing → Pearson
func SelectTest(a, b variable.Classification) TestFamily {
	switch {
	case a == variable.Nominal && b == variable.Nominal:
		return FamilyAssociation
	case a == variable.Nominal || b == variable.Nominal:
		return FamilyAnova
	case a == variable.Ordinal && b == variable.Ordinal:
		return FamilySpearman
	default:
		return FamilyPearson
	}
}

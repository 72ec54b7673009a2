package interpret

import (
	"fmt"
	"sort"
	"strings"

	"surveystat/domain/stats"
	"surveystat/domain/verdict"
)

const DefaultLanguage = "en"

type phrasebook struct {
	testNames    map[stats.TestFamily]string
	strengths    map[verdict.Strength]string
	directions   map[verdict.Direction]string
	correlation  string // name, A, B, symbol, r, p
	relationship string // strength, direction
	association  string // name, A, B, chi², dof, p, V
	anova        string // name, B, A, F, df1, df2, p, eta²
	significant  string // threshold
	notSig       string // threshold
	unknownSig   string
	pUnavailable string
}

var phrasebooks = map[string]phrasebook{
	"en": {
		testNames: map[stats.TestFamily]string{
			stats.FamilyAssociation: "Chi-square test of independence",
			stats.FamilyPearson:     "Pearson correlation",
			stats.FamilySpearman:    "Spearman rank correlation",
			stats.FamilyAnova:       "One-way ANOVA",
		},
		strengths: map[verdict.Strength]string{
			verdict.StrengthVeryWeak:   "very weak",
			verdict.StrengthWeak:       "weak",
			verdict.StrengthModerate:   "moderate",
			verdict.StrengthStrong:     "strong",
			verdict.StrengthVeryStrong: "very strong",
		},
		directions: map[verdict.Direction]string{
			verdict.DirectionPositive: "positive",
			verdict.DirectionNegative: "negative",
		},
		correlation:  "**%s** between *%s* and *%s*: %s = %.3f, %s.",
		relationship: "The relationship is %s and %s.",
		association:  "**%s** between *%s* and *%s*: χ² = %.3f (df = %d), %s, Cramér's V = %.3f.",
		anova:        "**%s** of *%s* across the groups of *%s*: F = %.3f (df = %d, %d), %s, η² = %.3f.",
		significant:  "The result is statistically significant at α = %g.",
		notSig:       "The result is not statistically significant at α = %g.",
		unknownSig:   "Significance could not be determined because no p-value is available.",
		pUnavailable: "p unavailable",
	},
	"id": {
		testNames: map[stats.TestFamily]string{
			stats.FamilyAssociation: "Uji chi-square independensi",
			stats.FamilyPearson:     "Korelasi Pearson",
			stats.FamilySpearman:    "Korelasi peringkat Spearman",
			stats.FamilyAnova:       "ANOVA satu arah",
		},
		strengths: map[verdict.Strength]string{
			verdict.StrengthVeryWeak:   "sangat lemah",
			verdict.StrengthWeak:       "lemah",
			verdict.StrengthModerate:   "sedang",
			verdict.StrengthStrong:     "kuat",
			verdict.StrengthVeryStrong: "sangat kuat",
		},
		directions: map[verdict.Direction]string{
			verdict.DirectionPositive: "positif",
			verdict.DirectionNegative: "negatif",
		},
		correlation:  "**%s** antara *%s* dan *%s*: %s = %.3f, %s.",
		relationship: "Hubungan ini %s dan %s.",
		association:  "**%s** antara *%s* dan *%s*: χ² = %.3f (df = %d), %s, Cramér's V = %.3f.",
		anova:        "**%s** untuk *%s* berdasarkan kelompok *%s*: F = %.3f (df = %d, %d), %s, η² = %.3f.",
		significant:  "Hasil ini signifikan secara statistik pada α = %g.",
		notSig:       "Hasil ini tidak signifikan secara statistik pada α = %g.",
		unknownSig:   "Signifikansi tidak dapat ditentukan karena nilai p tidak tersedia.",
		pUnavailable: "nilai p tidak tersedia",
	},
}

// Languages lists the narrative languages.
func Languages() []string {
	out := make([]string, 0, len(phrasebooks))
	for lang := range phrasebooks {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// ResolveLanguage maps a language key to a supported one, falling back to English.
func ResolveLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if _, ok := phrasebooks[lang]; ok {
		return lang
	}
	return DefaultLanguage
}

// TestName returns the localized name of a test family.
func TestName(family stats.TestFamily, lang string) string {
	if name, ok := phrasebooks[ResolveLanguage(lang)].testNames[family]; ok {
		return name
	}
	return family.DisplayName()
}

func narrate(result stats.TestResult, names Names, in verdict.Interpretation) string {
	pb := phrasebooks[in.Language]
	name := TestName(result.Family, in.Language)
	p := formatP(result.PValue(), pb)

	var sentences []string
	switch {
	case result.ChiSquare != nil:
		c := result.ChiSquare
		sentences = append(sentences, fmt.Sprintf(pb.association, name, names.A, names.B, c.Statistic, c.DegreesOfFreedom, p, c.CramersV))
	case result.Anova != nil:
		a := result.Anova
		sentences = append(sentences, fmt.Sprintf(pb.anova, name, names.B, names.A, a.FStatistic, a.DFBetween, a.DFWithin, p, a.EtaSquared))
	default:
		c, ok := result.Correlation()
		if !ok {
			return ""
		}
		symbol := "r"
		if c.Method == stats.FamilySpearman {
			symbol = "ρ"
		}
		sentences = append(sentences,
			fmt.Sprintf(pb.correlation, name, names.A, names.B, symbol, c.Coefficient, p),
			fmt.Sprintf(pb.relationship, pb.strengths[in.Strength], pb.directions[in.Direction]))
	}

	switch {
	case !in.SignificanceKnown:
		sentences = append(sentences, pb.unknownSig)
	case in.Significant:
		sentences = append(sentences, fmt.Sprintf(pb.significant, in.Threshold))
	default:
		sentences = append(sentences, fmt.Sprintf(pb.notSig, in.Threshold))
	}
	return strings.Join(sentences, " ")
}

func formatP(p stats.PValue, pb phrasebook) string {
	switch {
	case !p.Available:
		return pb.pUnavailable
	case p.Value < 0.001:
		return "p < 0.001"
	default:
		return fmt.Sprintf("p = %.3f", p.Value)
	}
}

package coercer

import (
	"math"
	"strconv"
	"strings"

	"surveystat/domain/variable"
)

// CoercionConfig controls type inference for raw spreadsheet cells.
type CoercionConfig struct {
	NumericThreshold float64  `json:"numeric_threshold"` // share of present cells that must parse as numbers
	MissingTokens    []string `json:"missing_tokens"`    // case-insensitive cell values treated as missing
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NumericThreshold: 0.8,
		MissingTokens:    []string{"", "na", "n/a", "nan", "null", "-"},
	}
}

// TypeCoercer turns raw cell strings into typed columns.
type TypeCoercer struct {
	config  CoercionConfig
	missing map[string]bool
}

// NewTypeCoercer creates a coercer. Non-positive thresholds take the default.
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	if config.NumericThreshold <= 0 || config.NumericThreshold > 1 {
		config.NumericThreshold = DefaultCoercionConfig().NumericThreshold
	}
	if config.MissingTokens == nil {
		config.MissingTokens = DefaultCoercionConfig().MissingTokens
	}
	missing := make(map[string]bool, len(config.MissingTokens))
	for _, tok := range config.MissingTokens {
		missing[strings.ToLower(strings.TrimSpace(tok))] = true
	}
	return &TypeCoercer{config: config, missing: missing}
}

// IsMissing reports whether a raw cell counts as missing.
func (c *TypeCoercer) IsMissing(raw string) bool {
	return c.missing[strings.ToLower(strings.TrimSpace(raw))]
}

// TypeAnalysis summarizes how the cells of one column parse.
type TypeAnalysis struct {
	Present      int
	Numeric      int
	NumericRatio float64
}

// Analyze counts present and numeric cells.
func (c *TypeCoercer) Analyze(raw []string) TypeAnalysis {
	var a TypeAnalysis
	for _, cell := range raw {
		if c.IsMissing(cell) {
			continue
		}
		a.Present++
		if _, ok := ParseNumber(cell); ok {
			a.Numeric++
		}
	}
	if a.Present > 0 {
		a.NumericRatio = float64(a.Numeric) / float64(a.Present)
	}
	return a
}

// CoerceColumn builds a column from raw cells. The column is numeric when at
// least NumericThreshold of its present cells parse as numbers; cells that
// do not parse then become missing. An all-missing column is textual.
func (c *TypeCoercer) CoerceColumn(name string, raw []string) variable.Column {
	analysis := c.Analyze(raw)
	if analysis.Present > 0 && analysis.NumericRatio >= c.config.NumericThreshold {
		col := variable.Column{Name: name, Kind: variable.KindNumeric, Values: make([]variable.Value, len(raw))}
		for i, cell := range raw {
			if c.IsMissing(cell) {
				continue
			}
			if f, ok := ParseNumber(cell); ok {
				col.Values[i] = variable.Num(f)
			}
		}
		return col
	}

	col := variable.Column{Name: name, Kind: variable.KindTextual, Values: make([]variable.Value, len(raw))}
	for i, cell := range raw {
		if !c.IsMissing(cell) {
			col.Values[i] = variable.Text(strings.TrimSpace(cell))
		}
	}
	return col
}

// ParseNumber parses a numeric cell. It accepts currency symbols, percent
// signs, parenthesized negatives and comma decimal separators.
func ParseNumber(s string) (float64, bool) {
	cleanVal := strings.TrimSpace(s)
	if cleanVal == "" {
		return 0, false
	}

	// (123) -> -123
	isNegative := false
	if strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimSuffix(strings.TrimPrefix(cleanVal, "("), ")")
		isNegative = true
	}

	for _, symbol := range []string{"$", "€", "£", "¥", "Rp", "USD", "EUR", "IDR"} {
		cleanVal = strings.ReplaceAll(cleanVal, symbol, "")
	}
	cleanVal = strings.TrimSpace(strings.ReplaceAll(cleanVal, "%", ""))

	hasComma := strings.Contains(cleanVal, ",")
	hasPeriod := strings.Contains(cleanVal, ".")
	hasSpace := strings.Contains(cleanVal, " ")

	switch {
	case hasComma && (hasPeriod || hasSpace):
		// 1.234,56 or 1 234,56 use a decimal comma; 1,234.56 does not.
		commaIdx := strings.LastIndex(cleanVal, ",")
		if commaIdx > strings.LastIndex(cleanVal, ".") {
			cleanVal = strings.NewReplacer(".", "", " ", "", ",", ".").Replace(cleanVal)
		} else {
			cleanVal = strings.NewReplacer(",", "", " ", "").Replace(cleanVal)
		}
	case hasComma:
		cleanVal = strings.ReplaceAll(cleanVal, ",", ".")
	default:
		cleanVal = strings.ReplaceAll(cleanVal, " ", "")
	}

	if isNegative {
		cleanVal = "-" + cleanVal
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

package variable

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the declared storage kind of a column.
type Kind string

const (
	KindNumeric Kind = "numeric"
	KindTextual Kind = "textual"
)

// Value is a single cell. Missing cells have Present == false.
type Value struct {
	Number  float64
	Text    string
	Present bool
}

// Num returns a present numeric value, or a missing one for NaN.
func Num(f float64) Value {
	if math.IsNaN(f) {
		return Missing()
	}
	return Value{Number: f, Present: true}
}

// Text returns a present textual value, or a missing one for blank input.
func Text(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Missing()
	}
	return Value{Text: s, Present: true}
}

// Missing returns an absent value.
func Missing() Value {
	return Value{}
}

// Label renders the value as a category label for the given kind.
func (v Value) Label(kind Kind) string {
	if !v.Present {
		return ""
	}
	if kind == KindNumeric {
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	}
	return v.Text
}

// Column is a named sequence of values of one kind.
type Column struct {
	Name   string  `json:"name"`
	Kind   Kind    `json:"kind"`
	Values []Value `json:"-"`
}

// NewNumericColumn builds a numeric column; NaN entries are missing.
func NewNumericColumn(name string, values []float64) Column {
	col := Column{Name: name, Kind: KindNumeric, Values: make([]Value, len(values))}
	for i, f := range values {
		col.Values[i] = Num(f)
	}
	return col
}

// NewTextColumn builds a textual column; blank entries are missing.
func NewTextColumn(name string, values []string) Column {
	col := Column{Name: name, Kind: KindTextual, Values: make([]Value, len(values))}
	for i, s := range values {
		col.Values[i] = Text(s)
	}
	return col
}

// Len returns the number of rows including missing ones.
func (c Column) Len() int {
	return len(c.Values)
}

// PresentCount returns the number of non-missing values.
func (c Column) PresentCount() int {
	n := 0
	for _, v := range c.Values {
		if v.Present {
			n++
		}
	}
	return n
}

// DistinctCount returns the number of distinct non-missing values.
func (c Column) DistinctCount() int {
	seen := make(map[string]struct{})
	for _, v := range c.Values {
		if v.Present {
			seen[v.Label(c.Kind)] = struct{}{}
		}
	}
	return len(seen)
}

// Numbers returns the present numeric values in row order.
func (c Column) Numbers() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if v.Present {
			out = append(out, v.Number)
		}
	}
	return out
}

// Labels returns the present values as category labels in row order.
func (c Column) Labels() []string {
	out := make([]string, 0, len(c.Values))
	for _, v := range c.Values {
		if v.Present {
			out = append(out, v.Label(c.Kind))
		}
	}
	return out
}

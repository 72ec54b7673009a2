package variable

// Classification is the measurement level assigned to a column.
type Classification string

const (
	Nominal    Classification = "nominal"
	Ordinal    Classification = "ordinal"
	Continuous Classification = "continuous"
)

// Classification cutoffs on distinct non-missing values.
const (
	// Numeric columns with more distinct values than this are continuous.
	ContinuousMinDistinct = 10
	// Textual columns with at most this many distinct values are nominal.
	NominalMaxDistinct = 5
)

// Classifications lists every classification in a stable order.
var Classifications = []Classification{Nominal, Ordinal, Continuous}

// IsCategorical reports whether values of this classification are treated as groups.
func (c Classification) IsCategorical() bool {
	return c == Nominal
}

// Classify assigns a classification from the column kind and its distinct
// value count. It holds no state and is recomputed on every call.
func Classify(c Column) Classification {
	distinct := c.DistinctCount()
	switch c.Kind {
	case KindNumeric:
		if distinct > ContinuousMinDistinct {
			return Continuous
		}
		return Ordinal
	default:
		if distinct <= NominalMaxDistinct {
			return Nominal
		}
		return Ordinal
	}
}

// Profile summarizes what the engine knows about one column of a pair.
type Profile struct {
	Name           string         `json:"name"`
	Kind           Kind           `json:"kind"`
	Classification Classification `json:"classification"`
	Distinct       int            `json:"distinct"`
	Present        int            `json:"present"`
	Missing        int            `json:"missing"`
	// Discretized marks a numeric column the caller asked to bin; it is
	// analysed as nominal regardless of its distinct count.
	Discretized bool `json:"discretized,omitempty"`
}

// ProfileOf classifies c. bins > 1 on a numeric column requests discretization.
func ProfileOf(c Column, bins int) Profile {
	present := c.PresentCount()
	p := Profile{
		Name:           c.Name,
		Kind:           c.Kind,
		Classification: Classify(c),
		Distinct:       c.DistinctCount(),
		Present:        present,
		Missing:        c.Len() - present,
	}
	if bins > 1 && c.Kind == KindNumeric {
		p.Discretized = true
		p.Classification = Nominal
	}
	return p
}

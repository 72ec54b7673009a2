package dataset

import (
	"surveystat/domain/core"
	"surveystat/domain/variable"
)

// Dataset is a loaded table of named columns sharing one row index.
type Dataset struct {
	ID       core.DatasetID    `json:"id"`
	Name     string            `json:"name"`
	Source   string            `json:"source"` // "xlsx" or "csv"
	Sheet    string            `json:"sheet,omitempty"`
	RowCount int               `json:"row_count"`
	Columns  []variable.Column `json:"-"`
	LoadedAt core.Timestamp    `json:"loaded_at"`
}

// Column returns the column with the given name.
func (d *Dataset) Column(name string) (variable.Column, error) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, nil
		}
	}
	return variable.Column{}, core.NewVariableNotFoundError(name)
}

// Fields describes every column for display.
func (d *Dataset) Fields() []FieldInfo {
	fields := make([]FieldInfo, len(d.Columns))
	for i, c := range d.Columns {
		present := c.PresentCount()
		fields[i] = FieldInfo{
			Name:           c.Name,
			Kind:           c.Kind,
			Classification: variable.Classify(c),
			UniqueCount:    c.DistinctCount(),
			MissingCount:   c.Len() - present,
		}
	}
	return fields
}

// Summary returns the listing view of the dataset.
func (d *Dataset) Summary() Summary {
	return Summary{
		ID:          d.ID,
		Name:        d.Name,
		Source:      d.Source,
		RecordCount: d.RowCount,
		FieldCount:  len(d.Columns),
		LoadedAt:    d.LoadedAt,
	}
}

// FieldInfo describes a single field/column in the dataset
type FieldInfo struct {
	Name           string                  `json:"name"`
	Kind           variable.Kind           `json:"kind"`
	Classification variable.Classification `json:"classification"`
	UniqueCount    int                     `json:"unique_count"`
	MissingCount   int                     `json:"missing_count"`
}

// Summary is the listing view of a dataset.
type Summary struct {
	ID          core.DatasetID `json:"id"`
	Name        string         `json:"name"`
	Source      string         `json:"source"`
	RecordCount int            `json:"record_count"`
	FieldCount  int            `json:"field_count"`
	LoadedAt    core.Timestamp `json:"loaded_at"`
}

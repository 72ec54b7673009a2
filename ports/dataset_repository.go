package ports

import (
	"context"

	"surveystat/domain/core"
	"surveystat/domain/dataset"
)

// DatasetRepository holds loaded datasets for the lifetime of the process.
type DatasetRepository interface {
	Save(ctx context.Context, ds *dataset.Dataset) error
	Get(ctx context.Context, id core.DatasetID) (*dataset.Dataset, error)
	List(ctx context.Context) ([]dataset.Summary, error)
	Delete(ctx context.Context, id core.DatasetID) error
}

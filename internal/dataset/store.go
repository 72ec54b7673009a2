// Package dataset keeps uploaded datasets in memory for the lifetime of the
// server process.
package dataset

import (
	"context"
	"sort"
	"sync"

	"surveystat/domain/core"
	domain "surveystat/domain/dataset"
	"surveystat/ports"
)

// MemoryStore is a ports.DatasetRepository backed by a map.
type MemoryStore struct {
	mu       sync.RWMutex
	datasets map[core.DatasetID]*domain.Dataset
}

var _ ports.DatasetRepository = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{datasets: make(map[core.DatasetID]*domain.Dataset)}
}

// Save stores ds under its ID, replacing any previous dataset with that ID.
func (s *MemoryStore) Save(ctx context.Context, ds *domain.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ds.ID == "" {
		ds.ID = core.NewDatasetID()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[ds.ID] = ds
	return nil
}

// Get returns the dataset with the given ID.
func (s *MemoryStore) Get(ctx context.Context, id core.DatasetID) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.datasets[id]
	if !ok {
		return nil, core.NewNotFoundError("dataset", id.String())
	}
	return ds, nil
}

// List returns dataset summaries, most recently loaded first.
func (s *MemoryStore) List(ctx context.Context) ([]domain.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]domain.Summary, 0, len(s.datasets))
	for _, ds := range s.datasets {
		out = append(out, ds.Summary())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].LoadedAt.Time(), out[j].LoadedAt.Time()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Delete removes a dataset. Deleting an unknown ID is a not-found error.
func (s *MemoryStore) Delete(ctx context.Context, id core.DatasetID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.datasets[id]; !ok {
		return core.NewNotFoundError("dataset", id.String())
	}
	delete(s.datasets, id)
	return nil
}

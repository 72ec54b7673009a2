package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"surveystat/domain/core"
	"surveystat/domain/dataset"
	"surveystat/domain/verdict"
	"surveystat/internal"
	"surveystat/internal/errors"
)

const DefaultSweepConcurrency = 4

// SweepService analyzes every pair of a column set with bounded concurrency.
type SweepService struct {
	analysis *AnalysisService
	sem      *semaphore.Weighted
	logger   *internal.Logger
}

// PairOutcome is the result for one pair: a verdict, an error code, or both
// when the statistic has no p-value.
type PairOutcome struct {
	VariableA string           `json:"variable_a"`
	VariableB string           `json:"variable_b"`
	Verdict   *verdict.Verdict `json:"verdict,omitempty"`
	ErrorCode string           `json:"error_code,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// Significant reports whether the pair produced a significant verdict.
func (p PairOutcome) Significant() bool {
	return p.Verdict != nil && p.Verdict.Interpretation.Significant
}

// SweepReport lists pair outcomes in the order the pairs were enumerated.
type SweepReport struct {
	DatasetID   core.DatasetID `json:"dataset_id"`
	Columns     []string       `json:"columns"`
	Pairs       []PairOutcome  `json:"pairs"`
	Significant int            `json:"significant"`
	Failed      int            `json:"failed"`
	RuntimeMs   int64          `json:"runtime_ms"`
}

// NewSweepService creates a sweep over analysis with at most concurrency
// pairs in flight.
func NewSweepService(analysis *AnalysisService, concurrency int, logger *internal.Logger) *SweepService {
	if concurrency < 1 {
		concurrency = DefaultSweepConcurrency
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &SweepService{
		analysis: analysis,
		sem:      semaphore.NewWeighted(int64(concurrency)),
		logger:   logger.With("sweep"),
	}
}

// Sweep analyzes every unordered pair of columns. An empty column list means
// every column of the dataset. Per-pair failures are reported in the outcome;
// only cancellation and unknown columns fail the sweep.
func (s *SweepService) Sweep(ctx context.Context, ds *dataset.Dataset, columns []string, opts Options) (*SweepReport, error) {
	start := time.Now()

	if len(columns) == 0 {
		for _, c := range ds.Columns {
			columns = append(columns, c.Name)
		}
	}
	if len(columns) < 2 {
		return nil, errors.InvalidInput("a sweep needs at least two columns")
	}
	seen := make(map[string]bool, len(columns))
	for _, name := range columns {
		if seen[name] {
			return nil, errors.InvalidInput(fmt.Sprintf("column %q listed twice", name))
		}
		seen[name] = true
		if _, err := ds.Column(name); err != nil {
			return nil, errors.FromAnalysis(err)
		}
	}

	var pairs []PairOutcome
	for i := 0; i < len(columns); i++ {
		for j := i + 1; j < len(columns); j++ {
			pairs = append(pairs, PairOutcome{VariableA: columns[i], VariableB: columns[j]})
		}
	}
	s.logger.Info("sweeping %d pairs over %d columns of dataset %s", len(pairs), len(columns), ds.ID)

	var wg sync.WaitGroup
	var acquireErr error
	for i := range pairs {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			acquireErr = err
			break
		}
		wg.Add(1)
		go func(p *PairOutcome) {
			defer wg.Done()
			defer s.sem.Release(1)
			s.analyzePair(ds, p, opts)
		}(&pairs[i])
	}
	wg.Wait()

	if acquireErr != nil {
		s.logger.Warn("sweep of dataset %s cancelled: %v", ds.ID, acquireErr)
		return nil, acquireErr
	}

	report := &SweepReport{
		DatasetID: ds.ID,
		Columns:   columns,
		Pairs:     pairs,
		RuntimeMs: time.Since(start).Milliseconds(),
	}
	for _, p := range pairs {
		if p.Significant() {
			report.Significant++
		}
		if p.Verdict == nil {
			report.Failed++
		}
	}
	s.logger.Info("sweep of dataset %s done: %d significant, %d failed, %dms",
		ds.ID, report.Significant, report.Failed, report.RuntimeMs)
	return report, nil
}

func (s *SweepService) analyzePair(ds *dataset.Dataset, p *PairOutcome, opts Options) {
	v, err := s.analysis.AnalyzeColumns(ds, p.VariableA, p.VariableB, opts)
	p.Verdict = v
	if err != nil {
		appErr := errors.FromAnalysis(err)
		p.ErrorCode = appErr.Code
		p.Error = err.Error()
		s.logger.Debug("pair %s/%s: %s", p.VariableA, p.VariableB, appErr.Code)
	}
}

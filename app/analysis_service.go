package app

import (
	"fmt"

	"surveystat/adapters/stats/executors"
	"surveystat/adapters/stats/interpret"
	"surveystat/domain/core"
	"surveystat/domain/dataset"
	"surveystat/domain/stats"
	"surveystat/domain/variable"
	"surveystat/domain/verdict"
	"surveystat/internal/errors"
	"surveystat/ports"
)

// AnalysisService runs the full pipeline for one pair of columns:
// classify, select, normalize, align, execute, interpret. It holds no
// per-call state and is safe for concurrent use.
type AnalysisService struct {
	executors *executors.Registry
	defaults  Options
}

// NewAnalysisService creates the engine. A nil p-value source yields
// verdicts without significance (and an UnavailableSignificanceError).
func NewAnalysisService(pvalues ports.PValueSource, defaults Options) *AnalysisService {
	return &AnalysisService{
		executors: executors.NewRegistry(pvalues),
		defaults:  defaults.Merge(DefaultOptions()),
	}
}

// Defaults returns the options applied to zero fields of each request.
func (s *AnalysisService) Defaults() Options {
	return s.defaults
}

// AnalyzeColumns looks up two columns by name and analyzes them.
func (s *AnalysisService) AnalyzeColumns(ds *dataset.Dataset, nameA, nameB string, opts Options) (*verdict.Verdict, error) {
	a, err := ds.Column(nameA)
	if err != nil {
		return nil, err
	}
	b, err := ds.Column(nameB)
	if err != nil {
		return nil, err
	}
	return s.Analyze(a, b, opts)
}

// Analyze produces the verdict for a pair of columns. When the statistic was
// computed but no p-value could be derived, the verdict is returned together
// with a *core.UnavailableSignificanceError.
func (s *AnalysisService) Analyze(a, b variable.Column, opts Options) (*verdict.Verdict, error) {
	opts = opts.Merge(s.defaults)
	if err := opts.Validate(); err != nil {
		return nil, errors.WithCode(errors.CodeValidationError, err)
	}
	if a.Len() != b.Len() {
		return nil, errors.WithCode(errors.CodeInvalidInput,
			fmt.Errorf("%w: %q has %d rows, %q has %d", ErrMisalignedColumns, a.Name, a.Len(), b.Name, b.Len()))
	}

	profA := variable.ProfileOf(a, opts.BinCountA)
	profB := variable.ProfileOf(b, opts.BinCountB)

	family := stats.SelectTest(profA.Classification, profB.Classification)
	if family.IsCorrelation() && opts.CorrelationMethod != "" {
		family = opts.CorrelationMethod
	}

	input, names, err := s.prepare(family, a, b, profA, opts)
	if err != nil {
		return nil, err
	}

	exec, err := s.executors.For(family)
	if err != nil {
		return nil, err
	}
	result, err := exec.Execute(input)
	if err != nil {
		return nil, err
	}

	v := &verdict.Verdict{
		VariableA:      profA,
		VariableB:      profB,
		Family:         family,
		TestName:       interpret.TestName(family, opts.Language),
		Result:         result,
		Interpretation: interpret.Interpret(result, names, opts.interpretOptions()),
	}
	if err := v.Seal(); err != nil {
		return nil, fmt.Errorf("failed to fingerprint verdict: %w", err)
	}

	if p := result.PValue(); !p.Available {
		return v, &core.UnavailableSignificanceError{Test: string(family), Reason: p.Note}
	}
	return v, nil
}

// prepare turns the two columns into executor input for family. Each column
// is normalized or encoded on its own; only then are the rows where both
// have a value kept.
func (s *AnalysisService) prepare(family stats.TestFamily, a, b variable.Column, profA variable.Profile, opts Options) (executors.Input, interpret.Names, error) {
	in := executors.Input{VariableA: a.Name, VariableB: b.Name}
	names := interpret.Names{A: a.Name, B: b.Name}

	switch family {
	case stats.FamilyAssociation:
		sa, err := categorize(a, opts.normalizerOptions(opts.BinCountA))
		if err != nil {
			return in, names, err
		}
		sb, err := categorize(b, opts.normalizerOptions(opts.BinCountB))
		if err != nil {
			return in, names, err
		}
		rows := sharedRows(sa, sb)
		in.GroupsA, in.CategoriesA = sa.labelsAt(rows)
		in.GroupsB, in.CategoriesB = sb.labelsAt(rows)

	case stats.FamilyAnova:
		// The nominal side groups, the other side is the response. Small
		// groups are valid ANOVA input, so only binning applies here.
		group, response, bins, order := a, b, opts.BinCountA, opts.OrderB
		if profA.Classification != variable.Nominal {
			group, response, bins, order = b, a, opts.BinCountB, opts.OrderA
		}
		groupOpts := opts.normalizerOptions(bins)
		groupOpts.MinFrequency = 1
		groups, err := categorize(group, groupOpts)
		if err != nil {
			return in, names, err
		}
		values := encode(response, order)
		rows := sharedRows(groups, values)

		in = executors.Input{VariableA: group.Name, VariableB: response.Name}
		in.GroupsA, in.CategoriesA = groups.labelsAt(rows)
		in.ValuesB = values.valuesAt(rows)
		names = interpret.Names{A: group.Name, B: response.Name}

	default:
		ea, eb := encode(a, opts.OrderA), encode(b, opts.OrderB)
		rows := sharedRows(ea, eb)
		in.ValuesA = ea.valuesAt(rows)
		in.ValuesB = eb.valuesAt(rows)
	}
	return in, names, nil
}

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"surveystat/adapters/stats/describe"
	"surveystat/app"
	"surveystat/domain/dataset"
	"surveystat/domain/stats"
	"surveystat/domain/verdict"
	"surveystat/internal/config"
	"surveystat/internal/container"
	"surveystat/internal/errors"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	file   string
	format string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:           "surveystat",
		Short:         "Bivariate analysis of survey spreadsheets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&g.file, "file", "f", "", "Spreadsheet to analyze (.xlsx, .xlsm or .csv)")
	rootCmd.PersistentFlags().StringVar(&g.format, "format", formatJSON, "Output format: json or yaml")

	rootCmd.AddCommand(
		newColumnsCmd(g),
		newDescribeCmd(g),
		newAnalyzeCmd(g),
		newSweepCmd(g),
	)
	return rootCmd
}

// load wires the services from the environment and reads the input file.
func (g *globalFlags) load() (*container.Container, *dataset.Dataset, error) {
	if g.file == "" {
		return nil, nil, errors.InvalidInput("--file is required")
	}
	if g.format != formatJSON && g.format != formatYAML {
		return nil, nil, errors.InvalidInput(fmt.Sprintf("unknown output format %q", g.format))
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	c, err := container.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	ds, err := c.Reader.ReadFile(g.file)
	if err != nil {
		return nil, nil, err
	}
	return c, ds, nil
}

func newColumnsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "List the columns of a spreadsheet with their classification",
		Long: `List every column with its storage kind, measurement level,
distinct value count and missing cell count.

Example: surveystat columns --file responses.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ds, err := g.load()
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), g.format, ds.Fields())
		},
	}
}

func newDescribeCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "describe [column]",
		Short: "Summarize one column",
		Long: `Print descriptive statistics for a numeric column or a frequency
table for a categorical one.

Example: surveystat describe age --file responses.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ds, err := g.load()
			if err != nil {
				return err
			}
			col, err := ds.Column(args[0])
			if err != nil {
				return errors.FromAnalysis(err)
			}
			return writeOutput(cmd.OutOrStdout(), g.format, describe.Describe(col))
		},
	}
}

// optionFlags override fields of the engine options.
type optionFlags struct {
	path      string
	language  string
	threshold float64
	binsA     int
	binsB     int
	method    string
	orderA    []string
	orderB    []string
}

func (o *optionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.path, "options", "", "YAML file with analysis options")
	cmd.Flags().StringVar(&o.language, "lang", "", "Narrative language (en or id)")
	cmd.Flags().Float64Var(&o.threshold, "threshold", 0, "Significance threshold")
	cmd.Flags().IntVar(&o.binsA, "bins-a", 0, "Discretize a numeric first column into N buckets")
	cmd.Flags().IntVar(&o.binsB, "bins-b", 0, "Discretize a numeric second column into N buckets")
	cmd.Flags().StringVar(&o.method, "method", "", "Force the correlation method (pearson or spearman)")
	cmd.Flags().StringSliceVar(&o.orderA, "order-a", nil, "Category order of a textual ordinal first column, lowest first")
	cmd.Flags().StringSliceVar(&o.orderB, "order-b", nil, "Category order of a textual ordinal second column, lowest first")
}

// options reads the options file, then applies the command line flags on top.
func (o *optionFlags) options() (app.Options, error) {
	opts, err := loadOptions(o.path)
	if err != nil {
		return app.Options{}, err
	}
	if o.language != "" {
		opts.Language = o.language
	}
	if o.threshold != 0 {
		opts.SignificanceThreshold = o.threshold
	}
	if o.binsA != 0 {
		opts.BinCountA = o.binsA
	}
	if o.binsB != 0 {
		opts.BinCountB = o.binsB
	}
	if o.method != "" {
		opts.CorrelationMethod = stats.TestFamily(o.method)
	}
	if len(o.orderA) > 0 {
		opts.OrderA = o.orderA
	}
	if len(o.orderB) > 0 {
		opts.OrderB = o.orderB
	}
	return opts, nil
}

// analyzeOutput carries the verdict and, when the p-value is unavailable,
// the reason.
type analyzeOutput struct {
	Verdict *verdict.Verdict `json:"verdict"`
	Warning string           `json:"warning,omitempty"`
}

func newAnalyzeCmd(g *globalFlags) *cobra.Command {
	opts := &optionFlags{}
	cmd := &cobra.Command{
		Use:   "analyze [variable-a] [variable-b]",
		Short: "Test the relationship between two columns",
		Long: `Select the test that fits both measurement levels, run it and
interpret the result.

Example: surveystat analyze gender satisfaction --file responses.xlsx --lang id`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := opts.options()
			if err != nil {
				return err
			}
			c, ds, err := g.load()
			if err != nil {
				return err
			}

			v, err := c.Analysis.AnalyzeColumns(ds, args[0], args[1], o)
			if v == nil {
				return errors.FromAnalysis(err)
			}
			out := analyzeOutput{Verdict: v}
			if err != nil {
				out.Warning = errors.FromAnalysis(err).Error()
			}
			return writeOutput(cmd.OutOrStdout(), g.format, out)
		},
	}
	opts.register(cmd)
	return cmd
}

func newSweepCmd(g *globalFlags) *cobra.Command {
	opts := &optionFlags{}
	var significantOnly bool

	cmd := &cobra.Command{
		Use:   "sweep [columns...]",
		Short: "Analyze every pair of columns",
		Long: `Run the analysis on every unordered pair of the given columns, or of
all columns when none are given. Pairs that cannot be tested are reported
with an error code instead of failing the sweep.

Example: surveystat sweep age gender satisfaction --file responses.csv --significant`,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := opts.options()
			if err != nil {
				return err
			}
			c, ds, err := g.load()
			if err != nil {
				return err
			}

			report, err := c.Sweep.Sweep(cmd.Context(), ds, args, o)
			if err != nil {
				return err
			}
			if significantOnly {
				kept := report.Pairs[:0]
				for _, p := range report.Pairs {
					if p.Significant() {
						kept = append(kept, p)
					}
				}
				report.Pairs = kept
			}
			return writeOutput(cmd.OutOrStdout(), g.format, report)
		},
	}
	opts.register(cmd)
	cmd.Flags().BoolVar(&significantOnly, "significant", false, "Only print significant pairs")
	return cmd
}

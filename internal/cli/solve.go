package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/seatplan/pkg/errors"
	seatio "github.com/matzehuels/seatplan/pkg/io"
	"github.com/matzehuels/seatplan/pkg/observability/metrics"
	"github.com/matzehuels/seatplan/pkg/pipeline"
	"github.com/matzehuels/seatplan/pkg/problem"
	"github.com/matzehuels/seatplan/pkg/solver"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	output      string        // also write the JSON result to this file
	format      string        // stdout format: text or json
	timeout     time.Duration // search deadline
	strict      bool          // fail when a guest is left without a seat
	refresh     bool          // ignore a cached result
	interactive bool          // browse the result in a TUI
	metricsFile string        // write Prometheus metrics here
	cache       cacheOpts
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	opts := solveOpts{
		format:  formatText,
		timeout: pipeline.DefaultTimeout,
	}

	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Search for a seating that satisfies every rule",
		Long: `Search for a seating that satisfies every rule in a problem file.

Guests are placed table by table in guest-list order; a placement that breaks
a rule is undone and the next guest is tried. Results are cached by problem
content, so re-running an unchanged file returns immediately.

The search is exponential in the worst case. --timeout bounds it; when the
deadline passes the command fails with a TIMEOUT error.`,
		Example: `  seatplan solve wedding.toml
  seatplan solve wedding.toml --format json -o result.json
  seatplan solve wedding.toml --interactive
  seatplan solve wedding.toml --redis localhost:6379`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProblemFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			if opts.interactive && opts.format == formatJSON {
				return errs.New(errs.ErrCodeInvalidInput, "--interactive cannot be combined with --format json")
			}
			return c.runSolve(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "also write the result as JSON to this file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text, json")
	cmd.Flags().DurationVarP(&opts.timeout, "timeout", "t", opts.timeout, "give up after this long (0 uses the default, negative disables)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "treat guests left without a seat as a failure")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore a cached result")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the seating interactively")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file (textfile collector format)")
	addCacheFlags(cmd, &opts.cache)

	return cmd
}

func addCacheFlags(cmd *cobra.Command, opts *cacheOpts) {
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "cache results in Redis at this address (default $"+redisEnv+")")
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON:
		return nil
	}
	return errs.New(errs.ErrCodeInvalidInput, "invalid format: %s (must be 'text' or 'json')", format)
}

func (c *CLI) runSolve(ctx context.Context, w io.Writer, path string, opts solveOpts) (err error) {
	logger := loggerFromContext(ctx)

	if opts.metricsFile != "" {
		m := metrics.New()
		installHooks(logger, m)
		defer func() {
			if werr := m.WriteTextfile(opts.metricsFile); werr != nil && err == nil {
				err = werr
			}
		}()
	}

	prog := newProgress(logger)
	p, err := seatio.LoadProblem(path)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %s: %d guests, %d tables of %d", filepath.Base(path), len(p.Guests), p.Tables, p.Seats))

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	popts := pipeline.Options{
		Timeout: opts.timeout,
		Strict:  opts.strict,
		Refresh: opts.refresh,
	}

	var spinner *Spinner
	if opts.format == formatText {
		spinner = newSpinner(ctx, "Searching for a seating...")
		popts.Progress = func(s solver.Stats) {
			spinner.SetMessage(fmt.Sprintf("Searching for a seating... %d placements", s.Placements))
		}
		spinner.Start()
	}
	res, err := runner.Solve(ctx, p, popts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := seatio.ExportResult(res, opts.output); err != nil {
			return err
		}
	}

	switch {
	case opts.format == formatJSON:
		if err := seatio.WriteResult(res, w); err != nil {
			return err
		}
	case opts.interactive && res.Solved:
		if err := browseSeating(p, res); err != nil {
			return err
		}
	default:
		printSolveResult(path, p, res, opts.output)
	}

	if !res.Solved {
		return errs.New(errs.ErrCodeUnsatisfiable, "no seating satisfies all rules")
	}
	return nil
}

func printSolveResult(path string, p *problem.Problem, res *pipeline.Result, output string) {
	if p.Name != "" {
		printKeyValue("Problem", p.Name)
	}
	printKeyValue("Run", res.RunID)
	if res.Solved {
		printSuccess("Seated %d guests at %d tables", len(p.Guests)-len(res.Unseated), p.Tables)
		fmt.Println(seatingTable(res.Tables, p.Seats, nil))
	} else {
		printError("No seating satisfies all rules")
	}
	fmt.Println(formatStats(res.Stats, res.Cached))

	if res.Solved && len(res.Unseated) > 0 {
		printWarning("%d guests without a seat: %s", len(res.Unseated), strings.Join(res.Unseated, ", "))
	}
	if output != "" {
		printFile(output)
	}

	if rejected := pipeline.Rejected(res.Rules); len(rejected) > 0 {
		printWarning("%d rules were ignored", len(rejected))
		for _, o := range rejected {
			printDetail("%s(%s, %s): %s", o.Kind, o.A, o.B, o.Message)
		}
		printNextStep("Review the rules", "seatplan rules "+path)
	} else if !res.Solved {
		printNextStep("Inspect the rules", "seatplan graph "+path+" -o rules.svg")
	}
}

func browseSeating(p *problem.Problem, res *pipeline.Result) error {
	rs, _ := p.BuildRules()
	model := NewSeatingModel(res.Tables, p.Seats, res.Unseated, rs)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/seatplan/pkg/errors"
	seatio "github.com/matzehuels/seatplan/pkg/io"
)

const (
	graphDOT = "dot"
	graphSVG = "svg"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "graph FILE",
		Short: "Render the rules of a problem file as a graph",
		Long: `Render the rules of a problem file as a Graphviz graph.

Friend groups are drawn as clusters and apart rules as dashed red edges. The
format defaults to the extension of --output, or DOT when writing to stdout.`,
		Example: `  seatplan graph wedding.toml | dot -Tpng > rules.png
  seatplan graph wedding.toml -o rules.svg`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProblemFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := graphFormat(format, output)
			if err != nil {
				return err
			}
			return runGraph(cmd.Context(), cmd.OutOrStdout(), args[0], output, f)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: dot, svg")

	return cmd
}

// graphFormat resolves the output format from the flag or the output path.
func graphFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if format == "" || format == "gv" {
			format = graphDOT
		}
	}
	switch format {
	case graphDOT, graphSVG:
		return format, nil
	}
	return "", errs.New(errs.ErrCodeInvalidInput, "invalid graph format: %s (must be 'dot' or 'svg')", format)
}

func runGraph(ctx context.Context, w io.Writer, path, output, format string) error {
	p, err := seatio.LoadProblem(path)
	if err != nil {
		return err
	}
	rs, _ := p.BuildRules()

	var data []byte
	if format == graphSVG {
		prog := newProgress(loggerFromContext(ctx))
		if data, err = rs.RenderSVG(ctx); err != nil {
			return errs.Wrap(errs.ErrCodeInternal, err, "render svg")
		}
		prog.done("Rendered SVG")
	} else {
		data = []byte(rs.ToDOT())
	}

	if output == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return err
	}
	printSuccess("Wrote %s graph", strings.ToUpper(format))
	printFile(output)
	return nil
}

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	seatio "github.com/matzehuels/seatplan/pkg/io"
	"github.com/matzehuels/seatplan/pkg/pipeline"
)

// rulesCommand creates the rules command.
func (c *CLI) rulesCommand() *cobra.Command {
	format := formatText

	cmd := &cobra.Command{
		Use:   "rules FILE",
		Short: "Show how each rule in a problem file is applied",
		Long: `Apply the rules of a problem file in order and show the outcome of each.

"together" rules are applied before "apart" rules. A rule that contradicts an
earlier one is ignored and reported here.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProblemFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			return runRules(cmd.Context(), cmd.OutOrStdout(), args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", format, "output format: text, json")

	return cmd
}

// rulesReport is the JSON form of the rules command.
type rulesReport struct {
	Rules   []pipeline.RuleOutcome `json:"rules"`
	Groups  [][]string             `json:"groups"`
	Enemies [][2]string            `json:"enemies"`
}

func runRules(ctx context.Context, w io.Writer, path, format string) error {
	p, err := seatio.LoadProblem(path)
	if err != nil {
		return err
	}
	rs, results := p.BuildRules()
	outs := pipeline.Outcomes(results)

	if format == formatJSON {
		return seatio.WriteJSON(rulesReport{
			Rules:   outs,
			Groups:  rs.Groups(),
			Enemies: rs.EnemyPairs(),
		}, w)
	}

	if len(outs) == 0 {
		printInfo("No rules")
		return nil
	}
	fmt.Println(rulesTable(outs))
	rejected := pipeline.Rejected(outs)
	if len(rejected) == 0 {
		printSuccess("All %d rules applied", len(outs))
	} else {
		printWarning("%d of %d rules ignored", len(rejected), len(outs))
	}
	loggerFromContext(ctx).Debug("rules", "groups", len(rs.Groups()), "enemy_pairs", len(rs.EnemyPairs()))
	return nil
}

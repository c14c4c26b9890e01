package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/seatplan/pkg/errors"
	seatio "github.com/matzehuels/seatplan/pkg/io"
	"github.com/matzehuels/seatplan/pkg/pipeline"
)

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	format := formatText

	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Check the seating given in a problem file against its rules",
		Long: `Check the fixed seating listed under "seating" in a problem file.

Each table is checked on its own: enemies may not share a table, and a full
table must hold every friend of each guest seated there.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProblemFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			return c.runCheck(cmd.Context(), cmd.OutOrStdout(), args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", format, "output format: text, json")

	return cmd
}

func (c *CLI) runCheck(ctx context.Context, w io.Writer, path, format string) error {
	p, err := seatio.LoadProblem(path)
	if err != nil {
		return err
	}
	if len(p.Seating) == 0 {
		return errs.New(errs.ErrCodeInvalidProblem, "%s has no seating to check", path)
	}

	report, err := pipeline.NewRunner(nil, nil, loggerFromContext(ctx)).Check(p)
	if err != nil {
		return err
	}

	if format == formatJSON {
		if err := seatio.WriteCheckReport(report, w); err != nil {
			return err
		}
	} else {
		if report.Satisfied {
			printSuccess("Seating satisfies all rules")
		} else {
			printError("Seating breaks the rules at %d tables", len(report.Violating))
		}
		fmt.Println(seatingTable(report.Tables, p.Seats, report.Violating))
		if len(report.Unseated) > 0 {
			printWarning("%d guests without a seat: %s", len(report.Unseated), strings.Join(report.Unseated, ", "))
		}
		if !report.Satisfied {
			printNextStep("Find a valid seating", "seatplan solve "+path)
		}
	}

	if !report.Satisfied {
		return errs.New(errs.ErrCodeUnsatisfiable, "seating breaks the rules at tables %v", report.Violating)
	}
	return nil
}

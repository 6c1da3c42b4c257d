package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/tinytest/pkg/resultsfile"
	"github.com/AndreyAkinshin/tinytest/pkg/tinytest"
)

func (a *app) newSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary FILE...",
		Short: "Print a summary of results documents",
		Long: `Print per-suite counts and the combined skip, failure and error lists of
one or more results documents or ledgers.

The exit code is 1 if any test failed or errored, or if any test was skipped
and summary.fail_on_skip is set.`,
		Example: `  tinytest summary .tinytest/results.json
  tinytest summary unit.yaml integration.yaml`,
		Args: minArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			docs, err := readDocuments(args)
			if err != nil {
				return err
			}
			a.exitCode = a.printSummary(docs)
			return nil
		},
	}
}

// printSummary prints docs and returns the exit code they imply.
func (a *app) printSummary(docs []resultsfile.Document) int {
	order, bySuite := resultsfile.BySuite(docs)
	total := resultsfile.Merge(docs...)

	a.section("test summary")
	rows := make([][]string, 0, len(order))
	for _, suite := range order {
		r := bySuite[suite]
		rows = append(rows, []string{
			suite,
			fmt.Sprint(r.Total()),
			fmt.Sprint(r.Passed()),
			fmt.Sprint(r.Failed()),
			fmt.Sprint(r.Skipped()),
			fmt.Sprint(r.Errors()),
		})
	}
	a.out.Table([]string{"Suite", "Total", "Passed", "Failed", "Skipped", "Errors"}, rows)
	a.out.Println("")

	tinytest.PrintResults(a.out.Out(), total)
	return a.finish(total)
}

// finish prints the closing line for total and returns the exit code.
func (a *app) finish(total tinytest.TestResults) int {
	code := tinytest.ExitCodeFor(total)
	if code == tinytest.ExitSuccess && a.cfg.Summary.FailOnSkip && total.Skipped() > 0 {
		a.out.FinalFailure("%d of %d tests were skipped.", total.Skipped(), total.Total())
		return tinytest.ExitFailure
	}
	if code == tinytest.ExitSuccess {
		a.out.FinalSuccess("All %d tests passed or were skipped.", total.Total())
		return code
	}
	a.out.FinalFailure("%d of %d tests failed, %d errors.", total.Failed(), total.Total(), total.Errors())
	return code
}

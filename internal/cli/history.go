package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/tinytest/internal/errors"
	"github.com/AndreyAkinshin/tinytest/internal/history"
	"github.com/AndreyAkinshin/tinytest/pkg/tinytest"
)

func (a *app) newHistoryCommand() *cobra.Command {
	var database string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Record and list runs in the history database",
		Long: `Keep results documents in a SQLite database so runs can be compared over time.

The database defaults to history.database from the configuration.`,
	}
	cmd.PersistentFlags().StringVar(&database, "db", "", "history database path")

	open := func() (*history.Store, error) {
		path := database
		if path == "" {
			path = a.cfg.History.Database
		}
		store, err := history.NewStore(path)
		if err != nil {
			return nil, errors.WrapKind(errors.KindEnvironment, err, "cannot open history database")
		}
		return store, nil
	}

	cmd.AddCommand(a.newHistoryRecordCommand(open), a.newHistoryListCommand(open))
	return cmd
}

type storeOpener func() (*history.Store, error)

func (a *app) newHistoryRecordCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "record FILE...",
		Short: "Record results documents",
		Long: `Record every run of the given documents or ledgers. Runs that are already
recorded are reported and skipped.`,
		Args: minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := readDocuments(args)
			if err != nil {
				return err
			}
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			recorded := 0
			for _, doc := range docs {
				err := store.Record(cmd.Context(), doc)
				if stderrors.Is(err, history.ErrDuplicateRun) {
					a.out.Warning("%s run %s is already recorded", doc.Suite, doc.RunID)
					continue
				}
				if err != nil {
					return errors.WrapKind(errors.KindEnvironment, err, "cannot record "+doc.Suite)
				}
				recorded++
			}
			a.out.Info("Recorded %d of %d run(s) in %s", recorded, len(docs), store.Path())
			return nil
		},
	}
}

func (a *app) newHistoryListCommand(open storeOpener) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list [--limit N]",
		Short: "List recorded runs, newest first",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return errors.Configf("--limit must not be negative, got %d", limit)
			}
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()
			return a.listHistory(cmd.Context(), store, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to list (0 lists all)")
	return cmd
}

func (a *app) listHistory(ctx context.Context, store *history.Store, limit int) error {
	runs, err := store.List(ctx, limit)
	if err != nil {
		return errors.WrapKind(errors.KindEnvironment, err, "cannot list runs")
	}
	if len(runs) == 0 {
		a.out.Info("No runs recorded in %s", store.Path())
		return nil
	}

	a.section("run history")
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		r := run.Results
		rows = append(rows, []string{
			run.RunID.String()[:8],
			run.Suite,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			fmt.Sprint(r.Total()),
			fmt.Sprint(r.Passed()),
			fmt.Sprint(r.Failed()),
			fmt.Sprint(r.Skipped()),
			fmt.Sprint(r.Errors()),
			status(r),
		})
	}
	a.out.Table([]string{"Run", "Suite", "Created", "Total", "Passed", "Failed", "Skipped", "Errors", "Status"}, rows)

	totals, err := store.Totals(ctx)
	if err != nil {
		return errors.WrapKind(errors.KindEnvironment, err, "cannot total runs")
	}
	a.out.Println("")
	a.out.SummaryItem("Listed runs", fmt.Sprint(len(runs)))
	a.out.SummaryItem("All-time tests", fmt.Sprint(totals.Total()))
	if totals.OK() {
		a.out.SummaryPassed("All-time status", status(totals))
	} else {
		a.out.SummaryFailed("All-time status", status(totals))
	}
	return nil
}

func status(r tinytest.TestResults) string {
	if r.OK() {
		return "ok"
	}
	return "failing"
}

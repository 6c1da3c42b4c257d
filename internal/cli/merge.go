package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/tinytest/internal/errors"
	"github.com/AndreyAkinshin/tinytest/pkg/resultsfile"
)

type mergeOptions struct {
	output string
	suite  string
	ledger bool
}

func (a *app) newMergeCommand() *cobra.Command {
	opts := &mergeOptions{}
	cmd := &cobra.Command{
		Use:   "merge [-o OUT] FILE...",
		Short: "Combine results documents into one",
		Long: `Combine the results of every input document into a single document.

With --ledger the input documents are kept as separate runs of one ledger
instead. The output format follows the extension of OUT; without -o the
document is written to results.directory in results.format.`,
		Example: `  tinytest merge -o all.json unit.json integration.json
  tinytest merge --ledger -o runs.yaml a.yaml b.yaml`,
		Args: minArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runMerge(opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	cmd.Flags().StringVar(&opts.suite, "suite", "merged", "suite name of the merged document")
	cmd.Flags().BoolVar(&opts.ledger, "ledger", false, "write a ledger of the input runs instead of one merged document")
	return cmd
}

func (a *app) runMerge(opts *mergeOptions, args []string) error {
	docs, err := readDocuments(args)
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		name := "merged." + a.cfg.Results.Format
		if opts.ledger {
			name = "ledger." + a.cfg.Results.Format
		}
		out = filepath.Join(a.cfg.Results.Directory, name)
	}
	if err := checkOutputPath(out); err != nil {
		return err
	}

	if opts.ledger {
		err = resultsfile.SaveLedger(out, resultsfile.Ledger{Version: resultsfile.Version, Runs: docs})
	} else {
		err = resultsfile.Save(out, resultsfile.NewDocument(opts.suite, resultsfile.Merge(docs...)))
	}
	if err != nil {
		return errors.WrapKind(errors.KindEnvironment, err, "cannot write "+out)
	}

	a.out.Info("Merged %d run(s) from %d file(s) into %s", len(docs), len(args), out)
	return nil
}

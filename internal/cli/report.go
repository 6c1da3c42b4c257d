package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/tinytest/internal/errors"
	"github.com/AndreyAkinshin/tinytest/internal/filelock"
	"github.com/AndreyAkinshin/tinytest/internal/report"
)

type reportOptions struct {
	output string
	title  string
	html   bool
}

func (a *app) newReportCommand() *cobra.Command {
	opts := &reportOptions{}
	cmd := &cobra.Command{
		Use:   "report [--html] [-o OUT] FILE...",
		Short: "Render results documents as Markdown or HTML",
		Example: `  tinytest report .tinytest/ledger.json > report.md
  tinytest report --html -o report.html unit.json integration.json`,
		Args: minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReport(cmd, opts, args)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default: standard output)")
	flags.StringVar(&opts.title, "title", "test report", "report title")
	flags.BoolVar(&opts.html, "html", false, "render HTML instead of Markdown")
	return cmd
}

func (a *app) runReport(cmd *cobra.Command, opts *reportOptions, args []string) error {
	docs, err := readDocuments(args)
	if err != nil {
		return err
	}

	r := report.Build(title(opts.title), docs)
	text := r.Markdown()
	if opts.html {
		if text, err = r.HTML(); err != nil {
			return errors.Wrap(err, "cannot render report")
		}
	}

	if opts.output == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if err := filelock.AtomicWrite(opts.output, []byte(text)); err != nil {
		return errors.WrapKind(errors.KindEnvironment, err, "cannot write "+opts.output)
	}
	a.out.Info("Wrote %s", opts.output)
	return nil
}

package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/tinytest/internal/errors"
	"github.com/AndreyAkinshin/tinytest/internal/testparser"
	"github.com/AndreyAkinshin/tinytest/pkg/resultsfile"
	"github.com/AndreyAkinshin/tinytest/pkg/tinytest"
)

type goTestOptions struct {
	output string
	ledger string
	suite  string
	format string
}

func (a *app) newGoTestCommand() *cobra.Command {
	opts := &goTestOptions{}
	cmd := &cobra.Command{
		Use:   "gotest [FILE|-]",
		Short: "Import go test output as tinytest results",
		Long: `Parse go test output from FILE, or standard input when FILE is "-" or
omitted, and print it as a tinytest summary.

Each test is labeled "<suite>::<TestName>". Without --suite the package path
is used as the label prefix. Build failures and panics count as errors.`,
		Example: `  go test -json ./... | tinytest gotest
  go test -json ./... > test.json && tinytest gotest test.json -o results.json
  go test -v ./... | tinytest gotest --format text --suite unit`,
		Args: maxArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runGoTest(opts, args)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "write the imported results document to this file")
	flags.StringVar(&opts.ledger, "ledger", "", "append the imported results document to this ledger")
	flags.StringVar(&opts.suite, "suite", "", "suite name used as label prefix and document suite")
	flags.StringVar(&opts.format, "format", "json", "input format: json (go test -json) or text (go test -v)")
	return cmd
}

func (a *app) runGoTest(opts *goTestOptions, args []string) error {
	parser, err := testparser.NewRegistry().Get(opts.format)
	if err != nil {
		return errors.WrapKind(errors.KindConfig, err, "invalid --format")
	}
	for _, path := range []string{opts.output, opts.ledger} {
		if path != "" {
			if err := checkOutputPath(path); err != nil {
				return err
			}
		}
	}

	var input io.Reader = a.stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.WrapKind(errors.KindEnvironment, err, "cannot read test output")
		}
		defer func() { _ = f.Close() }()
		input = f
	}

	res, err := parser.Parse(input, opts.suite)
	if err != nil {
		return errors.WrapKind(errors.KindEnvironment, err, "cannot read test output")
	}
	if !res.Parsed {
		a.out.Hint("hint: use 'go test -json ./...' to produce JSON output")
		return errors.New("no test results found in input")
	}

	suite := opts.suite
	if suite == "" {
		suite = "go test"
	}
	doc := resultsfile.NewDocument(suite, res.Results)
	if err := a.storeDocument(doc, opts.output, opts.ledger); err != nil {
		return err
	}

	a.section("go test")
	tinytest.PrintResults(a.out.Out(), res.Results)
	a.exitCode = a.finish(res.Results)
	return nil
}

// storeDocument writes doc to output and appends it to ledger, skipping
// empty paths.
func (a *app) storeDocument(doc resultsfile.Document, output, ledger string) error {
	if output != "" {
		if err := resultsfile.Save(output, doc); err != nil {
			return errors.WrapKind(errors.KindEnvironment, err, "cannot write "+output)
		}
		a.out.Info("Wrote %s", output)
	}
	if ledger != "" {
		if err := resultsfile.Append(ledger, doc); err != nil {
			return documentError(err, ledger)
		}
		a.out.Info("Appended run %s to %s", doc.RunID, ledger)
	}
	return nil
}

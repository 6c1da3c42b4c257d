// Package cli implements the tinytest command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/tinytest/internal/config"
	"github.com/AndreyAkinshin/tinytest/internal/errors"
	"github.com/AndreyAkinshin/tinytest/internal/output"
)

// Version is set at build time.
var Version = "dev"

// title returns s in English title case. Casers are not safe for concurrent
// use.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

// app holds the state shared by all commands of one invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	out    *output.Writer
	cfg    *config.Config

	configPath string
	quiet      bool
	color      string

	// exitCode is set by commands that complete but report failing tests.
	exitCode int
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	return RunWith(args, os.Stdin, os.Stdout, os.Stderr)
}

// RunWith executes the CLI on explicit streams.
func RunWith(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		out:    output.NewWithWriters(stdout, stderr, output.IsTerminal(stdout)),
	}

	root := a.newRootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteC()
	if err != nil {
		a.out.ErrorPrefix("%v", err)
		if errors.IsKind(err, errors.KindConfig) && cmd != nil {
			a.out.Errorln("Run '%s --help' for usage.", cmd.CommandPath())
		}
		return errors.GetExitCode(err)
	}
	return a.exitCode
}

func (a *app) newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tinytest",
		Short: "Summarize, merge and report tinytest results",
		Long: `tinytest works with results documents written by table-driven test suites.

It prints summaries, merges documents from several runs, imports go test
output, renders Markdown or HTML reports and keeps a history database.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	cmd.SetVersionTemplate("tinytest {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.WrapKind(errors.KindConfig, err, "invalid arguments")
	})

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "configuration file (default: nearest .tinytest.json or .tinytest.yaml)")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress informational output")
	flags.StringVar(&a.color, "color", "", "color output: auto, always or never")

	cmd.AddCommand(
		a.newSummaryCommand(),
		a.newMergeCommand(),
		a.newGoTestCommand(),
		a.newReportCommand(),
		a.newHistoryCommand(),
		a.newVersionCommand(),
	)
	return cmd
}

// setup loads the configuration and applies output settings before any
// command runs.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	mode := cfg.Output.Color
	if a.color != "" {
		mode = config.ColorMode(a.color)
		switch mode {
		case config.ColorAuto, config.ColorAlways, config.ColorNever:
		default:
			return errors.Configf("--color must be auto, always or never, got %q", a.color)
		}
	}
	a.out.SetColor(mode.Enabled(output.IsTerminal(a.stdout)))
	a.out.SetQuiet(a.quiet || cfg.Output.Quiet)
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	path := a.configPath
	if path == "" {
		found, err := config.Find(".")
		if err != nil {
			return config.Default(), nil
		}
		path = found
	}

	cfg, warnings, err := config.LoadAndValidate(path)
	for _, w := range warnings {
		a.out.Warning("%s", w)
	}
	if err != nil {
		return nil, errors.WrapKind(errors.KindValidation, err, "invalid configuration")
	}
	return cfg, nil
}

func (a *app) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tinytest version",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "tinytest %s\n", Version)
			return nil
		},
	}
}

// minArgs is cobra.MinimumNArgs reporting a configuration error.
func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return errors.Configf("%s requires at least %d file argument(s)", cmd.CommandPath(), n)
		}
		return nil
	}
}

func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return errors.Configf("%s accepts at most %d argument(s), got %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

var noArgs = maxArgs(0)

// section prints a title-cased section header.
func (a *app) section(text string) {
	a.out.SummaryHeader(title(text))
}

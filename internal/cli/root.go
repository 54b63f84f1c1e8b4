// Package cli implements the fencedit command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bethropolis/fencedit/internal/config"
	"github.com/bethropolis/fencedit/internal/logger"
)

const notInFenceMessage = "Your cursor is currently not in a valid code block."

// options is shared by all subcommands.
type options struct {
	cfg      *config.Config
	closeLog func() error
	getenv   func(string) string
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	opts := &options{getenv: os.Getenv}
	root := rootCmd(opts)
	root.SetArgs(args)
	defer opts.close()
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func rootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:   config.AppName,
		Short: "Edit fenced code blocks of Markdown files in place",
		Long: `fencedit finds the fenced code block around a line of a Markdown file,
opens its body in an editor and writes the result back between the
original fence lines. Everything outside the block is left byte for byte.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		DisableAutoGenTag: true,
	}

	config.DefineFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		editCmd(opts),
		showCmd(opts),
		listCmd(opts),
		openCmd(opts),
		peekCmd(opts),
	)
	return cmd
}

// setup loads the configuration and starts the logger.
func (o *options) setup(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString(config.FlagConfig)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return err
	}
	o.cfg = cfg

	output, closeLog, err := logger.Open(cfg.Logger)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; logging to stderr\n", err)
		output = cmd.ErrOrStderr()
	}
	o.closeLog = closeLog
	logger.Init(cfg.Logger, output)
	logger.Debugf("CLI: %s started with config %q", cmd.CommandPath(), path)
	return nil
}

func (o *options) close() {
	if o.closeLog != nil {
		o.closeLog()
		o.closeLog = nil
	}
}

// parseLine converts a 1-based line argument to a 0-based index.
func parseLine(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid line %q: must be a positive number", arg)
	}
	return n - 1, nil
}

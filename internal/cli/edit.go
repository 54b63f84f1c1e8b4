package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bethropolis/fencedit/internal/app"
	"github.com/bethropolis/fencedit/internal/editor"
	"github.com/bethropolis/fencedit/internal/theme"
	"github.com/bethropolis/fencedit/internal/tui"
)

func editCmd(opts *options) *cobra.Command {
	var useTUI bool

	cmd := &cobra.Command{
		Use:   "edit FILE LINE",
		Short: "Edit the code block containing LINE",
		Long: `Edit the body of the fenced code block that contains LINE (1-based).

By default the body is written to a temporary file and the configured
editor command is run on it ([editor] command, default $EDITOR). With
--tui the block is edited in the built-in terminal editor instead.
Closing the editor always writes the result back.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := parseLine(args[1])
			if err != nil {
				return err
			}
			if cmd.Flag("tui").Changed {
				opts.cfg.Editor.TUI = useTUI
			}

			a, err := app.New(opts.cfg, args[0])
			if err != nil {
				return err
			}

			var res app.Result
			if opts.cfg.Editor.TUI {
				ui, uiErr := tui.New(theme.Load(opts.cfg.Editor.ThemeColor, opts.cfg.Editor.ThemeFile, opts.getenv))
				if uiErr != nil {
					return uiErr
				}
				res, err = a.EditInTerminal(cmd.Context(), ui, line)
				ui.Close()
			} else {
				res, err = a.EditWith(cmd.Context(), line, a.Mounter(), editor.Container{}, nil)
			}

			if errors.Is(err, app.ErrNotInFence) {
				fmt.Fprintln(cmd.OutOrStdout(), notInFenceMessage)
				return nil
			}
			if res.ExternalChange {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s changed on disk during the edit\n", args[0])
			}
			if err != nil {
				return err
			}

			block := res.Commit.Block
			if res.Saved {
				fmt.Fprintf(cmd.ErrOrStderr(), "updated block at lines %d-%d of %s\n", block.StartLine+1, block.EndLine+1, args[0])
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "no changes to block at lines %d-%d\n", block.StartLine+1, block.EndLine+1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&useTUI, "tui", false, "edit in the built-in terminal editor")

	return cmd
}

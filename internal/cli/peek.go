package cli

import (
	"github.com/spf13/cobra"

	"github.com/bethropolis/fencedit/internal/app"
	"github.com/bethropolis/fencedit/internal/theme"
	"github.com/bethropolis/fencedit/internal/tui"
)

func peekCmd(opts *options) *cobra.Command {
	var vault string

	cmd := &cobra.Command{
		Use:   "peek FILE",
		Short: "View FILE and preview linked code files on hover",
		Long: `Show FILE read-only in the terminal. Hovering a [[link]] with the mouse
previews the linked file in a popover when its extension is listed in
[preview] extensions. Links resolve relative to FILE, then the vault
root, then by file name anywhere in the vault. Press q or Esc to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(opts.cfg, args[0])
			if err != nil {
				return err
			}
			ui, err := tui.New(theme.Load(opts.cfg.Editor.ThemeColor, opts.cfg.Editor.ThemeFile, opts.getenv))
			if err != nil {
				return err
			}
			defer ui.Close()
			return a.PeekFile(ui, vault)
		},
	}

	vaultFlag(cmd, &vault)

	return cmd
}

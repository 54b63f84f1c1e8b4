package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bethropolis/fencedit/internal/app"
	"github.com/bethropolis/fencedit/internal/launch"
)

func openCmd(opts *options) *cobra.Command {
	var (
		vault  string
		line   int
		ch     int
		useURL bool
	)

	cmd := &cobra.Command{
		Use:   "open [FILE]",
		Short: "Open the vault and FILE in an external editor",
		Long: `Open the vault, and FILE inside it, with the configured launch command.

The [launch] execute_template is expanded with {{vaultpath}}, {{filepath}},
{{folderpath}}, {{line}} and {{ch}} and run through the embedded shell.
With --url the editor is opened through <url_protocol>://file/ URLs
instead: the workspace first, then the file when open_file is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := openTarget(args, vault)
			if err != nil {
				return err
			}
			target.Line = max(0, line-1)
			target.Ch = max(0, ch-1)

			runner := &launch.Runner{Stdin: cmd.InOrStdin(), Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
			launcher := launch.NewLauncher(opts.cfg.Launch, runner)
			if useURL {
				return launcher.OpenURL(cmd.Context(), target)
			}
			return launcher.Open(cmd.Context(), target)
		},
	}

	vaultFlag(cmd, &vault)
	cmd.Flags().IntVar(&line, "line", 1, "cursor line passed to the template as {{line}}")
	cmd.Flags().IntVar(&ch, "ch", 1, "cursor column passed to the template as {{ch}}")
	cmd.Flags().BoolVar(&useURL, "url", false, "open through editor URLs instead of the execute template")

	return cmd
}

func vaultFlag(cmd *cobra.Command, vault *string) {
	cmd.Flags().StringVar(vault, "vault", "", "vault root directory (default: the file's directory)")
}

// openTarget builds the launch target for an optional file argument.
func openTarget(args []string, vault string) (launch.Target, error) {
	if len(args) == 0 {
		if vault == "" {
			wd, err := os.Getwd()
			if err != nil {
				return launch.Target{}, fmt.Errorf("current directory: %w", err)
			}
			vault = wd
		}
		root, _, err := app.VaultPaths(vault, vault)
		if err != nil {
			return launch.Target{}, err
		}
		return launch.Target{VaultPath: root}, nil
	}

	root, rel, err := app.VaultPaths(args[0], vault)
	if err != nil {
		return launch.Target{}, err
	}
	return launch.Target{VaultPath: root, FilePath: rel}, nil
}

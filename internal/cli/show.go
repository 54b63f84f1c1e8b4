package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bethropolis/fencedit/internal/app"
)

func showCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE LINE",
		Short: "Print the code block containing LINE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := parseLine(args[1])
			if err != nil {
				return err
			}
			a, err := app.New(opts.cfg, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			block, ok := a.Locate(line)
			if !ok {
				fmt.Fprintln(out, notInFenceMessage)
				return nil
			}

			fmt.Fprintf(out, "tag: %s\n", block.Tag())
			fmt.Fprintf(out, "lines: %d-%d\n", block.StartLine+1, block.EndLine+1)
			if meta, metaErr := block.Meta(); metaErr == nil {
				keys := make([]string, 0, len(meta))
				for key := range meta {
					keys = append(keys, key)
				}
				sort.Strings(keys)
				for _, key := range keys {
					fmt.Fprintf(out, "meta: %s=%s\n", key, meta.Get(key))
				}
			}
			fmt.Fprintln(out, "---")
			fmt.Fprintln(out, block.Body)
			return nil
		},
	}
}

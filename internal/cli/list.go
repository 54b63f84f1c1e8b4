package cli

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/bethropolis/fencedit/internal/app"
	"github.com/bethropolis/fencedit/internal/fence"
)

func listCmd(opts *options) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:     "list FILE",
		Aliases: []string{"ls"},
		Short:   "List the code blocks of FILE",
		Long: `List every fenced code block of FILE with its line range, language
and body size. --lang filters by a glob on the language, e.g. "py*" or
"{go,rust}". A fence left open at the end of the file is reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			match, err := langFilter(lang)
			if err != nil {
				return err
			}
			a, err := app.New(opts.cfg, args[0])
			if err != nil {
				return err
			}

			scan := a.Scan()
			tbl := table.New("#", "LINES", "LANG", "BODY", "INFO").WithWriter(cmd.OutOrStdout())
			for i, block := range scan.Blocks {
				if !match(block.Lang()) {
					continue
				}
				tbl.AddRow(i, fmt.Sprintf("%d-%d", block.StartLine+1, block.EndLine+1), displayLang(block), bodySize(block), block.Tag())
			}
			tbl.Print()

			if scan.Unterminated >= 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: fence opened at line %d is never closed\n", scan.Unterminated+1)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "*", "only list blocks whose language matches this glob")

	return cmd
}

// langFilter compiles pattern into a matcher on block languages.
func langFilter(pattern string) (func(string) bool, error) {
	if pattern == "" || pattern == "*" {
		return func(string) bool { return true }, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid --lang pattern %q: %w", pattern, err)
	}
	return g.Match, nil
}

func displayLang(block fence.Block) string {
	if lang := block.Lang(); lang != "" {
		return lang
	}
	return "-"
}

func bodySize(block fence.Block) string {
	if block.Empty() {
		return "empty"
	}
	n := strings.Count(block.Body, "\n") + 1
	if n == 1 {
		return "1 line"
	}
	return fmt.Sprintf("%d lines", n)
}

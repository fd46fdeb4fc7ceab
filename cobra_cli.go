package main

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const rootLongDesc = `
check-tool inspects the source of toolkit programs and reports violations of
the toolkit's documentation and option conventions:

  • options in the POD OPTIONS section (and each subsection) are sorted
  • every embedded helper module is used
  • standard options have the canonical type and short form in --help
  • top-level POD headers appear in canonical order
  • the POD renders without overlong lines and passes podchecker
  • every documented option is read, and the tool parses DSN options

Files are never modified. The exit status is 0 when nothing was reported and 1
otherwise. Set PTDEBUG=1 to log each external command and check.
`

func newRootCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "check-tool TOOL_FILE...",
		Short:         "Lint toolkit programs for documentation and option conventions",
		Long:          strings.TrimSpace(rootLongDesc),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Version = Version
	cmd.SetOut(app.stdout)
	cmd.SetErr(app.stderr)
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.Args = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			io.WriteString(app.stderr, cmd.UsageString())
			return errors.New("no tool files given")
		}
		return nil
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return app.checkFiles(cmd.Context(), args)
	}
	return cmd
}

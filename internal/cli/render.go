package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCmdRender() *cobra.Command {
	return &cobra.Command{
		Use:   "render [file]",
		Short: "Render a document",
		Long: `Render a document to HTML. With --output json or yaml the whole
compilation result is written: rendered blocks, navigation, layout slots
and warnings.`,
		Example: `  # Render to HTML
  extmd render README.md

  # Full result as JSON, in safe mode
  extmd render --safe -o json README.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			result, err := rt.compile(cmd, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if handled, err := rt.encode(out, result); handled {
				return err
			}

			rendered := result.HTML()
			if rendered != "" && !strings.HasSuffix(rendered, "\n") {
				rendered += "\n"
			}
			_, err = fmt.Fprint(out, rendered)
			return err
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgonek/extmd/nav"
)

func newCmdNav() *cobra.Command {
	return &cobra.Command{
		Use:   "nav [file]",
		Short: "Print the heading navigation tree",
		Args:  cobra.MaximumNArgs(1),
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
			nodes := result.Nav
			if nodes == nil {
				nodes = []*nav.Node{}
			}
			if handled, err := rt.encode(out, nodes); handled {
				return err
			}

			if len(result.Nav) == 0 {
				_, err := fmt.Fprintln(out, "no headings")
				return err
			}

			p := painter{noColor: rt.noColor}
			nav.Walk(result.Nav, func(n *nav.Node, depth int) {
				fmt.Fprintf(out, "%s%s %s\n",
					p.indent(depth),
					p.paint(titleStyle, n.Title),
					p.paint(anchorStyle, "#"+n.Anchor))
			})
			return nil
		},
	}
}

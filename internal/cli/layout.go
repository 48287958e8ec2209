package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rgonek/extmd/layout"
	"github.com/rgonek/extmd/macro"
)

type layoutReport struct {
	Markers []macro.LayoutMarker   `json:"markers" yaml:"markers"`
	Slots   []*layout.Slot[string] `json:"slots" yaml:"slots"`
}

func newCmdLayout() *cobra.Command {
	return &cobra.Command{
		Use:   "layout [file]",
		Short: "Print the layout slots of a document",
		Long: `Print how layout markers split the document. Markers are HTML comments
at the top level of the document:

  <!-- layout: slot#main -->   start a sibling slot
  <!-- layout: open#aside -->  start a slot nested in the current one
  <!-- layout: close -->       return to the enclosing slot`,
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
			markers := result.Markers
			if markers == nil {
				markers = []macro.LayoutMarker{}
			}
			if handled, err := rt.encode(out, layoutReport{Markers: markers, Slots: result.Slots}); handled {
				return err
			}

			p := painter{noColor: rt.noColor}
			layout.Walk(result.Slots, func(s *layout.Slot[string], depth int) {
				name := "(default)"
				if s.Named() {
					name = s.Name
				}
				size := 0
				for _, block := range s.Content {
					size += len(block)
				}
				fmt.Fprintf(out, "%s%s %s\n",
					p.indent(depth),
					p.paint(slotStyle, fmt.Sprintf("%d %s", s.Index, name)),
					p.paint(countStyle, slotSummary(len(s.Content), size)))
			})
			return nil
		},
	}
}

func slotSummary(blocks, size int) string {
	noun := "blocks"
	if blocks == 1 {
		noun = "block"
	}
	return fmt.Sprintf("%d %s, %s", blocks, noun, strings.ReplaceAll(humanize.Bytes(uint64(size)), " ", ""))
}

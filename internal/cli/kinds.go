package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rgonek/extmd/internal/config"
	"github.com/rgonek/extmd/tree"
)

type kindInfo struct {
	Type string `json:"type" yaml:"type"`
	Data string `json:"data,omitempty" yaml:"data,omitempty"`
}

func newCmdKinds() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the node types the renderer understands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString("output")
			noColor, _ := cmd.Flags().GetBool("no-color")
			if noColor {
				color.NoColor = true
			}

			registry := tree.Builtin()
			kinds := make([]kindInfo, 0, len(registry.Types()))
			for _, typ := range registry.Sorted() {
				info := kindInfo{Type: string(typ)}
				if shape, ok := registry.Shape(typ); ok && shape != nil {
					info.Data = shape.String()
				}
				kinds = append(kinds, info)
			}

			out := cmd.OutOrStdout()
			rt := &runtime{output: output}
			if output != "" && output != config.OutputHTML {
				handled, err := rt.encode(out, kinds)
				if !handled {
					return fmt.Errorf("output must be one of %s, %s, %s", config.OutputHTML, config.OutputJSON, config.OutputYAML)
				}
				return err
			}

			bold := color.New(color.Bold)
			dim := color.New(color.Faint)
			for _, kind := range kinds {
				_, _ = bold.Fprintf(out, "%-16s", kind.Type)
				if kind.Data == "" {
					_, _ = dim.Fprintln(out, "-")
					continue
				}
				_, _ = fmt.Fprintln(out, kind.Data)
			}
			return nil
		},
	}
}

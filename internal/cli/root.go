// Package cli provides the cobra commands of the extmd binary.
package cli

import (
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

// NewCmdRoot creates the root command for extmd.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extmd",
		Short: "Compile extended markdown to HTML",
		Long: `extmd compiles markdown with math, templates, emoji shortcodes and
comment markers into HTML, a heading navigation tree and layout slots.

Input is read from the file argument, or from stdin when it is omitted
or "-".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default: ~/.config/extmd/config.yml)")
	flags.StringP("output", "o", "", "output format: html, json, yaml")
	flags.StringP("preset", "p", "", "preset: balanced|safe|strict|minimal")
	flags.Bool("safe", false, "omit script-capable destinations and sanitize raw HTML")
	flags.Bool("no-html", false, "drop raw HTML from the output")
	flags.Bool("check-links", false, "warn about relative links to missing files")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.Bool("no-color", false, "disable colored output")

	cmd.AddCommand(newCmdRender())
	cmd.AddCommand(newCmdNav())
	cmd.AddCommand(newCmdLayout())
	cmd.AddCommand(newCmdKinds())

	return cmd
}

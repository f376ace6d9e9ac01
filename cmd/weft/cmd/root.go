// Package cmd implements the weft CLI commands.
//
// Every subcommand resolves weft.yaml and WEFT_* overrides from the project
// directory, then runs one of the bundled demos against a headless window.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// globalFlags override values resolved from configuration.
type globalFlags struct {
	dir      string
	logLevel string
	demo     string
	width    int
	height   int
}

var flags globalFlags

var rootCmd = &cobra.Command{
	Use:   "weft",
	Short: "weft - a retained tree driven by an immediate-style description",
	Long: `weft reconciles a description function against a retained tree of
render objects, then lays the tree out and paints it.

The CLI runs the bundled demos against a headless window so the tree,
frame statistics and painted output can be inspected without a display.

Configuration is read from weft.yaml in the project directory and may be
overridden by WEFT_* environment variables and then by flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.dir, "dir", "C", "", "project directory (default: nearest directory with weft.yaml or go.mod)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVarP(&flags.demo, "demo", "d", "", "demo to run (counter, focus or todo)")
	pf.IntVar(&flags.width, "width", 0, "window width")
	pf.IntVar(&flags.height, "height", 0, "window height")
}

// register adds a subcommand to the CLI.
func register(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return rootCmd.Execute()
}

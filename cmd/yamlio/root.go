package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/superstrong/yaml-io/pkg/cli"
)

var (
	// Global flags
	cfgFile   string
	verbose   bool
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "yamlio",
	Short: "yamlio - cross-file YAML anchors",
	Long: `yamlio resolves YAML documents whose anchors and aliases span files.

A document imports other documents under an alias with "#!import <path> as
<alias>", refers to their anchors as "*alias.name" and re-exports anchors with
"#!export". yamlio follows the imports, checks for cycles and unknown
references, and assembles a single YAML text any parser can read.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with a status derived from the
// error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults apply when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "override log format (json, text, console)")
}

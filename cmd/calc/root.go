package main

import (
	"fmt"
	"os"

	"go-chi-calculator/internal/terminal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "calc",
	Short: "Two-operand calculator for the terminal",
	Long:  `calc keeps two operands and the last result, and computes + - * / on request.`,
	RunE:  runRepl,

	// Execute reports errors once on stderr.
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Log applied events to stderr")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable styled output")

	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(evalCmd)
}

// outputFlags are the persistent flags shared by every subcommand.
type outputFlags struct {
	Debug   bool
	NoColor bool
}

func outputFlagsFrom(cmd *cobra.Command) outputFlags {
	debug, _ := cmd.Flags().GetBool("debug")
	noColor, _ := cmd.Flags().GetBool("no-color")
	return outputFlags{Debug: debug, NoColor: noColor}
}

// newLogger returns a development logger on stderr under --debug and a
// no-op logger otherwise.
func newLogger(f outputFlags) (*zap.Logger, error) {
	if !f.Debug {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// sessionOptions maps the output flags onto terminal options.
func sessionOptions(f outputFlags, logger *zap.Logger) []terminal.Option {
	return []terminal.Option{
		terminal.WithLogger(logger),
		terminal.WithColor(!f.NoColor),
	}
}

package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"go-chi-calculator/internal/terminal"

	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive prompt (default)",
	RunE:  runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	flags := outputFlagsFrom(cmd)

	logger, err := newLogger(flags)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "calc: type help for commands")

	s := terminal.NewSession(out, sessionOptions(flags, logger)...)
	s.Render()

	return s.Run(ctx, cmd.InOrStdin())
}

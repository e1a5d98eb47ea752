package main

import (
	"fmt"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/terminal"

	"github.com/spf13/cobra"
)

// Flag parsing is done by splitEvalArgs so operands such as "-3" are not
// mistaken for shorthand flags.
var evalCmd = &cobra.Command{
	Use:   "eval <first> <op> <second>",
	Short: "Compute one expression and print the display",
	Long: `Sets both operands, applies the operator and prints the display.
Operands that are not numbers count as 0. Quote "*" to keep the shell from expanding it.`,
	Example: `  calc eval 4 + 2
  calc eval -3 - -2
  calc eval 10 divide 0 --no-color`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		operands, flags, help := splitEvalArgs(args)
		if help {
			return cmd.Help()
		}
		if len(operands) != 3 {
			return fmt.Errorf("eval: expected <first> <op> <second>, got %d argument(s)", len(operands))
		}

		op, err := calculator.ParseOperator(operands[1])
		if err != nil {
			return err
		}

		logger, err := newLogger(flags)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer logger.Sync()

		s := terminal.NewSession(cmd.OutOrStdout(), sessionOptions(flags, logger)...)
		s.Apply(calculator.SetFirstOperand{Value: calculator.ParseOperand(operands[0])})
		s.Apply(calculator.SetSecondOperand{Value: calculator.ParseOperand(operands[2])})
		s.Dispatch(calculator.Compute{Op: op})
		return nil
	},
}

// splitEvalArgs separates the recognised flags from operands. Anything
// after "--" is an operand.
func splitEvalArgs(args []string) (operands []string, flags outputFlags, help bool) {
	for i, a := range args {
		switch a {
		case "--":
			operands = append(operands, args[i+1:]...)
			return operands, flags, help
		case "--debug":
			flags.Debug = true
		case "--no-color":
			flags.NoColor = true
		case "-h", "--help":
			help = true
		default:
			operands = append(operands, a)
		}
	}
	return operands, flags, help
}

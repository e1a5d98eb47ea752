// Package terminal drives a calculator from a line-oriented prompt.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go-chi-calculator/internal/calculator"

	"github.com/muesli/termenv"
	"go.uber.org/zap"
)

// ErrUnknownCommand is returned by Execute for input it cannot interpret.
var ErrUnknownCommand = errors.New("unknown command")

const helpText = `commands:
  a <number>, first <number>    set the first operand
  b <number>, second <number>   set the second operand
  + - * /                        compute (also add, subtract, multiply, divide)
  show                           print the display
  help                           print this help
  quit, exit                     leave`

// Session owns one calculator State for the lifetime of a prompt.
type Session struct {
	state  calculator.State
	out    *termenv.Output
	logger *zap.Logger
	prompt string
}

type Option func(*Session)

// WithLogger sets the logger for applied events. The default discards.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithColor toggles ANSI styling of the result line.
func WithColor(enabled bool) Option {
	return func(s *Session) {
		if !enabled {
			s.out = termenv.NewOutput(s.out.Writer(), termenv.WithProfile(termenv.Ascii))
		}
	}
}

// WithPrompt sets the prompt printed before each line is read. Empty
// disables it.
func WithPrompt(p string) Option {
	return func(s *Session) { s.prompt = p }
}

func NewSession(w io.Writer, opts ...Option) *Session {
	s := &Session{
		out:    termenv.NewOutput(w),
		logger: zap.NewNop(),
		prompt: "> ",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a copy of the current calculator state.
func (s *Session) State() calculator.State {
	return s.state
}

// Apply updates the state with e without printing.
func (s *Session) Apply(e calculator.Event) {
	s.state.Update(e)
	s.logger.Debug("event applied",
		zap.String("kind", e.Kind()),
		zap.Float64("first", s.state.First),
		zap.Float64("second", s.state.Second),
		zap.Float64("result", s.state.Result),
	)
}

// Dispatch applies e and prints the resulting display.
func (s *Session) Dispatch(e calculator.Event) {
	s.Apply(e)
	s.Render()
}

// Render prints the expression line and the styled result line.
func (s *Session) Render() {
	result := s.out.String(calculator.FormatNumber(s.state.Result)).
		Foreground(s.out.Color("#22c55e")).
		Bold()

	fmt.Fprintln(s.out, s.state.Expression())
	fmt.Fprintln(s.out, result)
}

// Execute interprets one input line. quit reports that the user asked to
// leave. Blank lines are ignored.
func (s *Session) Execute(line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "a", "first":
		s.Dispatch(calculator.SetFirstOperand{Value: calculator.ParseOperand(arg)})
	case "b", "second":
		s.Dispatch(calculator.SetSecondOperand{Value: calculator.ParseOperand(arg)})
	case "show":
		s.Render()
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
	case "quit", "exit":
		return true, nil
	default:
		op, err := calculator.ParseOperator(cmd)
		if err != nil {
			return false, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
		}
		s.Dispatch(calculator.Compute{Op: op})
	}
	return false, nil
}

// Run reads commands from r until EOF, quit, or ctx is done. Unknown
// commands print a hint and leave the state untouched. Cancelling ctx
// while a read is pending returns nil at once; the reader goroutine is
// left to finish on its own.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}

		if s.prompt != "" {
			fmt.Fprint(s.out, s.prompt)
		}

		var line string
		select {
		case <-ctx.Done():
			s.logger.Debug("prompt interrupted", zap.Error(ctx.Err()))
			fmt.Fprintln(s.out)
			return nil
		case err := <-readErr:
			return err
		case line = <-lines:
		}

		quit, err := s.Execute(line)
		if err != nil {
			s.logger.Debug("command rejected", zap.Error(err))
			fmt.Fprintf(s.out, "%v (type help for commands)\n", err)
			continue
		}
		if quit {
			return nil
		}
	}
}

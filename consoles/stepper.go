package consoles

import (
	"context"
	"errors"
	"io"
	"slices"

	"github.com/reusee/br/brvm"
	"github.com/reusee/br/debugs"
	"github.com/reusee/br/logs"
	"github.com/reusee/br/steps"
)

// Stepper paces a run by the governor, drawing the step screen and reading
// operator keys at prompts.
type Stepper struct {
	VM       *brvm.VM
	Governor *steps.Governor
	Keys     io.Reader
	Screen   io.Writer
	Width    int
	ANSI     bool
	Tap      debugs.Tap
	Logger   logs.Logger

	// around Tap, to leave raw mode while the session edits lines
	Suspend func() error
	Resume  func() error

	quit bool
	err  error
	key  [1]byte
}

// Wrap returns a yield func for brvm.VM.Run that consults the governor at each
// step interrupt and passes everything else on to yield.
func (s *Stepper) Wrap(ctx context.Context, yield func(*brvm.Interrupt, error) bool) func(*brvm.Interrupt, error) bool {
	return func(intr *brvm.Interrupt, err error) bool {
		if err != nil || intr.Kind != brvm.InterruptStep {
			return yield(intr, err)
		}
		if !yield(intr, nil) {
			return false
		}

		switch s.Governor.Decide(intr.Intent, s.VM.Tape().Read()) {

		case steps.Proceed:
			if s.Governor.Regime() == steps.RegimeCounting {
				s.draw(intr, s.Governor.String())
			}
			return true

		case steps.AwaitInput:
			s.draw(intr, steps.InputHint)
			return true

		default:
			return s.prompt(ctx, intr)
		}
	}
}

func (s *Stepper) prompt(ctx context.Context, intr *brvm.Interrupt) bool {
	// intr is reused by the vm; keep a copy for redraws after inspecting
	current := *intr
	s.draw(&current, steps.Hint)
	for {
		cmd, err := s.readCommand()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = err
			}
			s.quit = true
			return false
		}

		switch cmd {

		case steps.Quit:
			s.quit = true
			return false

		case steps.Inspect:
			if err := s.inspect(ctx); err != nil {
				s.err = err
				s.quit = true
				return false
			}
			s.draw(&current, steps.Hint)
			continue

		}

		s.Governor.Apply(cmd)
		if s.Logger != nil {
			s.Logger.DebugContext(ctx, "step command",
				"command", cmd,
				"regime", s.Governor.Regime(),
				"remaining", s.Governor.Remaining(),
			)
		}
		return true
	}
}

func (s *Stepper) readCommand() (steps.Command, error) {
	for {
		if _, err := io.ReadFull(s.Keys, s.key[:]); err != nil {
			return 0, err
		}
		if cmd, ok := steps.CommandForKey(s.key[0]); ok {
			return cmd, nil
		}
	}
}

func (s *Stepper) inspect(ctx context.Context) error {
	if s.Tap == nil {
		return nil
	}
	if s.Suspend != nil {
		if err := s.Suspend(); err != nil {
			return err
		}
	}
	s.Tap(ctx, "tape", Globals(s.VM))
	if s.Resume != nil {
		return s.Resume()
	}
	return nil
}

func (s *Stepper) draw(intr *brvm.Interrupt, hint string) {
	if s.Screen == nil || s.err != nil {
		return
	}
	frame := Frame{
		Tape:  s.VM.Tape(),
		Width: s.Width,
		Status: StatusLine(
			intr.Location.Line,
			intr.Location.Column,
			intr.Char,
			Describe(s.VM, intr.Intent),
		),
		Hint: hint,
	}
	if err := frame.Draw(s.Screen, s.ANSI); err != nil {
		s.err = err
	}
}

// Quit reports whether the operator ended the run.
func (s *Stepper) Quit() bool {
	return s.quit
}

// Err is the first screen or key read error.
func (s *Stepper) Err() error {
	return s.err
}

// Globals exposes the machine state to a starlark session.
func Globals(vm *brvm.VM) map[string]any {
	tape := vm.Tape()
	start, window := tape.Window(tape.Pointer(), 32)
	location := vm.Location()
	length := tape.Len()
	return map[string]any{
		"pointer":      tape.Pointer(),
		"window":       slices.Clone(window),
		"window_start": start,
		"tape_length":  length,
		"cell_max":     int(tape.Max()),
		"line":         location.Line,
		"column":       location.Column,
		"depth":        vm.Depth(),
		"steps":        vm.Steps(),
		// indexes wrap like the pointer does
		"cell": func(i int) int {
			i %= length
			if i < 0 {
				i += length
			}
			return int(tape.At(i))
		},
	}
}

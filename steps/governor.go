package steps

import (
	"fmt"

	"github.com/reusee/br/intents"
	"github.com/reusee/br/tapes"
)

type Regime uint8

const (
	RegimeCounting Regime = iota
	RegimeUntilLoopExit
	RegimeContinuous
)

func (r Regime) String() string {
	switch r {
	case RegimeCounting:
		return "counting"
	case RegimeUntilLoopExit:
		return "until-loop-exit"
	case RegimeContinuous:
		return "continuous"
	}
	return fmt.Sprintf("Regime(%d)", r)
}

type Action uint8

const (
	// Proceed executes the instruction without operator interaction.
	Proceed Action = iota
	// Prompt shows the state and waits for a Command.
	Prompt
	// AwaitInput shows the state while the instruction blocks on input.
	AwaitInput
)

func (a Action) String() string {
	switch a {
	case Proceed:
		return "proceed"
	case Prompt:
		return "prompt"
	case AwaitInput:
		return "await-input"
	}
	return fmt.Sprintf("Action(%d)", a)
}

// Governor decides, before each instruction, whether an interactive run
// pauses. The zero value pauses at the next instruction.
type Governor struct {
	regime    Regime
	remaining int
}

func NewContinuous() *Governor {
	return &Governor{
		regime: RegimeContinuous,
	}
}

func (g *Governor) Decide(intent intents.Intent, cell tapes.Cell) Action {
	if intent == intents.InputCell {
		if g.regime == RegimeCounting && g.remaining > 0 {
			g.remaining--
		}
		return AwaitInput
	}

	switch g.regime {

	case RegimeContinuous:
		return Proceed

	case RegimeUntilLoopExit:
		if intent == intents.LoopEnd && cell == 0 {
			g.regime = RegimeCounting
			g.remaining = 0
			return Prompt
		}
		return Proceed

	default:
		if g.remaining > 0 {
			g.remaining--
			return Proceed
		}
		return Prompt
	}
}

// Apply changes the regime after a Prompt. The prompted instruction itself
// counts as the first of a counted run.
func (g *Governor) Apply(cmd Command) {
	switch cmd {

	case StepOne, Step5, Step25, Step100:
		g.regime = RegimeCounting
		g.remaining = cmd.count() - 1

	case UntilLoopExit:
		g.regime = RegimeUntilLoopExit
		g.remaining = 0

	case Continuous:
		g.regime = RegimeContinuous
		g.remaining = 0

	}
}

func (g *Governor) Regime() Regime {
	return g.regime
}

// Remaining is the number of instructions that still run without a prompt in
// the counting regime.
func (g *Governor) Remaining() int {
	if g.regime != RegimeCounting {
		return 0
	}
	return g.remaining
}

func (g *Governor) String() string {
	switch g.regime {
	case RegimeContinuous:
		return "Continuing program to completion..."
	case RegimeUntilLoopExit:
		return "Waiting for loop exit..."
	}
	if g.remaining > 0 {
		return fmt.Sprintf("Skipping %d steps...", g.remaining)
	}
	return Hint
}

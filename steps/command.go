package steps

import "fmt"

type Command uint8

const (
	StepOne Command = iota + 1
	Step5
	Step25
	Step100
	UntilLoopExit
	Continuous
	Quit
	Inspect
)

const Hint = "Press space to step the system.    D = +5 steps, F = +25 steps, G = +100 steps, J = until loop ends, K = continuous, I = inspect, Q = quit"

const InputHint = "Enter one character to step the program."

func (c Command) String() string {
	switch c {
	case StepOne:
		return "step"
	case Step5:
		return "step-5"
	case Step25:
		return "step-25"
	case Step100:
		return "step-100"
	case UntilLoopExit:
		return "until-loop-exit"
	case Continuous:
		return "continuous"
	case Quit:
		return "quit"
	case Inspect:
		return "inspect"
	}
	return fmt.Sprintf("Command(%d)", c)
}

func (c Command) count() int {
	switch c {
	case StepOne:
		return 1
	case Step5:
		return 5
	case Step25:
		return 25
	case Step100:
		return 100
	}
	return 0
}

// CommandForKey maps a key byte read in raw mode. Letters are case
// insensitive; ctrl-c quits since raw mode swallows the signal.
func CommandForKey(key byte) (Command, bool) {
	if key >= 'A' && key <= 'Z' {
		key += 'a' - 'A'
	}
	switch key {
	case ' ':
		return StepOne, true
	case 'd':
		return Step5, true
	case 'f':
		return Step25, true
	case 'g':
		return Step100, true
	case 'j':
		return UntilLoopExit, true
	case 'k':
		return Continuous, true
	case 'q', 0x03:
		return Quit, true
	case 'i':
		return Inspect, true
	}
	return 0, false
}

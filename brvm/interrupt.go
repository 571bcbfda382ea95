package brvm

import "github.com/reusee/br/intents"

type InterruptKind uint8

const (
	// InterruptStep is yielded before an instruction is executed.
	InterruptStep InterruptKind = iota
	InterruptLoopEnter
	InterruptLoopSkip
	InterruptLoopRepeat
	InterruptLoopExit
)

func (k InterruptKind) String() string {
	switch k {
	case InterruptStep:
		return "step"
	case InterruptLoopEnter:
		return "loop enter"
	case InterruptLoopSkip:
		return "loop skip"
	case InterruptLoopRepeat:
		return "loop repeat"
	case InterruptLoopExit:
		return "loop exit"
	}
	return "unknown"
}

// Interrupt is only valid during the yield call that receives it.
type Interrupt struct {
	Kind     InterruptKind
	Intent   intents.Intent
	Location intents.Location
	Char     byte
}

type Diagnostic = intents.Diagnostic

package consoles

import (
	"fmt"

	"github.com/reusee/br/brvm"
	"github.com/reusee/br/intents"
)

// Describe explains what the instruction is about to do, from the state
// before it runs.
func Describe(vm *brvm.VM, intent intents.Intent) string {
	tape := vm.Tape()
	p := tape.Pointer()
	v := tape.Read()

	switch intent {

	case intents.MovePointerRight:
		return fmt.Sprintf("Move pointer to right (%d -> %d)", p, p+1)

	case intents.MovePointerLeft:
		return fmt.Sprintf("Move pointer to left (%d -> %d)", p, p-1)

	case intents.IncrementCell:
		return fmt.Sprintf("Increase value at position %d (%d -> %d)", p, v, int(v)+1)

	case intents.DecrementCell:
		return fmt.Sprintf("Decrease value at position %d (%d -> %d)", p, v, int(v)-1)

	case intents.OutputCell:
		return fmt.Sprintf("Print out current value as character (value %d)", v)

	case intents.InputCell:
		return fmt.Sprintf("Input next character input into position %d", p)

	case intents.LoopStart:
		if v == 0 {
			return "Skipping loop. Moving execution forward to closing bracket."
		}
		return "Beginning a loop"

	case intents.LoopEnd:
		if v == 0 {
			return "Breaking out of a loop"
		}
		start, ok := vm.LoopStart()
		if !ok {
			return "Closing bracket without an opening bracket"
		}
		return fmt.Sprintf(
			"Moving execution back to L%d C%d until value at position %d is zero (currently %d)",
			start.Line, start.Column, p, v,
		)

	}
	return "?? unknown intent ??"
}

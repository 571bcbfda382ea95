package consoles

import (
	"testing"

	"github.com/reusee/br/modes"
	"github.com/reusee/br/steps"
	"github.com/reusee/dscope"
)

func TestModule(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Call(func(
		newStepper NewStepper,
		terminal *Terminal,
	) {
		vm := newVM(t, "+")
		stepper := newStepper(vm, steps.NewContinuous())
		if stepper.Tap == nil || stepper.Logger == nil {
			t.Fatal("should be wired")
		}
		if stepper.Width <= 0 {
			t.Fatalf("got %d", stepper.Width)
		}
		if terminal.InRaw() {
			t.Fatal("should start cooked")
		}
		// not a terminal under go test
		if err := terminal.Raw(); err != nil {
			t.Fatal(err)
		}
		if err := terminal.Restore(); err != nil {
			t.Fatal(err)
		}
		vm.Run(stepper.Wrap(t.Context(), pass))
		if vm.Tape().Read() != 1 {
			t.Fatal()
		}
	})
}

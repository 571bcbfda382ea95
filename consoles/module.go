package consoles

import (
	"os"

	"github.com/reusee/br/brvm"
	"github.com/reusee/br/debugs"
	"github.com/reusee/br/logs"
	"github.com/reusee/br/steps"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Debugs debugs.Module
}

func (Module) Terminal() *Terminal {
	return &Terminal{
		In:  os.Stdin,
		Out: os.Stdout,
	}
}

type NewStepper func(vm *brvm.VM, governor *steps.Governor) *Stepper

func (Module) NewStepper(
	terminal *Terminal,
	tap debugs.Tap,
	logger logs.Logger,
) NewStepper {
	return func(vm *brvm.VM, governor *steps.Governor) *Stepper {
		return &Stepper{
			VM:       vm,
			Governor: governor,
			Keys:     terminal.In,
			Screen:   terminal.Out,
			Width:    terminal.Width(),
			ANSI:     terminal.IsTerminal(),
			Tap:      tap,
			Logger:   logger,
			Suspend:  terminal.Restore,
			Resume:   terminal.Raw,
		}
	}
}

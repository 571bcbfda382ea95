package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/reusee/br/brconfigs"
	"github.com/reusee/br/brvm"
	"github.com/reusee/br/cmds"
	"github.com/reusee/br/consoles"
	"github.com/reusee/br/debugs"
	"github.com/reusee/br/intents"
	"github.com/reusee/br/logs"
	"github.com/reusee/br/modes"
	"github.com/reusee/br/steps"
	"github.com/reusee/dscope"
)

var (
	usefulFlag  = cmds.Count("-useful", "run Br++ files in the useful dialect")
	dumpFlag    = cmds.Var[string]("-dump", "write a CBOR snapshot of the machine to this file when the run ends")
	restoreFlag = cmds.Var[string]("-restore", "resume from a snapshot written by -dump")
	evalFlag    = cmds.Var[string]("-eval", "print a starlark expression evaluated over the final machine state")
)

func main() {
	args := &cmds.Args{Want: 1}
	cmds.GlobalExecutor.Fallback = args.Collect
	cmds.Execute(os.Args[1:])

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := 0
	dscope.New(
		new(brvm.Module),
		new(consoles.Module),
		modes.ForProduction(),
	).Call(func(
		logger logs.Logger,
		newSpan logs.NewSpan,
		stepMode brconfigs.StepMode,
		open brvm.OpenProgram,
		newVM brvm.NewVM,
		terminal *consoles.Terminal,
		newStepper consoles.NewStepper,
		eval debugs.Eval,
	) {
		r := &runner{
			logger:     logger,
			step:       bool(stepMode),
			open:       open,
			newVM:      newVM,
			terminal:   terminal,
			newStepper: newStepper,
			eval:       eval,
			stdout:     os.Stdout,
			stderr:     os.Stderr,
		}
		ctx, _ := newSpan(ctx, "")
		code = r.run(ctx, args.Get(0), args.Unknown)
	})

	cancel()
	os.Exit(code)
}

type runner struct {
	logger     logs.Logger
	step       bool
	open       brvm.OpenProgram
	newVM      brvm.NewVM
	terminal   *consoles.Terminal
	newStepper consoles.NewStepper
	eval       debugs.Eval
	stdout     io.Writer
	stderr     io.Writer
}

func (r *runner) warnf(format string, args ...any) {
	fmt.Fprintf(r.stderr, "warn: "+format+"\n", args...)
}

func (r *runner) fatalf(format string, args ...any) int {
	fmt.Fprintf(r.stderr, "fatal: "+format+"\n", args...)
	return 1
}

func (r *runner) run(ctx context.Context, path string, unknown []string) int {
	if path == "" {
		return r.fatalf("no file provided.")
	}

	if brconfigs.StepFlagCount() > 1 {
		r.warnf("duplicate -step flag.")
	}
	if *usefulFlag > 1 {
		r.warnf("duplicate -useful flag.")
	}
	for _, arg := range unknown {
		r.warnf("unknown %s argument.", arg)
	}

	if _, err := os.Stat(path); err != nil {
		return r.fatalf("file does not exist at %s", path)
	}

	d, err := dialectOf(path, *usefulFlag > 0)
	if err != nil {
		return r.fatalf("%v.", err)
	}
	switch d {
	case dialectStandard:
		if *usefulFlag > 0 {
			r.warnf("-useful flag is not applicable to standard brainfuck.")
		}
	default:
		return r.fatalf("the %s dialect is not supported.", d)
	}
	r.logger.DebugContext(ctx, "program",
		"path", path,
		"dialect", d,
		"step", r.step,
	)

	source, err := r.open(path)
	if err != nil {
		return r.fatalf("%v", logs.WrapSpan(ctx, err))
	}

	var output io.Writer
	var buffered *bufio.Writer
	if r.step {
		if err := r.terminal.Raw(); err != nil {
			return r.fatalf("%v", err)
		}
		defer r.terminal.Restore()
		output = r.stdout
		if r.terminal.InRaw() {
			output = consoles.CRLFWriter{W: r.stdout}
			r.stderr = consoles.CRLFWriter{W: r.stderr}
			// frame rows on top, program output below
			fmt.Fprint(r.stdout, "\x1b[2J\x1b[10;1H")
		}
	} else {
		buffered = bufio.NewWriter(r.stdout)
		output = buffered
	}

	vm, err := r.newVM(source, os.Stdin, output)
	if err != nil {
		return r.fatalf("%v", err)
	}

	if *restoreFlag != "" {
		if err := restore(vm, *restoreFlag); err != nil {
			return r.fatalf("%v", logs.WrapSpan(ctx, err))
		}
		r.logger.InfoContext(ctx, "restored",
			"path", *restoreFlag,
			"steps", vm.Steps(),
		)
	}

	code := 0
	yield := func(_ *brvm.Interrupt, err error) bool {
		if ctx.Err() != nil {
			code = 130
			return false
		}
		if err != nil {
			if !r.report(ctx, err) {
				code = 1
				return false
			}
		}
		return true
	}

	if r.step {
		stepper := r.newStepper(vm, new(steps.Governor))
		vm.Run(stepper.Wrap(ctx, yield))
		if err := stepper.Err(); err != nil {
			r.logger.ErrorContext(ctx, "stepper", "error", err)
			code = 1
		} else if stepper.Quit() {
			r.logger.InfoContext(ctx, "quit",
				"steps", vm.Steps(),
			)
		}
	} else {
		vm.Run(yield)
	}

	if buffered != nil {
		if err := buffered.Flush(); err != nil {
			r.logger.ErrorContext(ctx, "flush output", "error", err)
			code = 1
		}
	}
	r.logger.DebugContext(ctx, "run end",
		"steps", vm.Steps(),
		"halted", vm.Halted(),
	)

	if *dumpFlag != "" {
		if err := dump(vm, *dumpFlag); err != nil {
			return r.fatalf("%v", logs.WrapSpan(ctx, err))
		}
	}

	if *evalFlag != "" {
		value, err := r.eval(*evalFlag, consoles.Globals(vm))
		if err != nil {
			return r.fatalf("eval: %v", err)
		}
		fmt.Fprintln(r.stdout, value)
	}

	return code
}

// report prints a diagnostic and reports whether the run may go on.
func (r *runner) report(ctx context.Context, err error) bool {
	var diag *intents.Diagnostic
	if !errors.As(err, &diag) {
		r.logger.ErrorContext(ctx, "run", "error", err)
		fmt.Fprintf(r.stderr, "error: %v\n", err)
		return false
	}
	level := slog.LevelWarn
	if diag.Severity == intents.SeverityError {
		level = slog.LevelError
	}
	// records only reach the terminal with -log-debug; the line below is the
	// user facing form
	r.logger.Log(ctx, slog.LevelDebug, "diagnostic",
		"severity", level,
		"kind", diag.Kind,
		"line", diag.Location.Line,
		"column", diag.Location.Column,
		"message", diag.Message,
	)
	fmt.Fprintln(r.stderr, diag.Error())
	return true
}

func dump(vm *brvm.VM, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := vm.Snapshot(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func restore(vm *brvm.VM, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return vm.Restore(f)
}

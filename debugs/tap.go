package debugs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/reusee/br/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"golang.org/x/term"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// Tap opens a starlark session over globals. Functions in globals are
// callable from the session.
type Tap func(ctx context.Context, what string, globals map[string]any)

type TapInput io.Reader

func (Module) TapInput() TapInput {
	return os.Stdin
}

type TapOutput io.Writer

func (Module) TapOutput() TapOutput {
	return os.Stdout
}

func (Module) Tap(
	logger logs.Logger,
	input TapInput,
	output TapOutput,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		thread := &starlark.Thread{
			Name: "tap",
			Print: func(_ *starlark.Thread, msg string) {
				fmt.Fprintln(output, msg)
			},
		}
		env := toStringDict(globals)

		if f, ok := input.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			repl.REPLOptions(fileOptions, thread, env)
			return
		}

		// scripted, until EOF or an end line. Lines are read one byte at a
		// time so input after the session stays unread for the program.
		for {
			if ctx.Err() != nil {
				return
			}
			line, err := readLine(input)
			line = strings.TrimSpace(line)
			if line == endLine {
				return
			}
			if line != "" {
				if err := execLine(thread, env, line, output); err != nil {
					fmt.Fprintln(output, err)
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					logger.ErrorContext(ctx, "tap input", "error", err)
				}
				return
			}
		}
	}
}

const endLine = "end"

func readLine(r io.Reader) (string, error) {
	var line []byte
	var b [1]byte
	for {
		n, err := r.Read(b[:])
		if n > 0 {
			if b[0] == '\n' {
				return string(line), nil
			}
			line = append(line, b[0])
		}
		if err != nil {
			return string(line), err
		}
	}
}

// execLine evaluates line as an expression and prints a non-None result, or
// executes it as statements and keeps the globals it defines.
func execLine(thread *starlark.Thread, env starlark.StringDict, line string, output io.Writer) error {
	value, err := starlark.EvalOptions(fileOptions, thread, "<tap>", line, env)
	var syntaxErr syntax.Error
	if errors.As(err, &syntaxErr) {
		globals, err := starlark.ExecFileOptions(fileOptions, thread, "<tap>", line, env)
		maps.Copy(env, globals)
		return err
	}
	if err != nil {
		return err
	}
	if value != starlark.None {
		fmt.Fprintln(output, value)
	}
	return nil
}

// Eval evaluates one expression over globals.
type Eval func(src string, globals map[string]any) (starlark.Value, error)

func (Module) Eval() Eval {
	return func(src string, globals map[string]any) (starlark.Value, error) {
		thread := &starlark.Thread{
			Name: "eval",
		}
		return starlark.EvalOptions(fileOptions, thread, "<eval>", src, toStringDict(globals))
	}
}

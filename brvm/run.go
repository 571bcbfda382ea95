package brvm

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/reusee/br/intents"
)

// Run executes until end of file, a fatal structural error, or yield
// returning false. Diagnostics are yielded as errors and execution continues
// past them if yield returns true. Stopping at an InterruptStep leaves that
// instruction pending; a later Run starts with it. Stopping inside a
// skip-scan leaves the scan open; a later Run finishes it first.
func (v *VM) Run(yield func(*Interrupt, error) bool) {
	for !v.halted {
		if v.skipping != nil {
			if !v.scan(yield) {
				return
			}
			continue
		}

		var intent intents.Intent
		var location intents.Location
		var char byte
		if p := v.pending; p != nil {
			intent, location, char = p.Intent, p.Location, p.Char
			v.pending = nil
		} else {
			var ok bool
			intent, ok = v.next(yield)
			if !ok {
				return
			}
			if intent == intents.EndOfFile {
				v.halted = true
				return
			}
			location = v.Source.Location()
			char = v.Source.Char()
		}

		if !v.yieldInterrupt(yield, InterruptStep, intent, location, char) {
			v.pending = &pending{
				Intent:   intent,
				Location: location,
				Char:     char,
			}
			return
		}

		v.steps++
		if !v.exec(intent, location, yield) {
			return
		}
	}
}

func (v *VM) yieldInterrupt(
	yield func(*Interrupt, error) bool,
	kind InterruptKind,
	intent intents.Intent,
	location intents.Location,
	char byte,
) bool {
	v.interrupt = Interrupt{
		Kind:     kind,
		Intent:   intent,
		Location: location,
		Char:     char,
	}
	return yield(&v.interrupt, nil)
}

// next decodes the next intent, reporting decode errors. Source errors that
// come with EndOfFile end the run.
func (v *VM) next(yield func(*Interrupt, error) bool) (intents.Intent, bool) {
	for {
		intent, err := v.Source.Next()
		if err != nil {
			if !yield(nil, err) {
				return intents.EndOfFile, false
			}
			if intent == intents.EndOfFile {
				return intents.EndOfFile, true
			}
			continue
		}
		return intent, true
	}
}

func (v *VM) exec(intent intents.Intent, location intents.Location, yield func(*Interrupt, error) bool) bool {
	switch intent {

	case intents.MovePointerRight:
		if v.tape.Move(1) {
			return yield(nil, v.pointerWarning(location, "overflowed"))
		}

	case intents.MovePointerLeft:
		if v.tape.Move(-1) {
			return yield(nil, v.pointerWarning(location, "underflowed"))
		}

	case intents.IncrementCell:
		v.tape.Adjust(1)

	case intents.DecrementCell:
		v.tape.Adjust(-1)

	case intents.OutputCell:
		if err := v.output(); err != nil {
			v.halted = true
			yield(nil, err)
			return false
		}

	case intents.InputCell:
		if err := v.input(); err != nil {
			v.halted = true
			yield(nil, err)
			return false
		}

	case intents.LoopStart:
		start := v.Source.Position()
		v.loops = append(v.loops, start)
		if v.tape.Read() != 0 {
			return v.yieldInterrupt(yield, InterruptLoopEnter, intent, location, '[')
		}
		return v.skip(start, yield)

	case intents.LoopEnd:
		if len(v.loops) == 0 {
			return yield(nil, &Diagnostic{
				Severity: intents.SeverityError,
				Kind:     intents.ErrNoOpening,
				Location: location,
				Message:  "no opening bracket to match closing bracket",
			})
		}
		if v.tape.Read() == 0 {
			v.loops = v.loops[:len(v.loops)-1]
			return v.yieldInterrupt(yield, InterruptLoopExit, intent, location, ']')
		}
		top := v.loops[len(v.loops)-1]
		if err := v.Source.Seek(top); err != nil {
			v.halted = true
			yield(nil, err)
			return false
		}
		return v.yieldInterrupt(yield, InterruptLoopRepeat, intent, top.Location, '[')

	default:
		return yield(nil, &Diagnostic{
			Severity: intents.SeverityWarning,
			Kind:     intents.ErrUnsupportedByte,
			Location: location,
			Message:  fmt.Sprintf("unknown intent %v", intent),
		})
	}

	return true
}

func (v *VM) pointerWarning(location intents.Location, what string) *Diagnostic {
	return &Diagnostic{
		Severity: intents.SeverityWarning,
		Kind:     intents.ErrPointerRange,
		Location: location,
		Message:  fmt.Sprintf("data pointer has %s! (length %d)", what, v.tape.Len()),
	}
}

// skip consumes the body of the loop opened at start without executing it.
func (v *VM) skip(start intents.Position, yield func(*Interrupt, error) bool) bool {
	if v.Config.SkipScan == SkipNested {
		if matcher, ok := v.Source.(LoopMatcher); ok {
			if end, ok := matcher.MatchingEnd(start); ok {
				if err := v.Source.Seek(end); err != nil {
					v.halted = true
					yield(nil, err)
					return false
				}
				v.loops = v.loops[:len(v.loops)-1]
				return v.yieldInterrupt(yield, InterruptLoopSkip, intents.LoopStart, start.Location, '[')
			}
		}
	}
	v.skipping = &skipping{
		Start: start,
	}
	return v.scan(yield)
}

// skipping is an open skip-scan, kept on the VM so a run stopped on a
// diagnostic met while scanning resumes the scan.
type skipping struct {
	Start intents.Position
	Depth int
}

func (v *VM) scan(yield func(*Interrupt, error) bool) bool {
	s := v.skipping
	for {
		intent, ok := v.next(yield)
		if !ok {
			return false
		}
		switch intent {

		case intents.EndOfFile:
			v.skipping = nil
			v.halted = true
			yield(nil, &Diagnostic{
				Severity: intents.SeverityError,
				Kind:     intents.ErrNoClosing,
				Location: s.Start.Location,
				Message:  "no closing bracket to match opening bracket",
			})
			return false

		case intents.LoopStart:
			if v.Config.SkipScan == SkipNested {
				s.Depth++
			}

		case intents.LoopEnd:
			if s.Depth > 0 {
				s.Depth--
				continue
			}
			v.skipping = nil
			v.loops = v.loops[:len(v.loops)-1]
			return v.yieldInterrupt(yield, InterruptLoopSkip, intents.LoopStart, s.Start.Location, '[')

		}
	}
}

type flusher interface {
	Flush() error
}

func (v *VM) output() error {
	if v.Output == nil {
		return nil
	}
	c := v.tape.Read()
	v.buf = v.buf[:0]
	if c < 256 {
		v.buf = append(v.buf, byte(c))
	} else {
		v.buf = utf8.AppendRune(v.buf, rune(c))
	}
	if _, err := v.Output.Write(v.buf); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// input blocks for one byte. At end of input the cell is left unchanged.
func (v *VM) input() error {
	if f, ok := v.Output.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush output: %w", err)
		}
	}
	if v.Input == nil {
		return nil
	}
	var b [1]byte
	if _, err := io.ReadFull(v.Input, b[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("read input: %w", err)
	}
	v.tape.Write(int(b[0]))
	return nil
}

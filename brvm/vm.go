package brvm

import (
	"io"

	"github.com/reusee/br/intents"
	"github.com/reusee/br/tapes"
)

type Source interface {
	Next() (intents.Intent, error)
	Position() intents.Position
	Seek(intents.Position) error
	Location() intents.Location
	Char() byte
}

var (
	_ Source = new(intents.Reader)
	_ Source = new(intents.Cursor)
)

// LoopMatcher is implemented by sources that know bracket pairs ahead of
// time, letting SkipNested jump instead of scan.
type LoopMatcher interface {
	MatchingEnd(intents.Position) (intents.Position, bool)
}

var _ LoopMatcher = new(intents.Cursor)

type VM struct {
	Config Config
	Source Source
	Input  io.Reader
	Output io.Writer

	tape      *tapes.Tape
	loops     []intents.Position
	steps     int64
	halted    bool
	pending   *pending
	skipping  *skipping
	interrupt Interrupt
	buf       []byte
}

// pending is an instruction read but not executed because the run stopped at
// its step interrupt.
type pending struct {
	Intent   intents.Intent
	Location intents.Location
	Char     byte
}

func New(config Config, source Source, input io.Reader, output io.Writer) (*VM, error) {
	tape, err := tapes.New(config.TapeLength, config.CellMax)
	if err != nil {
		return nil, err
	}
	return &VM{
		Config: config,
		Source: source,
		Input:  input,
		Output: output,
		tape:   tape,
		buf:    make([]byte, 0, 4),
	}, nil
}

func (v *VM) Tape() *tapes.Tape {
	return v.tape
}

// Depth is the current loop nesting depth.
func (v *VM) Depth() int {
	return len(v.loops)
}

// LoopStart returns the location of the innermost open LoopStart.
func (v *VM) LoopStart() (intents.Location, bool) {
	if len(v.loops) == 0 {
		return intents.Location{}, false
	}
	return v.loops[len(v.loops)-1].Location, true
}

func (v *VM) Location() intents.Location {
	if v.pending != nil {
		return v.pending.Location
	}
	return v.Source.Location()
}

// Steps is the number of executed instructions.
func (v *VM) Steps() int64 {
	return v.steps
}

// Halted reports whether the run ended, either at end of file or on a fatal
// structural error.
func (v *VM) Halted() bool {
	return v.halted
}

package brvm

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/reusee/br/intents"
	"github.com/reusee/br/tapes"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("brvm: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

type snapshot struct {
	TapeLength int                `cbor:"1,keyasint"`
	CellMax    tapes.Cell         `cbor:"2,keyasint"`
	Cells      []tapes.Cell       `cbor:"3,keyasint"`
	Pointer    int                `cbor:"4,keyasint"`
	Loops      []intents.Position `cbor:"5,keyasint"`
	Source     intents.Position   `cbor:"6,keyasint"`
	Steps      int64              `cbor:"7,keyasint"`
	Halted     bool               `cbor:"8,keyasint"`
	Pending    *pending           `cbor:"9,keyasint,omitempty"`
	Skipping   *skipping          `cbor:"10,keyasint,omitempty"`
}

// Snapshot writes the machine state as canonical CBOR. Restoring it into a VM
// over the same program resumes the run.
func (v *VM) Snapshot(w io.Writer) error {
	data, err := cborEncMode.Marshal(snapshot{
		TapeLength: v.tape.Len(),
		CellMax:    v.tape.Max(),
		Cells:      v.tape.Cells(),
		Pointer:    v.tape.Pointer(),
		Loops:      v.loops,
		Source:     v.Source.Position(),
		Steps:      v.steps,
		Halted:     v.halted,
		Pending:    v.pending,
		Skipping:   v.skipping,
	})
	if err != nil {
		return fmt.Errorf("brvm: marshal snapshot: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("brvm: write snapshot: %w", err)
	}
	return nil
}

func (v *VM) Restore(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("brvm: read snapshot: %w", err)
	}
	var s snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("brvm: unmarshal snapshot: %w", err)
	}
	if s.TapeLength != v.tape.Len() || s.CellMax != v.tape.Max() {
		return fmt.Errorf("brvm: snapshot tape %d/%d does not match %d/%d",
			s.TapeLength, s.CellMax, v.tape.Len(), v.tape.Max())
	}
	if err := v.tape.Reset(s.Cells, s.Pointer); err != nil {
		return fmt.Errorf("brvm: restore tape: %w", err)
	}
	if err := v.Source.Seek(s.Source); err != nil {
		return fmt.Errorf("brvm: restore source: %w", err)
	}
	v.loops = s.Loops
	v.steps = s.Steps
	v.halted = s.Halted
	v.pending = s.Pending
	v.skipping = s.Skipping
	return nil
}

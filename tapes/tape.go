package tapes

import (
	"fmt"
	"math"
)

type Cell uint16

const (
	DefaultLength     = 30_000
	DefaultMax   Cell = 255
)

// Tape is a fixed length ring of cells. Cell values wrap modulo Max+1 and the
// pointer wraps at both ends.
type Tape struct {
	cells   []Cell
	max     Cell
	pointer int
}

func New(length int, max Cell) (*Tape, error) {
	if length < 1 {
		return nil, fmt.Errorf("tape length must be positive, got %d", length)
	}
	if max < 1 {
		return nil, fmt.Errorf("cell max must be positive, got %d", max)
	}
	return &Tape{
		cells: make([]Cell, length),
		max:   max,
	}, nil
}

// Move shifts the pointer by delta and reports whether it wrapped.
func (t *Tape) Move(delta int) (wrapped bool) {
	p := t.pointer + delta
	switch {
	case p >= len(t.cells):
		p = 0
		wrapped = true
	case p < 0:
		p = len(t.cells) - 1
		wrapped = true
	}
	t.pointer = p
	return
}

func (t *Tape) Adjust(delta int) {
	c := &t.cells[t.pointer]
	switch {
	case delta > 0 && *c == t.max:
		*c = 0
	case delta < 0 && *c == 0:
		*c = t.max
	default:
		*c = Cell(int(*c) + delta)
	}
}

func (t *Tape) Read() Cell {
	return t.cells[t.pointer]
}

// Write stores v at the pointer, clamped into [0, Max].
func (t *Tape) Write(v int) {
	switch {
	case v < 0:
		v = 0
	case v > int(t.max):
		v = int(t.max)
	}
	t.cells[t.pointer] = Cell(v)
}

func (t *Tape) Pointer() int {
	return t.pointer
}

func (t *Tape) Len() int {
	return len(t.cells)
}

func (t *Tape) Max() Cell {
	return t.max
}

func (t *Tape) At(i int) Cell {
	return t.cells[i]
}

// Window returns up to width cells around center, and the index of the first
// returned cell. The returned slice aliases the tape.
func (t *Tape) Window(center, width int) (start int, cells []Cell) {
	if width <= 0 {
		return 0, nil
	}
	width = min(width, len(t.cells))
	start = max(0, center-width/2)
	end := min(start+width, len(t.cells))
	start = max(0, end-width)
	return start, t.cells[start:end]
}

func (t *Tape) Cells() []Cell {
	return t.cells
}

// Reset restores cells and pointer, used when restoring a snapshot.
func (t *Tape) Reset(cells []Cell, pointer int) error {
	if len(cells) != len(t.cells) {
		return fmt.Errorf("tape length mismatch: have %d, got %d", len(t.cells), len(cells))
	}
	if pointer < 0 || pointer >= len(t.cells) {
		return fmt.Errorf("pointer out of range: %d", pointer)
	}
	for i, c := range cells {
		if c > t.max {
			return fmt.Errorf("cell %d out of range: %d > %d", i, c, t.max)
		}
	}
	copy(t.cells, cells)
	t.pointer = pointer
	return nil
}

// MaxFromInt validates an integer cell maximum from configuration.
func MaxFromInt(n int) (Cell, error) {
	if n < 1 || n > math.MaxUint16 {
		return 0, fmt.Errorf("cell max out of range: %d", n)
	}
	return Cell(n), nil
}

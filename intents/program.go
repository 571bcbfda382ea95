package intents

import (
	"bytes"
	"fmt"
	"iter"
	"sort"
)

type Instruction struct {
	Intent   Intent
	Location Location
	Char     byte
}

// Program is source text decoded ahead of time, with the index of the
// matching bracket for every LoopStart and LoopEnd (-1 when unmatched).
type Program struct {
	Instructions []Instruction
	Match        []int
	errs         []programError
}

type programError struct {
	index int
	err   error
}

// Compile decodes src once. Decode errors are collected and returned; the
// offending bytes are dropped from the program just as Reader skips them.
func Compile(src []byte) (*Program, []error) {
	var errs []error
	reader := NewReader(bytes.NewReader(src))
	program := new(Program)
	var open []int
	for {
		intent, err := reader.Next()
		if err != nil {
			errs = append(errs, err)
			program.errs = append(program.errs, programError{
				index: len(program.Instructions),
				err:   err,
			})
		}
		if intent == EndOfFile {
			break
		}
		if intent == Unsupported {
			continue
		}
		idx := len(program.Instructions)
		program.Instructions = append(program.Instructions, Instruction{
			Intent:   intent,
			Location: reader.Location(),
			Char:     reader.Char(),
		})
		program.Match = append(program.Match, -1)
		switch intent {
		case LoopStart:
			open = append(open, idx)
		case LoopEnd:
			if len(open) > 0 {
				start := open[len(open)-1]
				open = open[:len(open)-1]
				program.Match[start] = idx
				program.Match[idx] = start
			}
		}
	}
	return program, errs
}

func (p *Program) Cursor() *Cursor {
	return &Cursor{
		program:  p,
		location: StartLocation,
	}
}

// Cursor walks a Program with the same contract as Reader. Position offsets
// are instruction indexes. Decode errors found at compile time are returned
// where the stream would meet them, so seeking back over one reports it again.
type Cursor struct {
	program  *Program
	index    int
	location Location
	char     byte
	errPos   int
}

func (c *Cursor) Next() (Intent, error) {
	if errs := c.program.errs; c.errPos < len(errs) && errs[c.errPos].index <= c.index {
		err := errs[c.errPos].err
		c.errPos++
		return Unsupported, err
	}
	if c.index >= len(c.program.Instructions) {
		return EndOfFile, nil
	}
	inst := c.program.Instructions[c.index]
	c.index++
	c.location = inst.Location
	c.char = inst.Char
	return inst.Intent, nil
}

func (c *Cursor) All() iter.Seq2[Intent, error] {
	return all(c.Next)
}

func (c *Cursor) Position() Position {
	return Position{
		Offset:   int64(c.index),
		Location: c.location,
	}
}

func (c *Cursor) Seek(pos Position) error {
	if pos.Offset < 0 || pos.Offset > int64(len(c.program.Instructions)) {
		return fmt.Errorf("seek out of range: %d", pos.Offset)
	}
	c.index = int(pos.Offset)
	c.location = pos.Location
	errs := c.program.errs
	c.errPos = sort.Search(len(errs), func(i int) bool {
		return errs[i].index >= c.index
	})
	return nil
}

func (c *Cursor) Location() Location {
	return c.location
}

func (c *Cursor) Char() byte {
	return c.char
}

// MatchingEnd returns the position just past the LoopEnd balancing the
// LoopStart that precedes pos. Bodies holding decode errors are not jumped
// over, the caller scans them to report the errors.
func (c *Cursor) MatchingEnd(pos Position) (Position, bool) {
	start := int(pos.Offset) - 1
	if start < 0 || start >= len(c.program.Match) ||
		c.program.Instructions[start].Intent != LoopStart {
		return Position{}, false
	}
	end := c.program.Match[start]
	if end < 0 {
		return Position{}, false
	}
	for _, e := range c.program.errs {
		if e.index > start && e.index <= end {
			return Position{}, false
		}
	}
	return Position{
		Offset:   int64(end + 1),
		Location: c.program.Instructions[end].Location,
	}, true
}

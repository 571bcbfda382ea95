package intents

import (
	"errors"
	"fmt"
	"io"
	"iter"
)

// Reader decodes intents from a seekable byte stream, one byte at a time.
type Reader struct {
	rs       io.ReadSeeker
	br       io.ByteReader
	offset   int64
	location Location
	char     byte
	buf      [1]byte
}

func NewReader(rs io.ReadSeeker) *Reader {
	r := &Reader{
		rs:       rs,
		location: StartLocation,
	}
	if br, ok := rs.(io.ByteReader); ok {
		r.br = br
	}
	return r
}

func (r *Reader) readByte() (byte, error) {
	if r.br != nil {
		return r.br.ReadByte()
	}
	if _, err := io.ReadFull(r.rs, r.buf[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			err = io.EOF
		}
		return 0, err
	}
	return r.buf[0], nil
}

// Next returns the next intent. Whitespace is skipped. For unsupported bytes
// it returns Unsupported and a *Diagnostic after consuming the byte; the
// caller reports it and calls Next again.
func (r *Reader) Next() (Intent, error) {
	if r.rs == nil {
		return EndOfFile, &Diagnostic{
			Severity: SeverityError,
			Kind:     ErrNotOpened,
			Location: r.location,
			Message:  "file hasn't been opened yet",
		}
	}
	for {
		c, err := r.readByte()
		if errors.Is(err, io.EOF) {
			return EndOfFile, nil
		} else if err != nil {
			return EndOfFile, fmt.Errorf("read source: %w", err)
		}
		r.offset++
		r.location = r.location.advance(c)
		r.char = c

		if isSpace(c) {
			continue
		}
		if c == '#' {
			return Unsupported, &Diagnostic{
				Severity: SeverityError,
				Kind:     ErrComment,
				Location: r.location,
				Message:  "comments are not supported in standard brainfuck",
			}
		}
		intent := Decode(c)
		if intent == Unsupported {
			return Unsupported, &Diagnostic{
				Severity: SeverityError,
				Kind:     ErrUnsupportedByte,
				Location: r.location,
				Message:  fmt.Sprintf("unsupported operator %q", c),
			}
		}
		return intent, nil
	}
}

// All yields intents until EndOfFile. Reading continues from the current
// stream position on every pull, so the consumer may Seek between pulls.
func (r *Reader) All() iter.Seq2[Intent, error] {
	return all(r.Next)
}

func all(next func() (Intent, error)) iter.Seq2[Intent, error] {
	return func(yield func(Intent, error) bool) {
		for {
			intent, err := next()
			if intent == EndOfFile {
				if err != nil {
					yield(EndOfFile, err)
				}
				return
			}
			if !yield(intent, err) {
				return
			}
		}
	}
}

func (r *Reader) Position() Position {
	return Position{
		Offset:   r.offset,
		Location: r.location,
	}
}

func (r *Reader) Seek(pos Position) error {
	if r.rs == nil {
		return ErrNotOpened
	}
	if _, err := r.rs.Seek(pos.Offset, io.SeekStart); err != nil {
		return fmt.Errorf("seek source: %w", err)
	}
	r.offset = pos.Offset
	r.location = pos.Location
	return nil
}

// Location of the last consumed byte.
func (r *Reader) Location() Location {
	return r.location
}

// Char is the last consumed byte.
func (r *Reader) Char() byte {
	return r.char
}

package consoles

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/term"
)

// Terminal switches stdin between raw single-key reads and cooked line
// editing.
type Terminal struct {
	In    *os.File
	Out   *os.File
	state *term.State
}

func (t *Terminal) IsTerminal() bool {
	return t.In != nil && term.IsTerminal(int(t.In.Fd()))
}

func (t *Terminal) Raw() error {
	if !t.IsTerminal() || t.state != nil {
		return nil
	}
	state, err := term.MakeRaw(int(t.In.Fd()))
	if err != nil {
		return err
	}
	t.state = state
	return nil
}

func (t *Terminal) Restore() error {
	if t.state == nil {
		return nil
	}
	err := term.Restore(int(t.In.Fd()), t.state)
	t.state = nil
	return err
}

func (t *Terminal) InRaw() bool {
	return t.state != nil
}

// Width of the output terminal, 80 when unknown.
func (t *Terminal) Width() int {
	if t.Out != nil {
		if w, _, err := term.GetSize(int(t.Out.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return 80
}

// CRLFWriter translates \n into \r\n, since raw mode disables the
// translation done by the tty.
type CRLFWriter struct {
	W io.Writer
}

var crlf = []byte("\r\n")

func (c CRLFWriter) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			n, err := c.W.Write(p)
			return written + n, err
		}
		if i > 0 {
			n, err := c.W.Write(p[:i])
			written += n
			if err != nil {
				return written, err
			}
		}
		if _, err := c.W.Write(crlf); err != nil {
			return written, err
		}
		written++
		p = p[i+1:]
	}
	return written, nil
}

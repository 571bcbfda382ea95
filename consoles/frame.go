package consoles

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/reusee/br/tapes"
)

// Frame is the step screen: a window of cells around the pointer, the status
// line and the hint line.
type Frame struct {
	Tape   *tapes.Tape
	Width  int
	Status string
	Hint   string
}

// digits is the width of a cell value; at least 3, wider when the cell max
// or the highest index needs it.
func (f Frame) digits() int {
	return max(
		3,
		len(strconv.Itoa(int(f.Tape.Max()))),
		len(strconv.Itoa(f.Tape.Len()-1))-2,
	)
}

func (f Frame) Lines() []string {
	digits := f.digits()
	cellWidth := digits + 3
	fit := max(1, (f.Width-1)/cellWidth)
	start, cells := f.Tape.Window(f.Tape.Pointer(), fit)

	border := strings.Repeat("═", cellWidth-1)
	var indexes, top, values, bottom, caret, rule strings.Builder
	for i, c := range cells {
		index := start + i
		fmt.Fprintf(&indexes, " %*d", cellWidth-1, index)
		if i == 0 {
			top.WriteString("╔" + border)
			bottom.WriteString("╚" + border)
		} else {
			top.WriteString("╦" + border)
			bottom.WriteString("╩" + border)
		}
		fmt.Fprintf(&values, "║ %*d ", digits, c)
		if index == f.Tape.Pointer() {
			caret.WriteString("  ^" + strings.Repeat(" ", cellWidth-3))
		} else {
			caret.WriteString(strings.Repeat(" ", cellWidth))
		}
		rule.WriteString(strings.Repeat("─", cellWidth))
	}
	top.WriteString("╗")
	values.WriteString("║")
	bottom.WriteString("╝")
	rule.WriteString("─")

	return []string{
		indexes.String(),
		top.String(),
		values.String(),
		bottom.String(),
		strings.TrimRight(caret.String(), " "),
		f.Status,
		f.Hint,
		rule.String(),
	}
}

// Draw writes the frame. With ansi set it is drawn over the top rows of the
// screen and the cursor is put back where it was.
func (f Frame) Draw(w io.Writer, ansi bool) error {
	var b strings.Builder
	if ansi {
		b.WriteString("\x1b7\x1b[H")
	}
	for _, line := range f.Lines() {
		b.WriteString(line)
		if ansi {
			b.WriteString("\x1b[K\r\n")
		} else {
			b.WriteString("\n")
		}
	}
	if ansi {
		b.WriteString("\x1b8")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// StatusLine mirrors the location, the raw character and what it does.
func StatusLine(line, column int, char byte, description string) string {
	return fmt.Sprintf("L%d C%d: %c    %s", line, column, char, description)
}

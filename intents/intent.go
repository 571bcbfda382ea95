package intents

type Intent uint8

const (
	EndOfFile Intent = iota
	MovePointerRight
	MovePointerLeft
	IncrementCell
	DecrementCell
	OutputCell
	InputCell
	LoopStart
	LoopEnd

	// Unsupported accompanies a decode error; it is never executed.
	Unsupported
)

var intentNames = [...]string{
	EndOfFile:        "EndOfFile",
	MovePointerRight: "MovePointerRight",
	MovePointerLeft:  "MovePointerLeft",
	IncrementCell:    "IncrementCell",
	DecrementCell:    "DecrementCell",
	OutputCell:       "OutputCell",
	InputCell:        "InputCell",
	LoopStart:        "LoopStart",
	LoopEnd:          "LoopEnd",
	Unsupported:      "Unsupported",
}

func (i Intent) String() string {
	if int(i) < len(intentNames) {
		return intentNames[i]
	}
	return "Intent(?)"
}

func Decode(c byte) Intent {
	switch c {
	case '>':
		return MovePointerRight
	case '<':
		return MovePointerLeft
	case '+':
		return IncrementCell
	case '-':
		return DecrementCell
	case '.':
		return OutputCell
	case ',':
		return InputCell
	case '[':
		return LoopStart
	case ']':
		return LoopEnd
	}
	return Unsupported
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

type Location struct {
	Line   int
	Column int
}

var StartLocation = Location{Line: 1}

// advance moves the location past c. Carriage returns count in neither line
// nor column.
func (l Location) advance(c byte) Location {
	switch c {
	case '\n':
		l.Line++
		l.Column = 0
	case '\r':
	default:
		l.Column++
	}
	return l
}

// Position is a bookmark into an instruction source.
type Position struct {
	Offset   int64
	Location Location
}

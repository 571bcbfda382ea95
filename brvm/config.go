package brvm

import (
	"fmt"

	"github.com/reusee/br/tapes"
)

// SkipScan selects how a loop whose guard cell is zero is skipped.
type SkipScan uint8

const (
	// SkipNested stops at the balancing LoopEnd.
	SkipNested SkipScan = iota
	// SkipFlat stops at the first LoopEnd met, ignoring nested loops.
	SkipFlat
)

func (s SkipScan) String() string {
	if s == SkipFlat {
		return "flat"
	}
	return "nested"
}

func ParseSkipScan(str string) (SkipScan, error) {
	switch str {
	case "", "nested":
		return SkipNested, nil
	case "flat":
		return SkipFlat, nil
	}
	return 0, fmt.Errorf("unknown skip scan policy: %s", str)
}

type Config struct {
	TapeLength int
	CellMax    tapes.Cell
	SkipScan   SkipScan
}

func DefaultConfig() Config {
	return Config{
		TapeLength: tapes.DefaultLength,
		CellMax:    tapes.DefaultMax,
		SkipScan:   SkipNested,
	}
}

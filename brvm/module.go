package brvm

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/reusee/br/brconfigs"
	"github.com/reusee/br/intents"
	"github.com/reusee/br/logs"
	"github.com/reusee/br/tapes"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs brconfigs.Module
}

type NewVM func(source Source, input io.Reader, output io.Writer) (*VM, error)

func (Module) NewVM(
	tapeLength brconfigs.TapeLength,
	cellMax brconfigs.CellMax,
	skipScan brconfigs.SkipScan,
	logger logs.Logger,
) NewVM {
	return func(source Source, input io.Reader, output io.Writer) (*VM, error) {
		max, err := tapes.MaxFromInt(int(cellMax))
		if err != nil {
			return nil, err
		}
		scan, err := ParseSkipScan(string(skipScan))
		if err != nil {
			return nil, err
		}
		config := Config{
			TapeLength: int(tapeLength),
			CellMax:    max,
			SkipScan:   scan,
		}
		logger.Debug("new vm",
			"tape_length", config.TapeLength,
			"cell_max", config.CellMax,
			"skip_scan", config.SkipScan,
		)
		return New(config, source, input, output)
	}
}

type OpenProgram func(path string) (Source, error)

func (Module) OpenProgram(
	strategy brconfigs.Strategy,
	logger logs.Logger,
) OpenProgram {
	return func(path string) (Source, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		switch strategy {
		case brconfigs.StrategyStream:
			return intents.NewReader(bytes.NewReader(data)), nil
		case brconfigs.StrategyCompiled:
			program, errs := intents.Compile(data)
			logger.Debug("compiled program",
				"path", path,
				"instructions", len(program.Instructions),
				"decode_errors", len(errs),
			)
			return program.Cursor(), nil
		}
		return nil, fmt.Errorf("unknown strategy: %s", strategy)
	}
}

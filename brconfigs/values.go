package brconfigs

import (
	"github.com/reusee/br/cmds"
	"github.com/reusee/br/configs"
	"github.com/reusee/br/tapes"
	"github.com/reusee/br/vars"
)

var (
	tapeLengthFlag = cmds.Var[int]("-tape-length", "number of tape cells")
	cellMaxFlag    = cmds.Var[int]("-cell-max", "largest cell value")
	skipScanFlag   = cmds.Var[string]("-skip-scan", "nested or flat")
	strategyFlag   = cmds.Var[string]("-strategy", "stream or compiled")
	stepFlag       = cmds.Count("-step", "run interactively, pausing between instructions")
)

type TapeLength int

var _ configs.Configurable = TapeLength(0)

func (TapeLength) ConfigExpr() string {
	return "tape_length"
}

func (Module) TapeLength(
	loader configs.Loader,
) TapeLength {
	return TapeLength(vars.FirstNonZero(
		*tapeLengthFlag,
		configs.First[int](loader, "tape_length"),
		tapes.DefaultLength,
	))
}

type CellMax int

var _ configs.Configurable = CellMax(0)

func (CellMax) ConfigExpr() string {
	return "cell_max"
}

func (Module) CellMax(
	loader configs.Loader,
) CellMax {
	return CellMax(vars.FirstNonZero(
		*cellMaxFlag,
		configs.First[int](loader, "cell_max"),
		int(tapes.DefaultMax),
	))
}

type SkipScan string

var _ configs.Configurable = SkipScan("")

func (SkipScan) ConfigExpr() string {
	return "skip_scan"
}

func (Module) SkipScan(
	loader configs.Loader,
) SkipScan {
	return SkipScan(vars.FirstNonZero(
		*skipScanFlag,
		configs.First[string](loader, "skip_scan"),
		"nested",
	))
}

type Strategy string

const (
	StrategyStream   Strategy = "stream"
	StrategyCompiled Strategy = "compiled"
)

var _ configs.Configurable = Strategy("")

func (Strategy) ConfigExpr() string {
	return "strategy"
}

func (Module) Strategy(
	loader configs.Loader,
) Strategy {
	return Strategy(vars.FirstNonZero(
		*strategyFlag,
		configs.First[string](loader, "strategy"),
		string(StrategyStream),
	))
}

type StepMode bool

var _ configs.Configurable = StepMode(false)

func (StepMode) ConfigExpr() string {
	return "step"
}

func (Module) StepMode(
	loader configs.Loader,
) StepMode {
	return StepMode(*stepFlag > 0 || configs.First[bool](loader, "step"))
}

// StepFlagCount is how many times -step was given.
func StepFlagCount() int {
	return *stepFlag
}

package brvm

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/reusee/br/brconfigs"
	"github.com/reusee/br/modes"
	"github.com/reusee/dscope"
)

func TestModule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.bf")
	if err := os.WriteFile(path, []byte(helloWorld), 0644); err != nil {
		t.Fatal(err)
	}

	for _, strategy := range []brconfigs.Strategy{
		brconfigs.StrategyStream,
		brconfigs.StrategyCompiled,
	} {
		dscope.New(
			modes.ForTest(t),
			new(Module),
		).Fork(
			func() brconfigs.Strategy {
				return strategy
			},
		).Call(func(
			open OpenProgram,
			newVM NewVM,
		) {
			source, err := open(path)
			if err != nil {
				t.Fatal(err)
			}
			out := new(bytes.Buffer)
			vm, err := newVM(source, nil, out)
			if err != nil {
				t.Fatal(err)
			}
			if errs := runAll(vm); len(errs) > 0 {
				t.Fatal(errs)
			}
			if out.String() != "Hello World!\n" {
				t.Fatalf("%s: got %q", strategy, out.String())
			}
		})
	}
}

func TestModuleBadConfig(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() brconfigs.SkipScan {
			return "deep"
		},
	).Call(func(
		newVM NewVM,
	) {
		if _, err := newVM(nil, nil, nil); err == nil {
			t.Fatal("should error")
		}
	})

	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() brconfigs.CellMax {
			return 70000
		},
	).Call(func(
		newVM NewVM,
	) {
		if _, err := newVM(nil, nil, nil); err == nil {
			t.Fatal("should error")
		}
	})
}

func TestOpenMissingProgram(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Call(func(
		open OpenProgram,
	) {
		if _, err := open(filepath.Join(t.TempDir(), "missing.bf")); err == nil {
			t.Fatal("should error")
		}
	})
}

package cmds

import (
	"errors"
	"strings"
	"testing"
)

func TestExecutor(t *testing.T) {
	executor := NewExecutor()

	var a int
	executor.Define("+a", Func(func() {
		a = 42
	}))
	executor.Define("a", Func(func(i int) {
		a = i
	}))

	if err := executor.Execute([]string{
		"+a",
	}); err != nil {
		t.Fatal(err)
	}
	if a != 42 {
		t.Fatal()
	}

	if err := executor.Execute([]string{
		"a", "1",
	}); err != nil {
		t.Fatal(err)
	}
	if a != 1 {
		t.Fatal()
	}

	err := executor.Execute([]string{
		"foo",
	})
	if !strings.Contains(err.Error(), "unknown command: foo") {
		t.Fatalf("got %v", err)
	}

	err = executor.Execute([]string{
		"a", "x",
	})
	if !strings.Contains(err.Error(), "convert x to int") {
		t.Fatalf("got %v", err)
	}
}

func TestSubCommands(t *testing.T) {
	executor := NewExecutor()
	var bar, baz int
	executor.Define("foo", Sub(map[string]*Command{
		"bar": Func(func() {
			bar = 1
		}),
		"baz": Func(func(i int) {
			baz = i
		}),
	}))

	if err := executor.Execute([]string{
		"foo",
		"bar",
		"baz", "42",
	}); err != nil {
		t.Fatal(err)
	}

	if bar != 1 {
		t.Fatal()
	}
	if baz != 42 {
		t.Fatal()
	}
}

func TestFallback(t *testing.T) {
	executor := NewExecutor()
	step := false
	executor.Define("-step", Func(func() {
		step = true
	}))
	args := &Args{Want: 1}
	executor.Fallback = args.Collect
	if err := executor.Execute([]string{"-x", "prog.bf", "-step", "other.bf"}); err != nil {
		t.Fatal(err)
	}
	if !step {
		t.Fatal()
	}
	if args.Get(0) != "prog.bf" || args.Get(1) != "" {
		t.Fatalf("got %v", args.Positional)
	}
	if strings.Join(args.Unknown, ",") != "-x,other.bf" {
		t.Fatalf("got %v", args.Unknown)
	}

	executor.Fallback = func(arg string) error {
		return errors.New("bad argument")
	}
	if err := executor.Execute([]string{"bad"}); err == nil {
		t.Fatal("should error")
	}
	executor.Fallback = nil
	if err := executor.Execute([]string{"bad"}); err == nil {
		t.Fatal("should error")
	}
}

func TestParseValue(t *testing.T) {
	executor := NewExecutor()
	var (
		u uint8
		f float64
		b bool
		p *int16
	)
	executor.Define("set", Func(func(a uint8, c float64, d bool, e *int16) {
		u, f, b, p = a, c, d, e
	}))
	if err := executor.Execute([]string{"set", "7", "0.5", "true", "-3"}); err != nil {
		t.Fatal(err)
	}
	if u != 7 || f != 0.5 || !b || *p != -3 {
		t.Fatalf("got %v %v %v %v", u, f, b, *p)
	}

	err := executor.Execute([]string{"set", "300", "0", "0", "0"})
	if err == nil || !strings.Contains(err.Error(), "convert 300 to unsigned int") {
		t.Fatalf("got %v", err)
	}
	err = executor.Execute([]string{"set", "1"})
	if err == nil || !strings.Contains(err.Error(), "expecting argument") {
		t.Fatalf("got %v", err)
	}

	executor.Define("map", Func(func(map[string]int) {}))
	err = executor.Execute([]string{"map", "x"})
	if err == nil || !strings.Contains(err.Error(), "unsupported type") {
		t.Fatalf("got %v", err)
	}
}

func TestFuncError(t *testing.T) {
	executor := NewExecutor()
	executor.Define("fail", Func(func() error {
		return errors.New("boom")
	}))
	executor.Define("ok", Func(func() error {
		return nil
	}))
	if err := executor.Execute([]string{"ok"}); err != nil {
		t.Fatal(err)
	}
	err := executor.Execute([]string{"fail"})
	if err == nil || err.Error() != "fail: boom" {
		t.Fatalf("got %v", err)
	}
}

func TestOptionalArg(t *testing.T) {
	executor := NewExecutor()
	var got *int
	executor.Define("n", Func(func(i *int) {
		got = i
	}))
	if err := executor.Execute([]string{"n", "3"}); err != nil {
		t.Fatal(err)
	}
	if *got != 3 {
		t.Fatalf("got %v", *got)
	}
	if err := executor.Execute([]string{"n"}); err != nil {
		t.Fatal(err)
	}
	if *got != 0 {
		t.Fatalf("got %v", *got)
	}
}

func TestUsage(t *testing.T) {
	executor := NewExecutor()
	executor.Define("foo", Sub(map[string]*Command{
		"bar": Func(func() {
		}).Desc("BAR"),
		"baz": Sub(map[string]*Command{
			"qux": Func(func(int) {}).Desc("QUX"),
		}).Desc("BAZ"),
	}).Desc("FOO"))
	buf := new(strings.Builder)
	executor.WriteUsage(buf)
	out := buf.String()
	for _, want := range []string{
		"--help, -h, -help, help\tprint this usage",
		"foo\tFOO",
		"  bar\tBAR",
		"    qux <int>\tQUX",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in\n%s", want, out)
		}
	}
}

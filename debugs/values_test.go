package debugs

import (
	"testing"

	"github.com/reusee/br/intents"
	"github.com/reusee/br/tapes"
	"go.starlark.net/starlark"
)

func TestToStarlarkValue(t *testing.T) {
	location := intents.Location{Line: 2, Column: 5}

	dict := func(kvs ...any) starlark.Value {
		d := starlark.NewDict(len(kvs) / 2)
		for i := 0; i < len(kvs); i += 2 {
			d.SetKey(kvs[i].(starlark.Value), kvs[i+1].(starlark.Value))
		}
		return d
	}

	testCases := []struct {
		name     string
		input    any
		expected starlark.Value
	}{
		{"nil", nil, starlark.None},
		{"bool", true, starlark.True},
		{"bytes", []byte("abc"), starlark.Bytes("abc")},
		{"string", "hello", starlark.String("hello")},
		{"int", 42, starlark.MakeInt(42)},
		{"int64", int64(-42), starlark.MakeInt(-42)},
		{"cell", tapes.Cell(255), starlark.MakeInt(255)},
		{"float", 0.5, starlark.Float(0.5)},
		{"intent", intents.LoopEnd, starlark.String("LoopEnd")},
		{"cells", []tapes.Cell{1, 2}, starlark.NewList([]starlark.Value{starlark.MakeInt(1), starlark.MakeInt(2)})},
		{"location", location, dict(
			starlark.String("Line"), starlark.MakeInt(2),
			starlark.String("Column"), starlark.MakeInt(5),
		)},
		{"location pointer", &location, dict(
			starlark.String("Line"), starlark.MakeInt(2),
			starlark.String("Column"), starlark.MakeInt(5),
		)},
		{"map", map[string]any{"depth": 1}, dict(
			starlark.String("depth"), starlark.MakeInt(1),
		)},
		{"nil pointer", (*intents.Location)(nil), starlark.None},
		{"starlark value", starlark.String("x"), starlark.String("x")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := toStarlarkValue(tc.input)
			equal, err := starlark.Equal(actual, tc.expected)
			if err != nil {
				t.Fatalf("comparison failed: %v", err)
			}
			if !equal {
				t.Fatalf("got %v, want %v", actual, tc.expected)
			}
		})
	}

	t.Run("func", func(t *testing.T) {
		v := toStarlarkValue(func(i int) int {
			return i + 1
		})
		if _, ok := v.(starlark.Callable); !ok {
			t.Fatalf("got %T", v)
		}
	})

	t.Run("panic on unsupported type", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("should panic")
			}
		}()
		toStarlarkValue(make(chan bool))
	})
}

package intents

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func collect(t *testing.T, r *Reader) (intents []Intent, errs []error) {
	t.Helper()
	for intent, err := range r.All() {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		intents = append(intents, intent)
	}
	return
}

func TestReaderDecode(t *testing.T) {
	r := NewReader(strings.NewReader("><+-.,[]"))
	got, errs := collect(t, r)
	if len(errs) > 0 {
		t.Fatal(errs)
	}
	want := []Intent{
		MovePointerRight, MovePointerLeft,
		IncrementCell, DecrementCell,
		OutputCell, InputCell,
		LoopStart, LoopEnd,
	}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v", got)
	}
}

func TestReaderSkipsWhitespace(t *testing.T) {
	r := NewReader(strings.NewReader(" +\t\r\n -\n"))
	got, errs := collect(t, r)
	if len(errs) > 0 {
		t.Fatal(errs)
	}
	if !slices.Equal(got, []Intent{IncrementCell, DecrementCell}) {
		t.Fatalf("got %v", got)
	}
	if loc := r.Location(); loc != (Location{Line: 3, Column: 0}) {
		t.Fatalf("got %+v", loc)
	}
}

func TestReaderLocation(t *testing.T) {
	r := NewReader(strings.NewReader("+\r\n ++"))
	var locs []Location
	for _, err := range r.All() {
		if err != nil {
			t.Fatal(err)
		}
		locs = append(locs, r.Location())
	}
	want := []Location{
		{Line: 1, Column: 1},
		{Line: 2, Column: 2},
		{Line: 2, Column: 3},
	}
	if !slices.Equal(locs, want) {
		t.Fatalf("got %v", locs)
	}
}

func TestReaderDecodeErrors(t *testing.T) {
	r := NewReader(strings.NewReader("+#a-"))
	got, errs := collect(t, r)
	if !slices.Equal(got, []Intent{IncrementCell, DecrementCell}) {
		t.Fatalf("got %v", got)
	}
	if len(errs) != 2 {
		t.Fatalf("got %v", errs)
	}
	if !errors.Is(errs[0], ErrComment) {
		t.Fatalf("got %v", errs[0])
	}
	if !errors.Is(errs[1], ErrUnsupportedByte) {
		t.Fatalf("got %v", errs[1])
	}
	var diag *Diagnostic
	if !errors.As(errs[1], &diag) {
		t.Fatal()
	}
	if diag.Location != (Location{Line: 1, Column: 3}) {
		t.Fatalf("got %+v", diag.Location)
	}
	if diag.Error() != `error L1 C3: unsupported operator 'a'` {
		t.Fatalf("got %s", diag.Error())
	}
}

func TestReaderSeekBack(t *testing.T) {
	r := NewReader(strings.NewReader("+[>\n<]"))
	r.Next()
	r.Next()
	mark := r.Position()
	if mark.Offset != 2 {
		t.Fatalf("got %d", mark.Offset)
	}
	var first []Intent
	for intent, err := range r.All() {
		if err != nil {
			t.Fatal(err)
		}
		first = append(first, intent)
	}
	if err := r.Seek(mark); err != nil {
		t.Fatal(err)
	}
	if r.Location() != (Location{Line: 1, Column: 2}) {
		t.Fatalf("got %+v", r.Location())
	}
	var second []Intent
	for intent, err := range r.All() {
		if err != nil {
			t.Fatal(err)
		}
		second = append(second, intent)
	}
	if !slices.Equal(first, second) {
		t.Fatalf("got %v, %v", first, second)
	}
	if !slices.Equal(first, []Intent{MovePointerRight, MovePointerLeft, LoopEnd}) {
		t.Fatalf("got %v", first)
	}
}

func TestReaderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.bf")
	if err := os.WriteFile(path, []byte("++ >"), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	r := NewReader(f)
	got, errs := collect(t, r)
	if len(errs) > 0 {
		t.Fatal(errs)
	}
	if !slices.Equal(got, []Intent{IncrementCell, IncrementCell, MovePointerRight}) {
		t.Fatalf("got %v", got)
	}
	if err := r.Seek(Position{Offset: 1, Location: Location{Line: 1, Column: 1}}); err != nil {
		t.Fatal(err)
	}
	intent, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if intent != IncrementCell {
		t.Fatalf("got %v", intent)
	}
}

func TestReaderNotOpened(t *testing.T) {
	var r Reader
	intent, err := r.Next()
	if intent != EndOfFile {
		t.Fatalf("got %v", intent)
	}
	if !errors.Is(err, ErrNotOpened) {
		t.Fatalf("got %v", err)
	}
	if err := r.Seek(Position{}); !errors.Is(err, ErrNotOpened) {
		t.Fatalf("got %v", err)
	}
}

func TestCompile(t *testing.T) {
	program, errs := Compile([]byte("+[>[-]<\n]x]"))
	if len(errs) != 1 || !errors.Is(errs[0], ErrUnsupportedByte) {
		t.Fatalf("got %v", errs)
	}
	var intents []Intent
	for _, inst := range program.Instructions {
		intents = append(intents, inst.Intent)
	}
	if str := fmt.Sprint(intents); str != "[IncrementCell LoopStart MovePointerRight LoopStart DecrementCell LoopEnd MovePointerLeft LoopEnd LoopEnd]" {
		t.Fatalf("got %s", str)
	}
	if !slices.Equal(program.Match, []int{-1, 7, -1, 5, -1, 3, -1, 1, -1}) {
		t.Fatalf("got %v", program.Match)
	}
	if loc := program.Instructions[7].Location; loc != (Location{Line: 2, Column: 1}) {
		t.Fatalf("got %+v", loc)
	}
}

func TestCursorMatchesReader(t *testing.T) {
	src := []byte("++[>+<-]\n#>.")
	program, _ := Compile(src)
	cursor := program.Cursor()
	reader := NewReader(bytes.NewReader(src))
	for {
		want, err := reader.Next()
		if err != nil {
			continue
		}
		got, err := cursor.Next()
		if err != nil {
			if !errors.Is(err, ErrComment) {
				t.Fatal(err)
			}
			got, err = cursor.Next()
			if err != nil {
				t.Fatal(err)
			}
		}
		if got != want {
			t.Fatalf("got %v, want %v", got, want)
		}
		if cursor.Location() != reader.Location() {
			t.Fatalf("got %+v, want %+v", cursor.Location(), reader.Location())
		}
		if got == EndOfFile {
			break
		}
	}
}

func TestCursorMatchingEnd(t *testing.T) {
	program, _ := Compile([]byte("[[]]["))
	cursor := program.Cursor()
	cursor.Next()
	pos, ok := cursor.MatchingEnd(cursor.Position())
	if !ok {
		t.Fatal()
	}
	if pos.Offset != 4 {
		t.Fatalf("got %d", pos.Offset)
	}
	if err := cursor.Seek(Position{Offset: 5}); err != nil {
		t.Fatal(err)
	}
	if _, ok := cursor.MatchingEnd(cursor.Position()); ok {
		t.Fatal("unmatched bracket should not match")
	}
	if err := cursor.Seek(Position{Offset: 6}); err == nil {
		t.Fatal("should error")
	}
}

func TestCursorSeekReplaysErrors(t *testing.T) {
	const src = "+[a-]"
	program, errs := Compile([]byte(src))
	if len(errs) != 1 {
		t.Fatalf("got %v", errs)
	}
	cursor := program.Cursor()
	reader := NewReader(strings.NewReader(src))
	count := func(seq iter.Seq2[Intent, error]) (n int) {
		for _, err := range seq {
			if err != nil {
				n++
			}
		}
		return
	}

	// rewinding to just after '[' meets 'a' again, in both sources
	var fromCursor, fromReader int
	for range 2 {
		fromCursor += count(cursor.All())
		if err := cursor.Seek(Position{Offset: 2}); err != nil {
			t.Fatal(err)
		}
		fromReader += count(reader.All())
		if err := reader.Seek(Position{Offset: 2, Location: Location{Line: 1, Column: 2}}); err != nil {
			t.Fatal(err)
		}
	}
	if fromCursor != 2 || fromReader != 2 {
		t.Fatalf("got %d %d", fromCursor, fromReader)
	}

	// seeking past the error skips it
	if err := cursor.Seek(Position{Offset: 3}); err != nil {
		t.Fatal(err)
	}
	if n := count(cursor.All()); n != 0 {
		t.Fatalf("got %d", n)
	}
}

func TestCursorMatchingEndOverErrors(t *testing.T) {
	program, _ := Compile([]byte("a[-#][-]"))
	cursor := program.Cursor()
	for {
		intent, _ := cursor.Next()
		if intent == LoopStart {
			break
		}
	}
	if _, ok := cursor.MatchingEnd(cursor.Position()); ok {
		t.Fatal("body with errors should be scanned")
	}
	for {
		intent, _ := cursor.Next()
		if intent == LoopEnd {
			break
		}
	}
	cursor.Next()
	if _, ok := cursor.MatchingEnd(cursor.Position()); !ok {
		t.Fatal("clean body should match")
	}
}

package tail

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"
)

func TestLineWindow_Eviction(t *testing.T) {
	window := NewLineWindow(3)
	for _, line := range []string{"1\n", "2\n", "3\n", "4\n", "5"} {
		window.Push([]byte(line))
		if window.Len() > 3 {
			t.Fatalf("window holds %d lines, capacity is 3", window.Len())
		}
	}

	var got []string
	for _, line := range window.Lines() {
		got = append(got, string(line))
	}
	expected := []string{"3\n", "4\n", "5"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Lines() = %q, want %q", got, expected)
	}
}

func TestLineWindow_ZeroCapacity(t *testing.T) {
	window := NewLineWindow(0)
	window.Push([]byte("a\n"))
	if window.Len() != 0 {
		t.Errorf("expected empty window, got %d lines", window.Len())
	}
}

func TestTailStream_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        uint64
		expected string
	}{
		{name: "last two of four", input: "a\nb\nc\nd\n", n: 2, expected: "c\nd\n"},
		{name: "unterminated last line", input: "a\nb\nc", n: 1, expected: "c"},
		{name: "empty", input: "", n: 5, expected: ""},
		{name: "zero lines", input: "a\nb\n", n: 0, expected: ""},
		{name: "fewer than requested", input: "a\nb\n", n: 9, expected: "a\nb\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if _, err := TailStream(strings.NewReader(tt.input), tt.n, &out, 4); err != nil {
				t.Fatalf("TailStream() error = %v", err)
			}
			if out.String() != tt.expected {
				t.Errorf("got %q, want %q", out.String(), tt.expected)
			}
		})
	}
}

func TestTailStream_MatchesForwardSplit(t *testing.T) {
	for name, input := range sampleInputs() {
		t.Run(name, func(t *testing.T) {
			for _, n := range []int{0, 1, 2, 5, 199, 200, 201} {
				var out bytes.Buffer
				// One byte per read, the way a slow pipe delivers data.
				r := iotest.OneByteReader(strings.NewReader(input))
				if _, err := TailStream(r, uint64(n), &out, 16); err != nil {
					t.Fatalf("n %d: TailStream() error = %v", n, err)
				}
				if want := lastLines(input, n); out.String() != want {
					t.Fatalf("n %d: got %q, want %q", n, out.String(), want)
				}
			}
		})
	}
}

func TestTailStream_ReadFailure(t *testing.T) {
	_, err := TailStream(&failingReader{data: "a\nb\n"}, 1, &bytes.Buffer{}, 16)

	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Kind != ReadFailure {
		t.Fatalf("expected read failure, got %v", err)
	}
}

func TestTailStream_WriteFailure(t *testing.T) {
	_, err := TailStream(strings.NewReader("a\nb\n"), 2, shortWriter{}, 16)

	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Kind != WriteFailure {
		t.Fatalf("expected write failure, got %v", err)
	}
}

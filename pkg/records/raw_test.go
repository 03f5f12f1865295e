package records

import (
	"bytes"
	"testing"

	"github.com/blockberries/stdf/internal/stdftest"
)

func TestStreamIteratesRecords(t *testing.T) {
	data := stdftest.Concat(
		stdftest.FAR(),
		stdftest.PIR(1, 1),
		stdftest.PIR(1, 2),
	)
	s := NewStream(bytes.NewReader(data))

	var types []Type
	var offsets []int64
	for s.Next() {
		types = append(types, s.Record().Type)
		offsets = append(offsets, s.Record().Offset)
	}
	wantTypes := []Type{TypeFAR, TypePIR, TypePIR}
	if len(types) != len(wantTypes) {
		t.Fatalf("got %d records, want %d", len(types), len(wantTypes))
	}
	for i := range wantTypes {
		if types[i] != wantTypes[i] {
			t.Errorf("record %d type = %v, want %v", i, types[i], wantTypes[i])
		}
	}
	// FAR content is 2 bytes, so the second record starts at 6.
	if offsets[0] != 0 || offsets[1] != 6 {
		t.Errorf("offsets = %v, want [0 6 ...]", offsets)
	}
}

func TestStreamEmptySource(t *testing.T) {
	s := NewStream(bytes.NewReader(nil))
	if s.Next() {
		t.Error("Next() = true on empty source")
	}
}

func TestStreamTruncatedHeader(t *testing.T) {
	data := stdftest.Concat(stdftest.PIR(1, 1), []byte{0x10, 0x00})
	s := NewStream(bytes.NewReader(data))
	if !s.Next() {
		t.Fatal("expected the complete first record")
	}
	if s.Next() {
		t.Error("Next() = true on truncated header, want silent end of stream")
	}
}

func TestStreamTruncatedContent(t *testing.T) {
	// Declares 16 content bytes but supplies 3.
	data := stdftest.Concat(stdftest.PIR(1, 1), append([]byte{0x10, 0x00, 5, 10}, 1, 2, 3))
	s := NewStream(bytes.NewReader(data))
	if !s.Next() {
		t.Fatal("expected the complete first record")
	}
	if s.Next() {
		t.Error("Next() = true on truncated content, want silent end of stream")
	}
}

func TestStreamYieldsUnknownTypes(t *testing.T) {
	data := stdftest.Record(99, 99, []byte{1, 2, 3})
	s := NewStream(bytes.NewReader(data))
	if !s.Next() {
		t.Fatal("unknown (typ, sub) should still be yielded")
	}
	if got := s.Record().Type; got != TypeInvalid {
		t.Errorf("Type = %v, want TypeInvalid", got)
	}
	if got := len(s.Record().Contents); got != 3 {
		t.Errorf("len(Contents) = %d, want 3", got)
	}
}

package c2patext

import (
	"bytes"
	"testing"
)

func TestScan_ReportsEveryWrapper(t *testing.T) {
	m1 := minimalJumbf()
	m2 := []byte("second")
	w1 := EncodeWrapper(m1)
	w2 := EncodeWrapper(m2)
	text := "ab" + w1 + "c\uFEFF" + w2

	rep := Scan(text)
	if len(rep.Wrappers) != 2 {
		t.Fatalf("wrappers: got %d want 2", len(rep.Wrappers))
	}
	if rep.Rejected != 1 {
		t.Fatalf("rejected: got %d want 1", rep.Rejected)
	}

	first, second := rep.Wrappers[0], rep.Wrappers[1]
	if first.Start != 2 || first.ByteStart != 2 || first.ByteEnd != 2+len(w1) {
		t.Fatalf("first span: %+v", first)
	}
	if !bytes.Equal(first.Payload, m1) || first.Header.Length != uint32(len(m1)) {
		t.Fatalf("first payload mismatch")
	}
	wantStart := 2 + len(w1) + len("c\uFEFF")
	if second.ByteStart != wantStart || second.ByteEnd != len(text) {
		t.Fatalf("second span: got %d..%d want %d..%d", second.ByteStart, second.ByteEnd, wantStart, len(text))
	}
	if text[second.ByteStart:second.ByteEnd] != w2 {
		t.Fatalf("second span does not cover the wrapper")
	}
	if !bytes.Equal(second.Payload, m2) {
		t.Fatalf("second payload mismatch")
	}
}

func TestScan_EmptyText(t *testing.T) {
	rep := Scan("")
	if len(rep.Wrappers) != 0 || rep.Rejected != 0 {
		t.Fatalf("unexpected report %+v", rep)
	}
}

func TestScanner_States(t *testing.T) {
	s := newScanner([]rune("x\uFEFF" + EncodeWrapper(nil)))
	if s.state != stateSearching {
		t.Fatalf("initial state: %s", s.state)
	}
	run, ok := s.next()
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if run.start != 2 {
		t.Fatalf("candidate start: got %d want 2", run.start)
	}
	if s.state != stateSearching || s.pos != run.end {
		t.Fatalf("scanner should resume searching at the end of the run")
	}
	if _, ok := s.next(); ok {
		t.Fatalf("expected no further candidates")
	}
	if s.state != stateDone {
		t.Fatalf("final state: %s", s.state)
	}
	if s.rejected != 1 {
		t.Fatalf("rejected: got %d want 1", s.rejected)
	}
	if _, ok := s.next(); ok {
		t.Fatalf("done scanner must stay done")
	}
}

// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package dna

import "testing"

func mustParse(t *testing.T, s string) []Base {
	t.Helper()
	bases, err := Parse([]byte(s))
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return bases
}

func TestSequenceIndexAndPopFront(t *testing.T) {
	s := New(mustParse(t, "ICFP"))
	if s.Length() != 4 {
		t.Fatalf("Length() = %d, want 4", s.Length())
	}
	for i, want := range []Base{I, C, F, P} {
		if got := s.Index(i); got != want {
			t.Errorf("Index(%d) = %v, want %v", i, got, want)
		}
	}
	for _, want := range []Base{I, C, F, P} {
		if got := s.PopFront(); got != want {
			t.Errorf("PopFront() = %v, want %v", got, want)
		}
	}
	if !s.IsEmpty() {
		t.Errorf("expected sequence to be empty after draining")
	}
}

func TestSequenceTruncateFront(t *testing.T) {
	s := New(mustParse(t, "IICCFFPP"))
	s.TruncateFront(3)
	if s.Length() != 5 {
		t.Fatalf("Length() = %d, want 5", s.Length())
	}
	if got := string(Bytes([]Base{s.Index(0), s.Index(1), s.Index(2), s.Index(3), s.Index(4)})); got != "CFFPP" {
		t.Errorf("remaining = %q, want %q", got, "CFFPP")
	}
}

func TestSequenceTruncateFrontBeyondLength(t *testing.T) {
	s := New(mustParse(t, "IICC"))
	s.TruncateFront(100)
	if s.Length() != 0 {
		t.Errorf("Length() = %d, want 0", s.Length())
	}
}

func TestSequenceSliceSurvivesExtend(t *testing.T) {
	s := New(mustParse(t, "IICCFFPP"))
	slice := s.Slice(2, 6) // "CCFF"
	if slice.Length() != 4 {
		t.Fatalf("slice length = %d, want 4", slice.Length())
	}
	// Mutate s heavily; the slice must still read the original bases, since
	// it only references append-only arena storage.
	s.TruncateFront(s.Length())
	s.ExtendFront([]FrontChunk{Owned(mustParse(t, "PPPP"))})

	want := "CCFF"
	for i, w := range mustParse(t, want) {
		if got := slice.At(i); got != w {
			t.Errorf("slice.At(%d) = %v, want %v", i, got, w)
		}
	}
	if got := string(Bytes(slice.Bases())); got != want {
		t.Errorf("slice.Bases() = %q, want %q", got, want)
	}
}

func TestSequenceExtendFrontOrderAndConsolidation(t *testing.T) {
	s := New(mustParse(t, "PPPP"))
	captured := s.Slice(0, 2) // "PP", small, will be coalesced on extend

	chunks := []FrontChunk{
		Owned(mustParse(t, "II")),
		FromSlice(captured),
		Owned(mustParse(t, "CC")),
	}
	s.ExtendFront(chunks)
	if err := s.CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants: %v", err)
	}
	want := "II" + "PP" + "CC" + "PPPP"
	got := make([]Base, s.Length())
	for i := range got {
		got[i] = s.Index(i)
	}
	if string(Bytes(got)) != want {
		t.Errorf("sequence after ExtendFront = %q, want %q", string(Bytes(got)), want)
	}
}

func TestSequenceExtendFrontLargeSliceIsNotCopied(t *testing.T) {
	big := make([]byte, consolidateThreshold+10)
	for i := range big {
		big[i] = "ICFP"[i%4]
	}
	s := New(mustParse(t, string(big)))
	captured := s.Slice(0, len(big)) // large, must be referenced not copied

	chunksBefore := len(s.arena.chunks)
	s.ExtendFront([]FrontChunk{FromSlice(captured)})
	if s.Length() != 2*len(big) {
		t.Fatalf("Length() = %d, want %d", s.Length(), 2*len(big))
	}
	if got := len(s.arena.chunks); got != chunksBefore {
		t.Errorf("ExtendFront added %d arena chunk(s) for a large slice, want 0", got-chunksBefore)
	}
	if err := s.CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants: %v", err)
	}
}

func TestArenaFingerprintStableAndSensitive(t *testing.T) {
	a := New(mustParse(t, "ICFP"))
	b := New(mustParse(t, "ICFP"))
	if a.ArenaFingerprint() != b.ArenaFingerprint() {
		t.Errorf("two sequences built from identical bases fingerprinted differently")
	}
	c := New(mustParse(t, "ICFC"))
	if a.ArenaFingerprint() == c.ArenaFingerprint() {
		t.Errorf("fingerprint did not change for different content")
	}
}

func TestWindowSearch(t *testing.T) {
	s := New(mustParse(t, "IICCFFPP"))
	w := s.Window(0)
	lit := mustParse(t, "FF")
	for !w.IsMatch(lit) {
		w.Next()
	}
	if w.Offset() != 4 {
		t.Errorf("Offset() = %d, want 4", w.Offset())
	}
}

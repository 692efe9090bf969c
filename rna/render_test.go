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
package rna

import (
	"testing"

	"github.com/grailbio/endo/dna"
)

func mustBases(t *testing.T, s string) []dna.Base {
	t.Helper()
	bs, err := dna.Parse([]byte(s))
	if err != nil {
		t.Fatalf("dna.Parse(%q): %v", s, err)
	}
	return bs
}

func TestRenderFillWholeCanvas(t *testing.T) {
	// add red, then fill at the origin: with no alpha sample present the
	// bucket defaults to fully opaque (spec §4.6), so this should flood the
	// whole (initially transparent) canvas with opaque red.
	rna := mustBases(t, "PIPIIIP"+"PIIPIIP")
	bmp := Render(rna)
	want := Red.toPixel()
	if got := bmp.Get(Position{X: 0, Y: 0}); got != want {
		t.Errorf("origin = %+v, want %+v", got, want)
	}
	if got := bmp.Get(Position{X: 599, Y: 599}); got != want {
		t.Errorf("far corner = %+v, want %+v (fill did not reach whole canvas)", got, want)
	}
}

func TestRenderMoveMarkAndLine(t *testing.T) {
	// Turtle starts at (0,0) facing Right. Mark the origin, step it 5
	// times, then draw a line from the new position back to the mark.
	move := "PIIIIIP"
	rna := mustBases(t, "PIPIIIC" /* add black */ +"PCCIFFP" /* mark at (0,0) */ +move+move+move+move+move+"PFFICCP" /* line */)
	bmp := Render(rna)
	want := Black.toPixel()
	for x := 0; x <= 5; x++ {
		if got := bmp.Get(Position{X: x, Y: 0}); got != want {
			t.Errorf("line missing pixel at x=%d: %+v", x, got)
		}
	}
}

func TestRenderUnrecognizedOpcodeIsNoOp(t *testing.T) {
	rna := mustBases(t, "PPPPPPP"+"PIPIIIP"+"PIIPIIP")
	bmp := Render(rna)
	if got := bmp.Get(Position{X: 0, Y: 0}); got != Red.toPixel() {
		t.Errorf("leading garbage opcode corrupted state: %+v", got)
	}
}

func TestRenderTrailingRemainderDropped(t *testing.T) {
	rna := mustBases(t, "PIPIIIP"+"PIIPIIP"+"III")
	bmp := Render(rna)
	if got := bmp.Get(Position{X: 0, Y: 0}); got != Red.toPixel() {
		t.Errorf("trailing short remainder disrupted rendering: %+v", got)
	}
}

func TestRenderPushCapAtTen(t *testing.T) {
	push := "PCCPFFP"
	s := ""
	for i := 0; i < 20; i++ {
		s += push
	}
	rna := mustBases(t, s)
	st := NewBuildState()
	n := len(rna) / 7
	for i := 0; i < n; i++ {
		var op [7]dna.Base
		copy(op[:], rna[i*7:i*7+7])
		st.Step(op)
	}
	if len(st.Layers) != maxLayers {
		t.Errorf("stack depth = %d, want %d (cap not enforced)", len(st.Layers), maxLayers)
	}
}

func TestRenderPopComposeRequiresTwoLayers(t *testing.T) {
	pop := "PFFPCCP"
	rna := mustBases(t, pop)
	bmp := Render(rna)
	if bmp == nil {
		t.Fatalf("Render returned nil")
	}
	if got := bmp.Get(Position{X: 0, Y: 0}); got != (Pixel{}) {
		t.Errorf("pop-compose with single layer mutated the canvas: %+v", got)
	}
}

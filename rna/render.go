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
	"github.com/grailbio/endo/dna"
	"github.com/pkg/errors"
)

// maxLayers is the hard cap on the bitmap stack depth (spec §4.8): a push
// past this depth is silently ignored.
const maxLayers = 10

// BuildState holds everything the renderer opcode table mutates: the color
// bucket, turtle cursor, drop mark, and the stack of bitmaps being built
// (spec §3, §4.8). The bottom of the stack (index 0) is the final picture.
type BuildState struct {
	Bucket Bucket
	Pos    Position
	Mark   Position
	Dir    Direction
	Layers []*Bitmap
}

// NewBuildState returns the initial renderer state: one transparent bitmap
// on the stack, cursor at the origin facing right.
func NewBuildState() *BuildState {
	return &BuildState{Dir: Right, Layers: []*Bitmap{New()}}
}

func (st *BuildState) top() *Bitmap { return st.Layers[len(st.Layers)-1] }

func bases7(s string) [7]dna.Base {
	bs, err := dna.Parse([]byte(s))
	if err != nil || len(bs) != 7 {
		panic("rna: malformed opcode literal " + s)
	}
	var out [7]dna.Base
	copy(out[:], bs)
	return out
}

func addSample(s Sample) func(*BuildState) {
	return func(st *BuildState) { st.Bucket.Add(s) }
}

var opcodeTable = map[[7]dna.Base]func(*BuildState){
	bases7("PIPIIIC"): addSample(Black),
	bases7("PIPIIIP"): addSample(Red),
	bases7("PIPIICC"): addSample(Green),
	bases7("PIPIICF"): addSample(Yellow),
	bases7("PIPIICP"): addSample(Blue),
	bases7("PIPIIFC"): addSample(Magenta),
	bases7("PIPIIFF"): addSample(Cyan),
	bases7("PIPIIPC"): addSample(White),
	bases7("PIPIIPF"): addSample(Transparent),
	bases7("PIPIIPP"): addSample(Opaque),
	bases7("PIIPICP"): func(st *BuildState) { st.Bucket.Clear() },
	bases7("PIIIIIP"): func(st *BuildState) { st.Pos = st.Dir.Step(st.Pos) },
	bases7("PCCCCCP"): func(st *BuildState) { st.Dir = st.Dir.TurnLeft() },
	bases7("PFFFFFP"): func(st *BuildState) { st.Dir = st.Dir.TurnRight() },
	bases7("PCCIFFP"): func(st *BuildState) { st.Mark = st.Pos },
	bases7("PFFICCP"): func(st *BuildState) { st.top().DrawLine(st.Pos, st.Mark, st.Bucket.Current()) },
	bases7("PIIPIIP"): func(st *BuildState) { st.top().Fill(st.Pos, st.Bucket.Current()) },
	bases7("PCCPFFP"): func(st *BuildState) {
		if len(st.Layers) < maxLayers {
			st.Layers = append(st.Layers, New())
		}
	},
	bases7("PFFPCCP"): func(st *BuildState) {
		if len(st.Layers) > 1 {
			over := st.Layers[len(st.Layers)-1]
			st.Layers = st.Layers[:len(st.Layers)-1]
			st.top().ComposeOver(over)
		}
	},
	bases7("PFFICCF"): func(st *BuildState) {
		if len(st.Layers) > 1 {
			mask := st.Layers[len(st.Layers)-1]
			st.Layers = st.Layers[:len(st.Layers)-1]
			st.top().ClipWith(mask)
		}
	},
}

// Step applies a single 7-base opcode to st. Unrecognized opcodes are a
// documented no-op (spec §4.8).
func (st *BuildState) Step(op [7]dna.Base) {
	if fn, ok := opcodeTable[op]; ok {
		fn(st)
	}
}

// Render drives a BuildState through an RNA stream of raw bases, consuming
// it 7 bases at a time and discarding any trailing remainder shorter than
// 7 (spec §4.8, §6). It returns the final picture: the bitmap at the
// bottom of the layer stack.
func Render(bases []dna.Base) *Bitmap {
	st := NewBuildState()
	n := len(bases) / 7
	for i := 0; i < n; i++ {
		var op [7]dna.Base
		copy(op[:], bases[i*7:i*7+7])
		st.Step(op)
	}
	return st.Layers[0]
}

// Build decodes rnaBytes as ASCII bases and renders them, per the "build"
// CLI subcommand of spec §6.
func Build(rnaBytes []byte) (*Bitmap, error) {
	bases, err := dna.Parse(rnaBytes)
	if err != nil {
		return nil, errors.Wrap(err, "rna.Build: decoding RNA stream")
	}
	return Render(bases), nil
}

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

// Window is a forward-only scanner over a Sequence, used by the pattern
// matcher's search item (spec §4.4) to test successive candidate positions
// for a literal run without re-walking the live view from the sequence
// head on every attempt.
type Window struct {
	seq    *Sequence
	node   *node
	within int
	offset int
}

// IsMatch reports whether the next len(literal) bases starting at the
// window's current cursor equal literal, without advancing the cursor. It
// returns false if fewer than len(literal) bases remain.
func (w *Window) IsMatch(literal []Base) bool {
	n, within := w.node, w.within
	for _, want := range literal {
		if n == nil {
			return false
		}
		if n.slice.base(w.seq.arena, within) != want {
			return false
		}
		within++
		if within == n.slice.length {
			n = n.next
			within = 0
		}
	}
	return true
}

// Next advances the cursor by one base.
func (w *Window) Next() {
	if w.node == nil {
		return
	}
	w.within++
	w.offset++
	if w.within == w.node.slice.length {
		w.node = w.node.next
		w.within = 0
	}
}

// Offset returns the number of bases the window has advanced since it was
// created.
func (w *Window) Offset() int { return w.offset }

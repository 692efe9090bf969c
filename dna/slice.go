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

// Slice is an immutable snapshot of a contiguous region of a Sequence at a
// point in time, expressed as its own ordered list of storage slices. It is
// how captured groups are represented: a template reference to Slice never
// copies bases, and remains valid after the owning Sequence is further
// mutated, because it only references append-only arena storage (spec §3,
// §4.1, §9).
type Slice struct {
	arena  *arena
	parts  []storageSlice
	length int
}

// Length returns the number of bases in the slice.
func (s Slice) Length() int { return s.length }

// At returns the base at offset i within the slice.
func (s Slice) At(i int) Base {
	for _, part := range s.parts {
		if i < part.length {
			return part.base(s.arena, i)
		}
		i -= part.length
	}
	panic("dna: Slice.At index out of range")
}

// Bases materializes the full contents of the slice as an owned []Base. Used
// only when a template reference must be protected/quoted (protect-level >
// 0 forces a copy because quoting is a per-base transform); a protect-level
// 0 reference is spliced back in directly via FromSlice without calling
// this (spec §4.4).
func (s Slice) Bases() []Base {
	out := make([]Base, 0, s.length)
	for _, part := range s.parts {
		for i := 0; i < part.length; i++ {
			out = append(out, part.base(s.arena, i))
		}
	}
	return out
}

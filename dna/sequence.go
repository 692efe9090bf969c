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

import (
	"github.com/grailbio/base/log"
	"github.com/minio/highwayhash"
)

// fingerprintKey is a fixed, zero key: ArenaFingerprint is a debugging aid
// comparing an arena's own content across two points in time, not a
// cryptographic or cross-process value, so a per-run random key would only
// add noise.
var fingerprintKey [highwayhash.Size]byte

// consolidateThreshold is the size, in bases, below which contiguous pieces
// prepended by ExtendFront are coalesced into a single new owned chunk
// rather than kept as separate live-view entries. Without this, a rewrite
// rule that prepends many small captured groups (a common pattern in real
// DNA programs) would degenerate the live view to millions of entries; see
// spec §9 and §4.1.
const consolidateThreshold = 4096

// arena is the append-only backing store for a Sequence's storage chunks.
// It is shared by pointer between a Sequence and every Slice it has ever
// produced, so that a Slice captured before a subsequent ExtendFront call
// remains valid: chunks already appended are never mutated or removed.
type arena struct {
	chunks [][]Base
}

func (a *arena) add(bases []Base) int {
	a.chunks = append(a.chunks, bases)
	return len(a.chunks) - 1
}

func (a *arena) base(chunk, offset int) Base {
	return a.chunks[chunk][offset]
}

// fingerprint hashes a single chunk's contents; ArenaFingerprint combines
// these per-chunk hashes into one value for the whole arena.
func (a *arena) fingerprint(chunk int) [highwayhash.Size]byte {
	return highwayhash.Sum(Bytes(a.chunks[chunk]), fingerprintKey[:])
}

// storageSlice is a reference into a contiguous run of one storage chunk.
type storageSlice struct {
	chunk  int
	start  int
	length int
}

func (s storageSlice) base(a *arena, i int) Base {
	return a.base(s.chunk, s.start+i)
}

// node is one entry of the live view, a singly linked list rooted at
// Sequence.head. Only front operations are ever required (pop, truncate,
// extend, and forward scans from the head), so a singly linked list
// suffices; see spec §4.1 and §9.
type node struct {
	slice storageSlice
	next  *node
}

// Sequence is the rewriter's mutable working set: a chunked, append-only
// rope supporting O(1)-amortized front truncation, mixed owned/referenced
// front extension, random indexing, and sliding-window search, per spec
// §3/§4.1.
type Sequence struct {
	arena  *arena
	head   *node
	length int
}

// New builds a Sequence whose initial content is bases. The slice is not
// retained; its contents are copied into the first storage chunk.
func New(bases []Base) *Sequence {
	s := &Sequence{arena: &arena{}}
	if len(bases) > 0 {
		owned := make([]Base, len(bases))
		copy(owned, bases)
		idx := s.arena.add(owned)
		s.head = &node{slice: storageSlice{chunk: idx, start: 0, length: len(owned)}}
	}
	s.length = len(bases)
	return s
}

// Length returns the number of bases currently in the sequence.
func (s *Sequence) Length() int { return s.length }

// IsEmpty reports whether the sequence has no bases.
func (s *Sequence) IsEmpty() bool { return s.length == 0 }

// locate returns the node containing position i and the offset within that
// node's slice, by scanning from the head. i must be in [0, length).
func (s *Sequence) locate(i int) (*node, int) {
	n := s.head
	for n != nil {
		if i < n.slice.length {
			return n, i
		}
		i -= n.slice.length
		n = n.next
	}
	return nil, 0
}

// Index returns the base at position i, panicking if i is out of range;
// callers (the matcher) never call this out of range under well-formed
// rewrite programs.
func (s *Sequence) Index(i int) Base {
	if i < 0 || i >= s.length {
		log.Panicf("dna: Index(%d) out of range, length %d", i, s.length)
	}
	n, off := s.locate(i)
	return n.slice.base(s.arena, off)
}

// PopFront removes and returns the first base. It panics if the sequence is
// empty.
func (s *Sequence) PopFront() Base {
	if s.head == nil {
		log.Panicf("dna: PopFront on empty sequence")
	}
	b := s.head.slice.base(s.arena, 0)
	s.head.slice.start++
	s.head.slice.length--
	s.length--
	if s.head.slice.length == 0 {
		s.head = s.head.next
	}
	return b
}

// TruncateFront discards the first n bases. If n exceeds the current
// length, it truncates to empty rather than failing; the matcher guarantees
// n <= Length() in practice (spec §4.1).
func (s *Sequence) TruncateFront(n int) {
	if n <= 0 {
		return
	}
	if n >= s.length {
		s.head = nil
		s.length = 0
		return
	}
	remaining := n
	n2 := s.head
	for n2 != nil && n2.slice.length <= remaining {
		remaining -= n2.slice.length
		n2 = n2.next
	}
	if n2 != nil && remaining > 0 {
		n2.slice.start += remaining
		n2.slice.length -= remaining
	}
	s.head = n2
	s.length -= n
}

// Slice returns an immutable snapshot of the region [start, end) of the
// current sequence, expressed as references into the append-only arena. It
// does not copy any bases, and remains valid across subsequent mutations of
// s (pop, truncate, extend) because the arena is append-only.
func (s *Sequence) Slice(start, end int) Slice {
	if end < start {
		end = start
	}
	want := end - start
	out := Slice{arena: s.arena, length: want}
	if want == 0 {
		return out
	}
	n, off := s.locate(start)
	for want > 0 && n != nil {
		avail := n.slice.length - off
		take := avail
		if take > want {
			take = want
		}
		out.parts = append(out.parts, storageSlice{
			chunk:  n.slice.chunk,
			start:  n.slice.start + off,
			length: take,
		})
		want -= take
		off = 0
		n = n.next
	}
	return out
}

// FrontChunkKind distinguishes the two variants ExtendFront accepts.
type FrontChunkKind uint8

const (
	// OwnedChunkKind marks a FrontChunk holding freshly produced bases (for
	// example literal template bytes, or a quoted/materialized capture).
	OwnedChunkKind FrontChunkKind = iota
	// SliceChunkKind marks a FrontChunk that refers to an existing Slice,
	// to be spliced in without copying.
	SliceChunkKind
)

// FrontChunk is one element of the ordered list passed to ExtendFront.
type FrontChunk struct {
	Kind  FrontChunkKind
	Owned []Base
	Slice Slice
}

// Owned builds a FrontChunk holding freshly produced, not-yet-stored bases.
func Owned(b []Base) FrontChunk { return FrontChunk{Kind: OwnedChunkKind, Owned: b} }

// FromSlice builds a FrontChunk that references an existing captured Slice.
func FromSlice(s Slice) FrontChunk { return FrontChunk{Kind: SliceChunkKind, Slice: s} }

// ExtendFront prepends chunks to the sequence, in order, so that the first
// byte of chunks[0] becomes the new head of the sequence. Owned chunks are
// copied into a new storage chunk; Slice chunks are spliced in by
// reference, except that contiguous pieces smaller than
// consolidateThreshold are coalesced (copied) into a single new chunk, to
// bound the number of live-view entries (spec §4.1, §9).
func (s *Sequence) ExtendFront(chunks []FrontChunk) {
	if len(chunks) == 0 {
		return
	}
	var headNode, tailNode *node
	appendNode := func(n *node) {
		if headNode == nil {
			headNode = n
			tailNode = n
		} else {
			tailNode.next = n
			tailNode = n
		}
	}

	var pending []Base
	flushPending := func() {
		if len(pending) == 0 {
			return
		}
		idx := s.arena.add(pending)
		appendNode(&node{slice: storageSlice{chunk: idx, start: 0, length: len(pending)}})
		pending = nil
	}

	addLarge := func(part storageSlice) {
		flushPending()
		appendNode(&node{slice: part})
	}
	addSmall := func(a *arena, part storageSlice) {
		for i := 0; i < part.length; i++ {
			pending = append(pending, part.base(a, i))
		}
	}

	added := 0
	for _, c := range chunks {
		switch c.Kind {
		case OwnedChunkKind:
			if len(c.Owned) == 0 {
				continue
			}
			added += len(c.Owned)
			if len(c.Owned) >= consolidateThreshold {
				flushPending()
				idx := s.arena.add(append([]Base(nil), c.Owned...))
				appendNode(&node{slice: storageSlice{chunk: idx, start: 0, length: len(c.Owned)}})
			} else {
				pending = append(pending, c.Owned...)
			}
		case SliceChunkKind:
			added += c.Slice.length
			for _, part := range c.Slice.parts {
				if part.length >= consolidateThreshold {
					addLarge(part)
				} else {
					addSmall(c.Slice.arena, part)
				}
			}
		}
	}
	flushPending()

	if headNode == nil {
		return
	}
	tailNode.next = s.head
	s.head = headNode
	s.length += added
}

// Window returns a sliding-window scanner starting at position start, used
// by the pattern matcher's search item to test width-base literal runs
// without rescanning from the sequence head on every candidate position.
func (s *Sequence) Window(start int) *Window {
	w := &Window{seq: s}
	if start < s.length {
		w.node, w.within = s.locate(start)
	}
	return w
}

// ArenaFingerprint returns a combined hash of every chunk in the sequence's
// backing arena, in append order. It is a debugging aid (spec §8) for
// confirming that two Sequences built by different paths (e.g. a serialized
// program replayed twice) produced bit-identical storage, without requiring
// the caller to compare chunk contents directly.
func (s *Sequence) ArenaFingerprint() [highwayhash.Size]byte {
	var buf []byte
	for i := range s.arena.chunks {
		fp := s.arena.fingerprint(i)
		buf = append(buf, fp[:]...)
	}
	return highwayhash.Sum(buf, fingerprintKey[:])
}

// CheckInvariants verifies that the sum of live-view slice lengths equals
// the reported length and that every slice references an in-range chunk
// region. It is a debug aid (spec §8), not part of the hot path.
func (s *Sequence) CheckInvariants() error {
	sum := 0
	for n := s.head; n != nil; n = n.next {
		if n.slice.length <= 0 {
			return invariantErrorf("zero-or-negative-length live view slice")
		}
		if n.slice.chunk < 0 || n.slice.chunk >= len(s.arena.chunks) {
			return invariantErrorf("slice references out-of-range chunk %d", n.slice.chunk)
		}
		chunkLen := len(s.arena.chunks[n.slice.chunk])
		if n.slice.start < 0 || n.slice.start+n.slice.length > chunkLen {
			return invariantErrorf("slice [%d,%d) out of range for chunk of length %d",
				n.slice.start, n.slice.start+n.slice.length, chunkLen)
		}
		sum += n.slice.length
	}
	if sum != s.length {
		return invariantErrorf("live view length %d does not match reported length %d", sum, s.length)
	}
	return nil
}

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
	"image"

	"github.com/dgryski/go-farm"
	"github.com/grailbio/base/bitset"
)

// GridSize is the fixed width and height of a Bitmap (spec §3).
const GridSize = 600

// bitsPerWord is base/bitset's word size, used to size the visited set's
// word array.
const bitsPerWord = bitset.BitsPerWord

// Position is a coordinate in 0..599 on both axes; all arithmetic that
// produces a Position wraps modulo GridSize (spec §3).
type Position struct {
	X, Y int
}

func wrapCoord(v int) int {
	v %= GridSize
	if v < 0 {
		v += GridSize
	}
	return v
}

func wrap(p Position) Position {
	return Position{X: wrapCoord(p.X), Y: wrapCoord(p.Y)}
}

// Direction is the turtle cursor's heading (spec §3).
type Direction uint8

const (
	Up Direction = iota
	Right
	Down
	Left
)

var leftTurn = map[Direction]Direction{Up: Left, Left: Down, Down: Right, Right: Up}
var rightTurn = map[Direction]Direction{Up: Right, Right: Down, Down: Left, Left: Up}

// TurnLeft rotates d one step around the Up<->Left<->Down<->Right<->Up
// cycle (spec §4.8).
func (d Direction) TurnLeft() Direction { return leftTurn[d] }

// TurnRight rotates d one step the other way around the same cycle.
func (d Direction) TurnRight() Direction { return rightTurn[d] }

// Step returns the position one move past p in direction d.
func (d Direction) Step(p Position) Position {
	switch d {
	case Up:
		p.Y--
	case Down:
		p.Y++
	case Left:
		p.X--
	case Right:
		p.X++
	}
	return wrap(p)
}

// Bitmap is a 600x600 grid of premultiplied RGBA pixels, row-major (spec
// §3, §4.7). The zero value (via New) is fully transparent.
type Bitmap struct {
	pix []Pixel
}

// New returns a fully transparent Bitmap.
func New() *Bitmap {
	return &Bitmap{pix: make([]Pixel, GridSize*GridSize)}
}

func index(p Position) int { return p.Y*GridSize + p.X }

// Get returns the pixel at p (wrapping p into range first).
func (b *Bitmap) Get(p Position) Pixel {
	return b.pix[index(wrap(p))]
}

// Set writes the pixel at p (wrapping p into range first).
func (b *Bitmap) Set(p Position, px Pixel) {
	b.pix[index(wrap(p))] = px
}

func floorDiv(a, d int) int {
	q := a / d
	if r := a % d; r != 0 && (r < 0) != (d < 0) {
		q--
	}
	return q
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// DrawLine rasterizes a line from p0 to p1 and paints px along it,
// including the endpoints, per the deterministic fixed-point rule of spec
// §4.7. When p0 == p1, only the final pixel is painted.
func (b *Bitmap) DrawLine(p0, p1 Position, px Pixel) {
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	d := abs(dx)
	if abs(dy) > d {
		d = abs(dy)
	}
	if d == 0 {
		b.Set(p1, px)
		return
	}
	c := 0
	if dx*dy <= 0 {
		c = 1
	}
	x := p0.X*d + (d-c)/2
	y := p0.Y*d + (d-c)/2
	for i := 0; i < d; i++ {
		b.Set(Position{X: floorDiv(x, d), Y: floorDiv(y, d)}, px)
		x += dx
		y += dy
	}
	b.Set(p1, px)
}

// visited is a fixed-size bitset over the GridSize*GridSize cells, used by
// Fill to guarantee each cell is enqueued at most once. It sets bits by
// manipulating word storage directly and delegates reads to
// base/bitset.Test.
type visited struct {
	words []uintptr
}

func newVisited() *visited {
	n := (GridSize*GridSize + bitsPerWord - 1) / bitsPerWord
	return &visited{words: make([]uintptr, n)}
}

func (v *visited) test(idx int) bool {
	return bitset.Test(v.words, idx)
}

func (v *visited) set(idx int) {
	word := idx / bitsPerWord
	bit := uint(idx % bitsPerWord)
	v.words[word] |= uintptr(1) << bit
}

// Fill performs a 4-connected flood fill from seed, replacing every
// reachable cell of the seed's original color with px, per spec §4.7. It
// reads the target color once and does nothing if it already equals px
// (also the guard against infinite recursion when old == new). A visited
// bitset, not a re-read of the (already repainted) pixel, is what prevents
// a cell from being scheduled twice.
//
// Unlike cursor movement, fill's neighbor enumeration does not wrap across
// the canvas edge: a neighbor outside [0,599] on either axis is simply
// excluded, not carried to the opposite edge.
func (b *Bitmap) Fill(seed Position, px Pixel) {
	seed = wrap(seed)
	target := b.Get(seed)
	if target == px {
		return
	}
	v := newVisited()
	queue := []Position{seed}
	v.set(index(seed))
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		b.Set(p, px)
		for _, n := range fillNeighbors(p) {
			ni := index(n)
			if v.test(ni) {
				continue
			}
			if b.Get(n) == target {
				v.set(ni)
				queue = append(queue, n)
			}
		}
	}
}

// fillNeighbors returns p's in-bounds 4-connected neighbors, dropping any
// that would fall outside [0,599] on either axis rather than wrapping.
func fillNeighbors(p Position) []Position {
	var ns []Position
	if p.X > 0 {
		ns = append(ns, Position{X: p.X - 1, Y: p.Y})
	}
	if p.X < GridSize-1 {
		ns = append(ns, Position{X: p.X + 1, Y: p.Y})
	}
	if p.Y > 0 {
		ns = append(ns, Position{X: p.X, Y: p.Y - 1})
	}
	if p.Y < GridSize-1 {
		ns = append(ns, Position{X: p.X, Y: p.Y + 1})
	}
	return ns
}

func composeOver(over, self Pixel) Pixel {
	inv := 255 - int(over.A)
	return Pixel{
		R: uint8(int(over.R) + int(self.R)*inv/255),
		G: uint8(int(over.G) + int(self.G)*inv/255),
		B: uint8(int(over.B) + int(self.B)*inv/255),
		A: uint8(int(over.A) + int(self.A)*inv/255),
	}
}

// ComposeOver composes over on top of b using Porter-Duff "over" (spec
// §4.7), mutating b to hold the result.
func (b *Bitmap) ComposeOver(over *Bitmap) {
	for i, self := range b.pix {
		b.pix[i] = composeOver(over.pix[i], self)
	}
}

func clip(p Pixel, maskA uint8) Pixel {
	m := int(maskA)
	return Pixel{
		R: uint8(int(p.R) * m / 255),
		G: uint8(int(p.G) * m / 255),
		B: uint8(int(p.B) * m / 255),
		A: uint8(int(p.A) * m / 255),
	}
}

// ClipWith clips b's channels by mask's alpha channel (spec §4.7).
func (b *Bitmap) ClipWith(mask *Bitmap) {
	for i, self := range b.pix {
		b.pix[i] = clip(self, mask.pix[i].A)
	}
}

// ToImage converts b to a standard library image.RGBA, ready for
// image/png.Encode (spec §6: PNG serialization is delegated entirely to the
// standard library at the CLI boundary).
func (b *Bitmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, GridSize, GridSize))
	for i, p := range b.pix {
		o := i * 4
		img.Pix[o+0] = p.R
		img.Pix[o+1] = p.G
		img.Pix[o+2] = p.B
		img.Pix[o+3] = p.A
	}
	return img
}

// Checksum computes a content hash over the pixel grid, used by the build
// CLI subcommand's -print-checksum flag.
func (b *Bitmap) Checksum() uint64 {
	buf := make([]byte, len(b.pix)*4)
	for i, p := range b.pix {
		o := i * 4
		buf[o] = p.R
		buf[o+1] = p.G
		buf[o+2] = p.B
		buf[o+3] = p.A
	}
	return farm.Hash64(buf)
}

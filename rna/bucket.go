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

// Bucket is the renderer's multiset of color and transparency samples,
// reduced on demand to a single premultiplied Pixel (spec §3, §4.6). The
// computed pixel is memoized and invalidated on every mutation: draw-line
// and fill call Current() in a tight loop while the bucket is unchanged, so
// recomputing on every call would be wasteful.
type Bucket struct {
	samples []Sample
	cached  *Pixel
}

// Add appends a sample and invalidates the memoized pixel.
func (b *Bucket) Add(s Sample) {
	b.samples = append(b.samples, s)
	b.cached = nil
}

// Clear empties the bucket and invalidates the memoized pixel.
func (b *Bucket) Clear() {
	b.samples = nil
	b.cached = nil
}

// Current returns the memoized pixel, computing it first if necessary.
func (b *Bucket) Current() Pixel {
	if b.cached != nil {
		return *b.cached
	}
	p := b.compute()
	b.cached = &p
	return p
}

// compute implements the averaging rule of spec §4.6: average all RGB
// samples channel-wise (default 0 with none present), average all
// transparency samples (default 255 with none present), then premultiply.
// Summation happens before any division, so the result is independent of
// the order samples were added in.
func (b *Bucket) compute() Pixel {
	var sumR, sumG, sumB, nRGB int
	var sumA, nA int
	for _, s := range b.samples {
		switch s.Kind {
		case RGBSample:
			sumR += int(s.R)
			sumG += int(s.G)
			sumB += int(s.B)
			nRGB++
		case AlphaSample:
			sumA += int(s.A)
			nA++
		}
	}
	avgR, avgG, avgB := 0, 0, 0
	if nRGB > 0 {
		avgR = sumR / nRGB
		avgG = sumG / nRGB
		avgB = sumB / nRGB
	}
	avgA := 255
	if nA > 0 {
		avgA = sumA / nA
	}
	return Pixel{
		R: uint8(avgR * avgA / 255),
		G: uint8(avgG * avgA / 255),
		B: uint8(avgB * avgA / 255),
		A: uint8(avgA),
	}
}

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
// Package rna implements the RNA renderer: a deterministic drawing virtual
// machine that decodes 7-base opcodes into operations against a color
// bucket, a turtle-style cursor, and a stack of 600x600 premultiplied RGBA
// bitmaps (spec §4.6-4.8).
package rna

// Pixel is a premultiplied RGBA color, as produced by Bucket.Current and
// stored in a Bitmap (spec §3).
type Pixel struct {
	R, G, B, A uint8
}

// SampleKind discriminates the two Sample variants (spec §3).
type SampleKind uint8

const (
	// RGBSample is an opaque color contribution to a Bucket.
	RGBSample SampleKind = iota
	// AlphaSample is a transparency contribution to a Bucket.
	AlphaSample
)

// Sample is one entry added to a Bucket: either an opaque RGB color or a
// transparency value (spec §3).
type Sample struct {
	Kind    SampleKind
	R, G, B uint8 // valid when Kind == RGBSample
	A       uint8 // valid when Kind == AlphaSample
}

// RGB builds an opaque color Sample.
func RGB(r, g, b uint8) Sample { return Sample{Kind: RGBSample, R: r, G: g, B: b} }

// Alpha builds a transparency Sample.
func Alpha(a uint8) Sample { return Sample{Kind: AlphaSample, A: a} }

// The eight named colors and two transparency values, with the exact RGB
// constants given in spec §4.8.
var (
	Black   = RGB(0, 0, 0)
	Red     = RGB(255, 0, 0)
	Green   = RGB(0, 255, 0)
	Yellow  = RGB(255, 255, 0)
	Blue    = RGB(0, 0, 255)
	Magenta = RGB(255, 0, 255)
	Cyan    = RGB(0, 255, 255)
	White   = RGB(255, 255, 255)

	Transparent = Alpha(0)
	Opaque      = Alpha(255)
)

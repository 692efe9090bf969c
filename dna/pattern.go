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

// PatternItemKind discriminates the five pattern item variants (spec §3).
type PatternItemKind int

const (
	// PatLiteral matches a single base.
	PatLiteral PatternItemKind = iota
	// PatSkip advances the cursor by N unconditionally.
	PatSkip
	// PatSearch advances the cursor to just past the next occurrence of a
	// literal base run.
	PatSearch
	// PatGroupOpen marks the start of a capture group.
	PatGroupOpen
	// PatGroupClose marks the end of a capture group.
	PatGroupClose
)

// PatternItem is one element of a parsed Pattern.
type PatternItem struct {
	Kind   PatternItemKind
	Base   Base   // valid when Kind == PatLiteral
	N      int    // valid when Kind == PatSkip
	Consts []Base // valid when Kind == PatSearch
}

// Pattern is a parsed rewrite pattern: an ordered list of items to match
// against the front of a Sequence (spec §3).
type Pattern []PatternItem

// ParsePattern consumes a pattern from the front of seq, per the encoding
// table in spec §4.2, forwarding any "III" emit escapes to out. It returns
// ok == false if seq is exhausted before a terminating IIC/IIF at depth 0
// is reached (early-finish, spec §7); any RNA already drained by a partial
// "III" escape is preserved in out regardless.
func ParsePattern(seq *Sequence, out *RNA) (Pattern, bool) {
	var items Pattern
	depth := 0
	for {
		b1, ok := popBase(seq)
		if !ok {
			return nil, false
		}
		switch b1 {
		case C:
			items = append(items, PatternItem{Kind: PatLiteral, Base: I})
		case F:
			items = append(items, PatternItem{Kind: PatLiteral, Base: C})
		case P:
			items = append(items, PatternItem{Kind: PatLiteral, Base: F})
		case I:
			b2, ok := popBase(seq)
			if !ok {
				return nil, false
			}
			switch b2 {
			case C:
				items = append(items, PatternItem{Kind: PatLiteral, Base: P})
			case P:
				n, ok := parseNat(seq)
				if !ok {
					return nil, false
				}
				items = append(items, PatternItem{Kind: PatSkip, N: n})
			case F:
				if _, ok := popBase(seq); !ok {
					return nil, false
				}
				consts := parseConsts(seq)
				items = append(items, PatternItem{Kind: PatSearch, Consts: consts})
			case I:
				b3, ok := popBase(seq)
				if !ok {
					return nil, false
				}
				switch b3 {
				case P:
					depth++
					items = append(items, PatternItem{Kind: PatGroupOpen})
				case C, F:
					if depth == 0 {
						return items, true
					}
					depth--
					items = append(items, PatternItem{Kind: PatGroupClose})
				case I:
					if !emitSeven(seq, out) {
						return nil, false
					}
				}
			}
		}
	}
}

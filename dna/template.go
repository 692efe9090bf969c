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

// TemplateItemKind discriminates the three template item variants (spec §3).
type TemplateItemKind int

const (
	// TplLiteral emits a single base.
	TplLiteral TemplateItemKind = iota
	// TplRef expands a captured group, quoted Protect times.
	TplRef
	// TplLength encodes the length of a captured group as a natural number.
	TplLength
)

// TemplateItem is one element of a parsed Template.
type TemplateItem struct {
	Kind    TemplateItemKind
	Base    Base // valid when Kind == TplLiteral
	Group   int  // valid when Kind == TplRef or TplLength
	Protect int  // valid when Kind == TplRef
}

// Template is a parsed rewrite template: an ordered list of items that
// produce the replacement spliced onto the front of a Sequence (spec §3).
type Template []TemplateItem

// ParseTemplate consumes a template from the front of seq, per the encoding
// table in spec §4.3, forwarding any "III" emit escapes to out. It returns
// ok == false on early-finish, analogous to ParsePattern.
func ParseTemplate(seq *Sequence, out *RNA) (Template, bool) {
	var items Template
	for {
		b1, ok := popBase(seq)
		if !ok {
			return nil, false
		}
		switch b1 {
		case C:
			items = append(items, TemplateItem{Kind: TplLiteral, Base: I})
		case F:
			items = append(items, TemplateItem{Kind: TplLiteral, Base: C})
		case P:
			items = append(items, TemplateItem{Kind: TplLiteral, Base: F})
		case I:
			b2, ok := popBase(seq)
			if !ok {
				return nil, false
			}
			switch b2 {
			case C:
				items = append(items, TemplateItem{Kind: TplLiteral, Base: P})
			case F, P:
				protect, ok := parseNat(seq)
				if !ok {
					return nil, false
				}
				group, ok := parseNat(seq)
				if !ok {
					return nil, false
				}
				items = append(items, TemplateItem{Kind: TplRef, Group: group, Protect: protect})
			case I:
				b3, ok := popBase(seq)
				if !ok {
					return nil, false
				}
				switch b3 {
				case C, F:
					return items, true
				case P:
					n, ok := parseNat(seq)
					if !ok {
						return nil, false
					}
					items = append(items, TemplateItem{Kind: TplLength, Group: n})
				case I:
					if !emitSeven(seq, out) {
						return nil, false
					}
				}
			}
		}
	}
}

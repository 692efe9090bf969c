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

// Match walks pat against the front of seq, per the algorithm in spec
// §4.4. On success it returns the number of bases matched and the ordered
// list of captured groups (empty groups have length 0, per spec's
// edge-case notes); it does not itself mutate seq. On failure, ok is
// false and the other return values are zero values: the caller must
// leave the sequence untouched (pattern non-match is not an error, spec
// §7).
func Match(seq *Sequence, pat Pattern) (matched int, env []Slice, ok bool) {
	i := 0
	var groupStarts []int
	for _, item := range pat {
		switch item.Kind {
		case PatLiteral:
			if i >= seq.Length() || seq.Index(i) != item.Base {
				return 0, nil, false
			}
			i++
		case PatSkip:
			i += item.N
			if i > seq.Length() {
				return 0, nil, false
			}
		case PatSearch:
			width := len(item.Consts)
			if width == 0 {
				// Empty search string matches at the cursor with no advance
				// (spec §4.4, §9).
				continue
			}
			w := seq.Window(i)
			for {
				if i+w.Offset()+width > seq.Length() {
					return 0, nil, false
				}
				if w.IsMatch(item.Consts) {
					i = i + w.Offset() + width
					break
				}
				w.Next()
			}
		case PatGroupOpen:
			groupStarts = append(groupStarts, i)
		case PatGroupClose:
			start := groupStarts[len(groupStarts)-1]
			groupStarts = groupStarts[:len(groupStarts)-1]
			env = append(env, seq.Slice(start, i))
		}
	}
	return i, env, true
}

// Expand evaluates tpl against the captured environment env, producing the
// ordered list of owned/referenced chunks to prepend to the sequence (spec
// §4.4). A Ref with protect-level 0 passes its captured group through by
// reference (FromSlice, no copy); protect-level > 0 forces materialization
// because quoting is a per-base transform. A group index outside env
// contributes nothing for Ref and length 0 for Length, matching the
// explicit default spec gives for Length.
func Expand(tpl Template, env []Slice) []FrontChunk {
	var chunks []FrontChunk
	var literal []Base
	flush := func() {
		if len(literal) > 0 {
			chunks = append(chunks, Owned(literal))
			literal = nil
		}
	}
	for _, item := range tpl {
		switch item.Kind {
		case TplLiteral:
			literal = append(literal, item.Base)
		case TplRef:
			flush()
			if item.Group >= len(env) {
				continue
			}
			g := env[item.Group]
			if item.Protect == 0 {
				chunks = append(chunks, FromSlice(g))
			} else {
				chunks = append(chunks, Owned(protect(item.Protect, g.Bases())))
			}
		case TplLength:
			flush()
			n := 0
			if item.Group < len(env) {
				n = env[item.Group].Length()
			}
			chunks = append(chunks, Owned(asNat(n)))
		}
	}
	flush()
	return chunks
}

// Replace runs the matcher and, on a successful match, truncates seq's
// front by the matched length and prepends the template expansion. It
// reports whether the pattern matched.
func Replace(seq *Sequence, pat Pattern, tpl Template) bool {
	matched, env, ok := Match(seq, pat)
	if !ok {
		return false
	}
	seq.TruncateFront(matched)
	seq.ExtendFront(Expand(tpl, env))
	return true
}

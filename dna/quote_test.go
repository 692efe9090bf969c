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
	"reflect"
	"testing"
)

func TestQuoteInjective(t *testing.T) {
	inputs := [][]Base{
		mustParse(t, "ICFP"),
		mustParse(t, "PPPP"),
		mustParse(t, "IIII"),
		mustParse(t, "CFPICFPI"),
	}
	seen := map[string][]Base{}
	for _, in := range inputs {
		q := quote(in)
		key := string(Bytes(q))
		if prior, ok := seen[key]; ok && !reflect.DeepEqual(prior, in) {
			t.Errorf("quote(%v) collides with quote(%v): both produce %q", in, prior, key)
		}
		seen[key] = in
	}
}

func TestProtectComposesWithQuote(t *testing.T) {
	v := mustParse(t, "ICFP")
	for l := 0; l < 4; l++ {
		got := protect(l+1, v)
		want := quote(protect(l, v))
		if !reflect.DeepEqual(got, want) {
			t.Errorf("protect(%d, v) = %v, want quote(protect(%d, v)) = %v", l+1, got, l, want)
		}
	}
}

func TestAsNatRoundTrip(t *testing.T) {
	for n := 0; n < (1 << 20); n += 997 { // sample across the required range
		encoded := asNat(n)
		seq := New(encoded)
		got, ok := parseNat(seq)
		if !ok {
			t.Fatalf("parseNat(asNat(%d)): unexpected early-finish", n)
		}
		if got != n {
			t.Errorf("parseNat(asNat(%d)) = %d", n, got)
		}
		if !seq.IsEmpty() {
			t.Errorf("asNat(%d) left trailing bases in sequence", n)
		}
	}
}

func TestAsNatZero(t *testing.T) {
	if got := asNat(0); !reflect.DeepEqual(got, []Base{P}) {
		t.Errorf("asNat(0) = %v, want [P]", got)
	}
}

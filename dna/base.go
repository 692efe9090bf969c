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
// Package dna implements the DNA rewriter: a sequence buffer of four-symbol
// bases together with the pattern/template parsers, matcher, and rewrite
// driver that repeatedly consume the front of the sequence, rewriting it in
// place and emitting an RNA instruction stream as a side effect.
package dna

import (
	"github.com/pkg/errors"
)

// Base is one of the four symbols making up a Sequence.
type Base byte

// The four bases, named per the original challenge's convention.
const (
	I Base = iota
	C
	F
	P
)

// ErrMalformedBase is wrapped with positional context and returned by Parse
// when an input byte is not one of 'I', 'C', 'F', 'P'.
var ErrMalformedBase = errors.New("malformed base")

// Byte returns the ASCII encoding of b.
func (b Base) Byte() byte {
	switch b {
	case I:
		return 'I'
	case C:
		return 'C'
	case F:
		return 'F'
	case P:
		return 'P'
	default:
		panic("dna: invalid Base value")
	}
}

// String implements fmt.Stringer.
func (b Base) String() string {
	return string(b.Byte())
}

// ParseBase converts an ASCII byte to a Base. It returns ErrMalformedBase if
// c is not one of 'I', 'C', 'F', 'P'.
func ParseBase(c byte) (Base, error) {
	switch c {
	case 'I':
		return I, nil
	case 'C':
		return C, nil
	case 'F':
		return F, nil
	case 'P':
		return P, nil
	default:
		return 0, errors.Wrapf(ErrMalformedBase, "byte %q", c)
	}
}

// Parse converts an ASCII-encoded byte slice to a slice of Bases. It fails
// on the first malformed byte, reporting its offset.
func Parse(s []byte) ([]Base, error) {
	out := make([]Base, len(s))
	for i, c := range s {
		b, err := ParseBase(c)
		if err != nil {
			return nil, errors.Wrapf(err, "at offset %d", i)
		}
		out[i] = b
	}
	return out, nil
}

// Bytes renders bs as its ASCII encoding.
func Bytes(bs []Base) []byte {
	out := make([]byte, len(bs))
	for i, b := range bs {
		out[i] = b.Byte()
	}
	return out
}

// Equal reports whether a and b are the same sequence of bases.
func Equal(a, b []Base) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

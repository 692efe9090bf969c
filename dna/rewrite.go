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
	"github.com/pkg/errors"
)

// opts holds Run's optional behavior, set through functional options.
type opts struct {
	checkInvariants bool
	logEvery        int
}

// Opt is an optional argument to Run.
type Opt func(*opts)

// WithCheckInvariants makes Run call Sequence.CheckInvariants after every
// iteration and log.Panicf on violation. It is expensive (a full live-view
// walk per iteration) and is meant for debugging, not production runs.
func WithCheckInvariants() Opt {
	return func(o *opts) { o.checkInvariants = true }
}

// WithLogEvery makes Run log progress (sequence and RNA length) every n
// completed iterations. n <= 0 disables progress logging (the default).
func WithLogEvery(n int) Opt {
	return func(o *opts) { o.logEvery = n }
}

func makeOpts(userOpts ...Opt) opts {
	var o opts
	for _, u := range userOpts {
		u(&o)
	}
	return o
}

// Run drives the rewrite loop to completion: parse pattern, parse
// template, match and replace, repeating until either parser signals
// early-finish (spec §4.5, §7). It returns the RNA stream accumulated
// along the way, including any partial "III" emission drained just before
// the terminating early-finish.
func Run(seq *Sequence, userOpts ...Opt) *RNA {
	o := makeOpts(userOpts...)
	out := &RNA{}
	iterations := 0
	for {
		pat, ok := ParsePattern(seq, out)
		if !ok {
			break
		}
		tpl, ok := ParseTemplate(seq, out)
		if !ok {
			break
		}
		Replace(seq, pat, tpl)
		iterations++
		if o.checkInvariants {
			if err := seq.CheckInvariants(); err != nil {
				log.Panicf("dna: %v", err)
			}
		}
		if o.logEvery > 0 && iterations%o.logEvery == 0 {
			log.Printf("dna: iteration %d: sequence length %d, rna length %d",
				iterations, seq.Length(), out.Len())
		}
	}
	return out
}

// Execute is the core's top-level entry point (spec §6): it decodes
// dnaBytes (ASCII I/C/F/P), prepends the optional prefix, and runs the
// rewrite loop to completion, returning the emitted RNA stream's ASCII
// encoding. prefix selects an output variant in the original challenge and
// may be empty.
func Execute(prefix []Base, dnaBytes []byte, userOpts ...Opt) ([]byte, error) {
	bases, err := Parse(dnaBytes)
	if err != nil {
		return nil, errors.Wrap(err, "dna.Execute: decoding input")
	}
	all := make([]Base, 0, len(prefix)+len(bases))
	all = append(all, prefix...)
	all = append(all, bases...)
	seq := New(all)
	rna := Run(seq, userOpts...)
	return rna.Bytes(), nil
}

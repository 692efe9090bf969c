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

import "github.com/pkg/errors"

// invariantErrorf reports a violated sequence-buffer invariant (spec §8).
// These are implementation bugs under well-formed input, but
// CheckInvariants returns rather than panics since it is reachable from
// ordinary, non-debug code paths (the CLI's -check flag).
func invariantErrorf(format string, args ...interface{}) error {
	return errors.Errorf("dna: invariant violated: "+format, args...)
}

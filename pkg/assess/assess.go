// Copyright 2025 The macsigcheck Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package assess wraps the platform's native signature-assessment
// mechanism, spctl(8). macsigcheck never validates signatures itself; it
// asks spctl for an assessment and reads the reported originator out of
// the structured (property list) output.
package assess

import (
	"context"
	"regexp"
)

// Mode is the usage context presented to the assessment mechanism. It
// affects which policy spctl applies.
type Mode string

const (
	// ModeOpen assesses the path as a document/bundle being opened.
	// Used for non-executable bundles such as preference panes.
	ModeOpen Mode = "open"
	// ModeExecute assesses the path as code being launched.
	ModeExecute Mode = "execute"
)

// OriginatorKey is the assessment output entry holding the signer
// identity. Its absence on a successful assessment is a broken
// collaborator contract.
const OriginatorKey = "assessment:originator"

// openBundleRe recognizes non-executable bundle types installed under a
// Library tree (system-wide, /System, or per-user via the expanded home
// path). These cannot be assessed with the execute policy.
var openBundleRe = regexp.MustCompile(`(?:^|/)Library/.+\.(?:prefPane|saver|qlgenerator|mdimporter)$`)

// DefaultMode infers the assessment mode from the path shape: open for
// recognized bundle suffixes under a Library directory, execute for
// everything else.
func DefaultMode(path string) Mode {
	if openBundleRe.MatchString(path) {
		return ModeOpen
	}
	return ModeExecute
}

// Result is the outcome of one assessment invocation.
type Result struct {
	// Status is the collaborator's exit status. Non-zero means the
	// assessment was rejected or could not be made; no identity
	// comparison should be attempted.
	Status int
	// Fields is the structured assessment output, present only when
	// Status is zero and the output was parseable.
	Fields map[string]string
	// Diagnostics is the collaborator's diagnostic text (stderr),
	// captured for failure reporting.
	Diagnostics string
}

// Assessor is the external signature-assessment collaborator. The real
// implementation shells out to spctl; tests substitute a fake.
type Assessor interface {
	// Assess evaluates path under the given mode. A non-zero exit from
	// the collaborator is reported via Result.Status, not as an error;
	// the error return is reserved for being unable to invoke the
	// collaborator or make sense of its output at all.
	Assess(ctx context.Context, path string, mode Mode) (Result, error)
}

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

package store

import "time"

// TimestampFormat is the layout for the last_updated field.
const TimestampFormat = time.RFC3339

// Record is the expectation stored for one tracked path. A missing
// record is represented by the second return value of Store.Get, never
// by a sentinel value.
type Record struct {
	// Originator is the stored originator pattern: either the short
	// "id:XXXX" form or an anchored expression. Empty means no
	// expectation has been established yet.
	Originator string `json:"originator,omitempty"`
	// AssessmentType overrides the assessment mode ("open" or
	// "execute") requested from the platform. Empty means infer from
	// the path shape.
	AssessmentType string `json:"assessment_type,omitempty"`
	// LastUpdated is the RFC 3339 time of the most recent successful
	// reconciliation of this record. Always serialized, even when no
	// reconciliation has stamped the record yet.
	LastUpdated string `json:"last_updated"`
}

// HasOriginator reports whether an expectation has been established.
func (r Record) HasOriginator() bool {
	return r.Originator != ""
}

// OriginatorPattern parses the stored originator into a Pattern. The
// boolean is false when no expectation is stored.
func (r Record) OriginatorPattern() (Pattern, bool, error) {
	if r.Originator == "" {
		return Pattern{}, false, nil
	}
	p, err := ParsePattern(r.Originator)
	if err != nil {
		return Pattern{}, false, err
	}
	return p, true, nil
}

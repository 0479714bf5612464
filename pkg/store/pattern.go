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

import (
	"fmt"
	"regexp"
	"strings"
)

// PatternKind distinguishes the two originator pattern variants.
type PatternKind int

const (
	// PatternID is the short-identifier form "id:XXXX". It matches any
	// reported originator that ends with "(XXXX)".
	PatternID PatternKind = iota
	// PatternAnchored is a pre-built anchored regular expression,
	// matched against the reported originator string.
	PatternAnchored
)

// IDPrefix marks the short-identifier pattern form in the store.
const IDPrefix = "id:"

// trailingTokenRe captures a parenthesized alphanumeric token at the end
// of an originator string, e.g. the team identifier in
// "Developer ID Application: Example Corp (ABCDEF1234)".
var trailingTokenRe = regexp.MustCompile(`\(([A-Za-z0-9]+)\)$`)

// Pattern is an originator expectation in one of its two variants.
// The zero value is not valid; use ParsePattern or PatternFromObserved.
type Pattern struct {
	kind PatternKind
	id   string
	expr *regexp.Regexp
	raw  string
}

// ParsePattern classifies a stored originator string. Strings starting
// with "id:" become short-identifier patterns; anything else must be a
// valid regular expression (it was built by PatternFromObserved at
// record creation time, so it is anchored already).
func ParsePattern(s string) (Pattern, error) {
	if rest, ok := strings.CutPrefix(s, IDPrefix); ok {
		return Pattern{kind: PatternID, id: rest, raw: s}, nil
	}
	expr, err := regexp.Compile(s)
	if err != nil {
		return Pattern{}, fmt.Errorf("invalid originator pattern %q: %w", s, err)
	}
	return Pattern{kind: PatternAnchored, expr: expr, raw: s}, nil
}

// PatternFromObserved canonicalizes a freshly observed originator for
// storage. An identity ending in a parenthesized alphanumeric token is
// stored as "id:<token>"; anything else becomes a fully anchored
// literal-match expression. Partial matching is deliberately not
// offered for the anchored form.
func PatternFromObserved(originator string) Pattern {
	if m := trailingTokenRe.FindStringSubmatch(originator); m != nil {
		return Pattern{kind: PatternID, id: m[1], raw: IDPrefix + m[1]}
	}
	raw := "^" + regexp.QuoteMeta(originator) + "$"
	return Pattern{kind: PatternAnchored, expr: regexp.MustCompile(raw), raw: raw}
}

// Kind returns the pattern variant.
func (p Pattern) Kind() PatternKind {
	return p.kind
}

// Matches reports whether the reported originator satisfies the pattern.
func (p Pattern) Matches(originator string) bool {
	switch p.kind {
	case PatternID:
		return strings.HasSuffix(originator, "("+p.id+")")
	case PatternAnchored:
		return p.expr.MatchString(originator)
	default:
		return false
	}
}

// String returns the stored string form of the pattern.
func (p Pattern) String() string {
	return p.raw
}

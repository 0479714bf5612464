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

package reconcile

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

// TestErrorMessage tests the message shapes with and without path and
// cause.
func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "kind and message only",
			err:  NewError(ErrKindUsage, "bad flags", nil),
			want: "UsageError: bad flags",
		},
		{
			name: "with path",
			err:  NewErrorWithPath(ErrKindTargetMissing, "/Applications/Gone.app", "target does not exist", nil),
			want: "TargetMissing: target does not exist (path: /Applications/Gone.app)",
		},
		{
			name: "with cause",
			err:  NewError(ErrKindStoreData, "stored originator pattern", errors.New("bad regexp")),
			want: "StoreDataError: stored originator pattern: bad regexp",
		},
		{
			name: "with path and cause",
			err:  NewErrorWithPath(ErrKindStoreWrite, "/tmp/store.json", "writing signature store", errors.New("disk full")),
			want: "StoreWriteError: writing signature store (path: /tmp/store.json): disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestErrorUnwrap tests that the cause is reachable with errors.Is.
func TestErrorUnwrap(t *testing.T) {
	err := NewErrorWithPath(ErrKindCollaborator, "/Applications/App.app", "invoking assessment", os.ErrPermission)
	if !errors.Is(err, os.ErrPermission) {
		t.Error("errors.Is(err, os.ErrPermission) = false, want true")
	}
}

// TestIsKind tests kind matching through wrapping.
func TestIsKind(t *testing.T) {
	err := NewError(ErrKindContract, "no originator reported", nil)
	wrapped := fmt.Errorf("reconciling: %w", err)

	if !IsKind(wrapped, ErrKindContract) {
		t.Error("IsKind(wrapped, ErrKindContract) = false, want true")
	}
	if IsKind(wrapped, ErrKindUsage) {
		t.Error("IsKind(wrapped, ErrKindUsage) = true, want false")
	}
	if IsKind(errors.New("plain"), ErrKindContract) {
		t.Error("IsKind(plain, ErrKindContract) = true, want false")
	}
}

// TestErrorKindString tests that every kind has a distinct name.
func TestErrorKindString(t *testing.T) {
	kinds := []ErrorKind{
		ErrKindUnknown, ErrKindUsage, ErrKindTargetMissing,
		ErrKindTargetStat, ErrKindCollaborator, ErrKindContract,
		ErrKindStoreData, ErrKindStoreWrite,
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		s := k.String()
		if s == "" || strings.Contains(s, " ") {
			t.Errorf("ErrorKind(%d).String() = %q, want a single word", k, s)
		}
		if seen[s] {
			t.Errorf("duplicate kind name %q", s)
		}
		seen[s] = true
	}
}

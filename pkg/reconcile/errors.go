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
)

// ErrorKind categorizes the fatal error conditions of a reconciliation
// run. Per-target drift and untracked-target failures are not errors;
// they are recorded in TargetResult and only affect the process verdict.
type ErrorKind int

const (
	// ErrKindUnknown is an unclassified error.
	ErrKindUnknown ErrorKind = iota

	// ErrKindUsage is a bad flag combination, caught before any work.
	ErrKindUsage

	// ErrKindTargetMissing means an explicitly requested target does
	// not exist on disk. Fatal: the user asked for something that is
	// not there.
	ErrKindTargetMissing

	// ErrKindTargetStat means a target's existence could not be
	// determined at all (e.g. a permission error), which is distinct
	// from the target being absent.
	ErrKindTargetStat

	// ErrKindCollaborator means the assessment tool could not be
	// invoked at all (as opposed to assessing and rejecting).
	ErrKindCollaborator

	// ErrKindContract means the collaborator reported success but its
	// output is missing the originator entry it is contracted to
	// provide.
	ErrKindContract

	// ErrKindStoreData means the persisted store contents are invalid.
	ErrKindStoreData

	// ErrKindStoreWrite means the store could not be written at the end
	// of the run.
	ErrKindStoreWrite
)

// String returns a short name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrKindUsage:
		return "UsageError"
	case ErrKindTargetMissing:
		return "TargetMissing"
	case ErrKindTargetStat:
		return "TargetStatError"
	case ErrKindCollaborator:
		return "CollaboratorError"
	case ErrKindContract:
		return "ContractViolation"
	case ErrKindStoreData:
		return "StoreDataError"
	case ErrKindStoreWrite:
		return "StoreWriteError"
	default:
		return "UnknownError"
	}
}

// Error is a structured fatal reconciliation error.
type Error struct {
	// Kind categorizes the error for programmatic handling.
	Kind ErrorKind
	// Path is the target or store path involved, when applicable.
	Path string
	// Message describes what went wrong.
	Message string
	// Cause is the wrapped underlying error, when any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %s (path: %s): %v", e.Kind, e.Message, e.Path, e.Cause)
	case e.Path != "":
		return fmt.Sprintf("%s: %s (path: %s)", e.Kind, e.Message, e.Path)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a fatal reconciliation error.
func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// NewErrorWithPath creates a fatal reconciliation error tied to a path.
func NewErrorWithPath(kind ErrorKind, path, message string, cause error) *Error {
	return &Error{Kind: kind, Path: path, Message: message, Cause: cause}
}

// IsKind reports whether err is a reconcile.Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind == kind
	}
	return false
}

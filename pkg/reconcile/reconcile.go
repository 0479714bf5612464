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

// Package reconcile drives the per-target decision process: resolve each
// target against the expectations store, ask the assessment collaborator
// for the current originator, compare against the stored pattern, and
// decide whether to create, confirm, update with a warning, or fail.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/dsedivec/macsigcheck/pkg/assess"
	"github.com/dsedivec/macsigcheck/pkg/logging"
	"github.com/dsedivec/macsigcheck/pkg/store"
	"github.com/dsedivec/macsigcheck/pkg/utils"
)

// Options are the independent mode flags of a reconciliation run.
type Options struct {
	// Add permits creating records for targets not yet in the store.
	Add bool
	// Freshen permits overwriting a stored expectation on mismatch
	// instead of treating the mismatch as a failure.
	Freshen bool
}

// Outcome is the per-target decision.
type Outcome int

const (
	// OutcomeVerified: existing record matched in confirm-only mode.
	OutcomeVerified Outcome = iota
	// OutcomeCreated: a new record was added for the target.
	OutcomeCreated
	// OutcomeUnchanged: existing record matched in a persisting mode;
	// only the timestamp was refreshed.
	OutcomeUnchanged
	// OutcomeUpdated: stored expectation was overwritten on mismatch.
	OutcomeUpdated
	// OutcomeSkipped: a store-enumerated path no longer exists on disk.
	OutcomeSkipped
	// OutcomeFailed: drift in confirm-only mode, untracked target with
	// adding disabled, or a rejected assessment.
	OutcomeFailed
)

// String returns a short name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeVerified:
		return "verified"
	case OutcomeCreated:
		return "created"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeUpdated:
		return "updated"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TargetResult is the recorded outcome for one target.
type TargetResult struct {
	// Target is the path as requested (or the store key when the run
	// enumerated the store).
	Target string
	// Key is the resolved canonical store key.
	Key string
	// Outcome is the decision for this target.
	Outcome Outcome
	// Message is the human-readable outcome line.
	Message string
}

// Failed reports whether any target in results failed. This is the
// process-wide verdict: exit status 1 when true.
func Failed(results []TargetResult) bool {
	for _, r := range results {
		if r.Outcome == OutcomeFailed {
			return true
		}
	}
	return false
}

// Engine reconciles targets against the expectations store.
type Engine struct {
	store    *store.Store
	assessor assess.Assessor
	log      logging.Logger
	opts     Options
	now      func() time.Time
	stat     func(string) (bool, error)
}

// NewEngine creates a reconciliation engine. A nil logger falls back to
// the default logger.
func NewEngine(st *store.Store, assessor assess.Assessor, log logging.Logger, opts Options) *Engine {
	return &Engine{
		store:    st,
		assessor: assessor,
		log:      logging.EnsureLogger(log),
		opts:     opts,
		now:      time.Now,
		stat:     utils.PathExists,
	}
}

// Run reconciles the given targets. An empty target list means every
// key currently in the store, in store order. A single target's failure
// never aborts the remaining targets; the fatal conditions (explicit
// target missing, broken collaborator contract, store write failure)
// do. The store is written once at the end, only if a record changed.
func (e *Engine) Run(ctx context.Context, targets []string) ([]TargetResult, error) {
	explicit := len(targets) > 0
	if !explicit {
		targets = e.store.Keys()
	}

	results := make([]TargetResult, 0, len(targets))
	for _, target := range targets {
		res, err := e.reconcileTarget(ctx, target, explicit)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	if e.store.Dirty() {
		if err := e.store.Save(); err != nil {
			return results, NewErrorWithPath(ErrKindStoreWrite, e.store.Path(), "writing signature store", err)
		}
	}
	return results, nil
}

func (e *Engine) reconcileTarget(ctx context.Context, target string, explicit bool) (TargetResult, error) {
	usablePath, key, found := e.store.Resolve(target)
	res := TargetResult{Target: target, Key: key}

	exists, err := e.stat(usablePath)
	if err != nil {
		return res, NewErrorWithPath(ErrKindTargetStat, usablePath, "checking target", err)
	}
	if !exists {
		if explicit {
			return res, NewErrorWithPath(ErrKindTargetMissing, usablePath, "target does not exist", nil)
		}
		// A tracked path may legitimately disappear (app uninstalled).
		e.log.Debug("Skipping %s: no longer present", usablePath)
		res.Outcome = OutcomeSkipped
		res.Message = fmt.Sprintf("%s no longer present", usablePath)
		return res, nil
	}

	isNew := !found
	if isNew && !e.opts.Add {
		res.Outcome = OutcomeFailed
		res.Message = fmt.Sprintf("%s is not tracked and adding is not enabled", target)
		e.log.Error("%s", res.Message)
		return res, nil
	}

	rec, _ := e.store.Get(key)
	willPersist := isNew || e.opts.Freshen

	mode := assess.Mode(rec.AssessmentType)
	if mode == "" {
		mode = assess.DefaultMode(usablePath)
	}

	assessment, err := e.assessor.Assess(ctx, usablePath, mode)
	if err != nil {
		return res, NewErrorWithPath(ErrKindCollaborator, usablePath, "invoking assessment", err)
	}
	if assessment.Status != 0 {
		res.Outcome = OutcomeFailed
		res.Message = fmt.Sprintf("assessment of %s failed (status %d): %s",
			usablePath, assessment.Status, assessment.Diagnostics)
		e.log.Error("%s", res.Message)
		return res, nil
	}

	originator, ok := assessment.Fields[assess.OriginatorKey]
	if !ok {
		// The collaborator contract guarantees this entry on success.
		return res, NewErrorWithPath(ErrKindContract, usablePath,
			fmt.Sprintf("assessment succeeded but reported no %q", assess.OriginatorKey), nil)
	}

	pattern, hasPattern, err := rec.OriginatorPattern()
	if err != nil {
		return res, NewErrorWithPath(ErrKindStoreData, key, "stored originator pattern", err)
	}
	// No stored pattern means there is nothing to confirm against, so
	// the observation counts as changed.
	matched := hasPattern && pattern.Matches(originator)

	switch {
	case isNew:
		fresh := store.PatternFromObserved(originator)
		rec.Originator = fresh.String()
		rec.LastUpdated = e.now().Format(store.TimestampFormat)
		e.store.Set(key, rec)
		res.Outcome = OutcomeCreated
		res.Message = fmt.Sprintf("Created %s (%s)", key, fresh)
		e.log.Info("%s", res.Message)

	case willPersist && matched:
		rec.LastUpdated = e.now().Format(store.TimestampFormat)
		e.store.Set(key, rec)
		res.Outcome = OutcomeUnchanged
		res.Message = fmt.Sprintf("No change to %s", key)
		e.log.Info("%s", res.Message)

	case willPersist:
		old := rec.Originator
		if old == "" {
			old = "(none)"
		}
		fresh := store.PatternFromObserved(originator)
		e.log.Warn("Originator changing from %s to %s for %s", old, fresh, key)
		rec.Originator = fresh.String()
		rec.LastUpdated = e.now().Format(store.TimestampFormat)
		e.store.Set(key, rec)
		res.Outcome = OutcomeUpdated
		res.Message = fmt.Sprintf("Originator changing from %s to %s for %s", old, fresh, key)

	case matched:
		res.Outcome = OutcomeVerified
		res.Message = fmt.Sprintf("Verified %s (%s)", key, rec.Originator)
		e.log.Info("%s", res.Message)

	default:
		old := rec.Originator
		if old == "" {
			old = "(none)"
		}
		fresh := store.PatternFromObserved(originator)
		res.Outcome = OutcomeFailed
		res.Message = fmt.Sprintf("Originator changed from %s to %s for %s", old, fresh, key)
		e.log.Error("%s", res.Message)
	}

	return res, nil
}

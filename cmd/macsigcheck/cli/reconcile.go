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

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dsedivec/macsigcheck/cmd/macsigcheck/cli/options"
	"github.com/dsedivec/macsigcheck/pkg/assess"
	"github.com/dsedivec/macsigcheck/pkg/reconcile"
	"github.com/dsedivec/macsigcheck/pkg/store"
	"github.com/dsedivec/macsigcheck/pkg/tracing"
)

// exitError signals a specific process exit status to main without
// aborting remaining cleanup.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

// ExitCode returns the process exit status.
func (e *exitError) ExitCode() int {
	return e.code
}

// runReconcile loads the store, reconciles the targets, and converts the
// aggregate verdict into the process exit status.
func runReconcile(ctx context.Context, o *options.ReconcileOptions, targets []string) error {
	if err := o.Validate(targets); err != nil {
		return reconcile.NewError(reconcile.ErrKindUsage, err.Error(), nil)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("determining home directory: %w", err)
	}
	storePath := o.ResolvedStorePath(homeDir)

	st, err := store.Load(store.Config{
		Path:           storePath,
		HomeDir:        homeDir,
		SubstituteHome: o.SubstituteHome(),
	})
	if err != nil {
		return reconcile.NewErrorWithPath(reconcile.ErrKindStoreData, storePath, "loading signature store", err)
	}

	logger := ro.NewLogger()
	engine := reconcile.NewEngine(st, &assess.SpctlAssessor{}, logger, o.ToEngineOptions())

	attrs := map[string]interface{}{
		"macsigcheck.store":           storePath,
		"macsigcheck.add":             o.Add || o.Update,
		"macsigcheck.freshen":         o.Freshen || o.Update,
		"macsigcheck.substitute_home": o.SubstituteHome(),
		"macsigcheck.targets":         len(targets),
	}
	return tracing.Run(ctx, "Reconcile", attrs, func(ctx context.Context) error {
		results, err := engine.Run(ctx, targets)
		if err != nil {
			return err
		}
		if reconcile.Failed(results) {
			failed := 0
			for _, r := range results {
				if r.Outcome == reconcile.OutcomeFailed {
					failed++
				}
			}
			return &exitError{
				code: 1,
				msg:  fmt.Sprintf("%d of %d targets failed", failed, len(results)),
			}
		}
		return nil
	})
}

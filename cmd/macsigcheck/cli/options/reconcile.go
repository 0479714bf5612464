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

package options

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dsedivec/macsigcheck/pkg/reconcile"
)

// DefaultStorePath is the store location used when --store is not given.
// The leading "~" is expanded against the user's home directory.
const DefaultStorePath = "~/.macsigcheck.json"

// ReconcileOptions defines the flags of the reconciliation run.
type ReconcileOptions struct {
	// StorePath is the location of the signature store file.
	StorePath string
	// Add permits creating records for untracked targets.
	Add bool
	// Freshen permits overwriting stored expectations on mismatch.
	Freshen bool
	// Update implies both Add and Freshen.
	Update bool
	// NoSubstituteHome disables home-relative store keys.
	NoSubstituteHome bool
}

var _ FlagAdder = (*ReconcileOptions)(nil)

// AddFlags adds reconciliation flags to the cobra command.
func (o *ReconcileOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.StorePath, "store", "s", DefaultStorePath,
		"Location of the signature store file.")
	_ = cmd.MarkFlagFilename("store", "json")

	cmd.Flags().BoolVarP(&o.Add, "add", "a", false,
		"Record signatures for targets not yet in the store.")
	cmd.Flags().BoolVarP(&o.Freshen, "freshen", "f", false,
		"Overwrite a stored signature when it no longer matches, instead of failing.")
	cmd.Flags().BoolVarP(&o.Update, "update", "u", false,
		"Same as --add --freshen.")
	cmd.Flags().BoolVar(&o.NoSubstituteHome, "no-substitute-home", false,
		"Store absolute paths instead of home-relative (~) keys.")
}

// Validate checks flag/argument combinations before any work begins.
func (o *ReconcileOptions) Validate(targets []string) error {
	if (o.Add || o.Update) && len(targets) == 0 {
		return fmt.Errorf("adding requested but no targets given")
	}
	return nil
}

// SubstituteHome reports whether home-relative keys are enabled.
func (o *ReconcileOptions) SubstituteHome() bool {
	return !o.NoSubstituteHome
}

// ResolvedStorePath expands a leading "~" in the store path against
// homeDir.
func (o *ReconcileOptions) ResolvedStorePath(homeDir string) string {
	path := o.StorePath
	if path == "~" {
		return homeDir
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(homeDir, rest)
	}
	return path
}

// ToEngineOptions converts CLI options to reconciliation engine options.
func (o *ReconcileOptions) ToEngineOptions() reconcile.Options {
	return reconcile.Options{
		Add:     o.Add || o.Update,
		Freshen: o.Freshen || o.Update,
	}
}

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

// Package cli wires the macsigcheck cobra commands.
package cli

import (
	"github.com/spf13/cobra"
	cobracompletefig "github.com/withfig/autocomplete-tools/integrations/cobra"
	"sigs.k8s.io/release-utils/version"

	"github.com/dsedivec/macsigcheck/cmd/macsigcheck/cli/options"
)

var ro = &options.RootOptions{}

// New creates the root macsigcheck command. The root command itself
// performs reconciliation; verification versus recording is selected by
// the --add/--freshen/--update flags, not by subcommands.
func New() *cobra.Command {
	o := &options.ReconcileOptions{}

	long := `Track and re-verify the code-signing originators of macOS paths.

macsigcheck records, per tracked path, the originator identity that
spctl(8) reports for it, and on later runs checks that the current
assessment still reports the same originator. It does not validate
signatures itself; Gatekeeper does that.

With no targets, every path in the signature store is re-checked.
Paths that have disappeared (e.g. uninstalled applications) are
skipped. With targets, exactly those paths are checked; --add is
required for paths not yet tracked, and --freshen (or --update)
permits replacing a stored originator that no longer matches.`

	cmd := &cobra.Command{
		Use:               "macsigcheck [OPTIONS] [TARGET...]",
		Short:             "Detect code-signing originator drift on macOS.",
		Long:              long,
		Args:              cobra.ArbitraryArgs,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(cmd.Context(), o, args)
		},
	}
	ro.AddFlags(cmd)
	o.AddFlags(cmd)

	cmd.AddCommand(version.WithFont("starwars"))
	cmd.AddCommand(cobracompletefig.CreateCompletionSpecCommand())
	return cmd
}

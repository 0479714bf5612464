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
	"testing"
)

// TestValidate tests the flag/argument combinations rejected before any
// work begins.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    ReconcileOptions
		targets []string
		wantErr bool
	}{
		{
			name:    "confirm whole store",
			opts:    ReconcileOptions{},
			targets: nil,
			wantErr: false,
		},
		{
			name:    "confirm explicit targets",
			opts:    ReconcileOptions{},
			targets: []string{"/Applications/App.app"},
			wantErr: false,
		},
		{
			name:    "add with targets",
			opts:    ReconcileOptions{Add: true},
			targets: []string{"/Applications/App.app"},
			wantErr: false,
		},
		{
			name:    "add without targets",
			opts:    ReconcileOptions{Add: true},
			targets: nil,
			wantErr: true,
		},
		{
			name:    "update without targets",
			opts:    ReconcileOptions{Update: true},
			targets: nil,
			wantErr: true,
		},
		{
			name:    "freshen without targets is fine",
			opts:    ReconcileOptions{Freshen: true},
			targets: nil,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate(tt.targets)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestToEngineOptions tests that --update implies both add and freshen.
func TestToEngineOptions(t *testing.T) {
	tests := []struct {
		name        string
		opts        ReconcileOptions
		wantAdd     bool
		wantFreshen bool
	}{
		{
			name: "defaults",
			opts: ReconcileOptions{},
		},
		{
			name:    "add only",
			opts:    ReconcileOptions{Add: true},
			wantAdd: true,
		},
		{
			name:        "freshen only",
			opts:        ReconcileOptions{Freshen: true},
			wantFreshen: true,
		},
		{
			name:        "update implies both",
			opts:        ReconcileOptions{Update: true},
			wantAdd:     true,
			wantFreshen: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.opts.ToEngineOptions()
			if got.Add != tt.wantAdd {
				t.Errorf("Add = %v, want %v", got.Add, tt.wantAdd)
			}
			if got.Freshen != tt.wantFreshen {
				t.Errorf("Freshen = %v, want %v", got.Freshen, tt.wantFreshen)
			}
		})
	}
}

// TestResolvedStorePath tests tilde expansion of the store location.
func TestResolvedStorePath(t *testing.T) {
	const home = "/home/tester"

	tests := []struct {
		name      string
		storePath string
		want      string
	}{
		{
			name:      "default expands against home",
			storePath: DefaultStorePath,
			want:      "/home/tester/.macsigcheck.json",
		},
		{
			name:      "bare tilde",
			storePath: "~",
			want:      home,
		},
		{
			name:      "absolute path unchanged",
			storePath: "/var/db/sigs.json",
			want:      "/var/db/sigs.json",
		},
		{
			name:      "tilde mid-path untouched",
			storePath: "/tmp/~x.json",
			want:      "/tmp/~x.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := ReconcileOptions{StorePath: tt.storePath}
			if got := o.ResolvedStorePath(home); got != tt.want {
				t.Errorf("ResolvedStorePath(%q) = %q, want %q", tt.storePath, got, tt.want)
			}
		})
	}
}

// TestSubstituteHome tests the flag inversion.
func TestSubstituteHome(t *testing.T) {
	if !(&ReconcileOptions{}).SubstituteHome() {
		t.Error("SubstituteHome() = false by default, want true")
	}
	if (&ReconcileOptions{NoSubstituteHome: true}).SubstituteHome() {
		t.Error("SubstituteHome() = true with --no-substitute-home, want false")
	}
}

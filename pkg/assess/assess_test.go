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

package assess

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// TestDefaultMode tests mode inference from the path shape.
func TestDefaultMode(t *testing.T) {
	tests := []struct {
		path string
		want Mode
	}{
		{"/Applications/Safari.app", ModeExecute},
		{"/usr/local/bin/tool", ModeExecute},
		{"/Library/PreferencePanes/Example.prefPane", ModeOpen},
		{"/System/Library/Screen Savers/Drift.saver", ModeOpen},
		{"/home/tester/Library/QuickLook/Example.qlgenerator", ModeOpen},
		{"/Library/Spotlight/Example.mdimporter", ModeOpen},
		// Suffix alone is not enough; must live under a Library tree.
		{"/tmp/Example.prefPane", ModeExecute},
		// A Library tree alone is not enough either.
		{"/Library/Application Support/Example.app", ModeExecute},
	}
	for _, tt := range tests {
		if got := DefaultMode(tt.path); got != tt.want {
			t.Errorf("DefaultMode(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

const sampleAssessment = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>assessment:authority</key>
	<string>Developer ID</string>
	<key>assessment:originator</key>
	<string>Developer ID Application: Example Corp (ABCDEF1234)</string>
	<key>assessment:verdict</key>
	<true/>
</dict>
</plist>
`

// TestParseAssessment tests decoding the raw property-list output.
func TestParseAssessment(t *testing.T) {
	fields, err := parseAssessment([]byte(sampleAssessment))
	if err != nil {
		t.Fatalf("parseAssessment() error = %v", err)
	}
	if got, want := fields[OriginatorKey], "Developer ID Application: Example Corp (ABCDEF1234)"; got != want {
		t.Errorf("fields[%q] = %q, want %q", OriginatorKey, got, want)
	}
	// Non-string values are flattened to their default formatting.
	if got := fields["assessment:verdict"]; got != "true" {
		t.Errorf("fields[assessment:verdict] = %q, want %q", got, "true")
	}
}

// TestParseAssessment_Malformed tests that garbage output is an error.
func TestParseAssessment_Malformed(t *testing.T) {
	if _, err := parseAssessment([]byte("not a plist")); err == nil {
		t.Fatal("parseAssessment() error = nil, want non-nil")
	}
}

// writeStubTool writes an executable shell script standing in for spctl.
func writeStubTool(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub tool requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "spctl-stub")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestSpctlAssessor_Success tests a zero-status assessment with raw
// output on stdout.
func TestSpctlAssessor_Success(t *testing.T) {
	tool := writeStubTool(t, "cat <<'EOF'\n"+sampleAssessment+"EOF\n")

	a := &SpctlAssessor{Tool: tool}
	res, err := a.Assess(context.Background(), "/Applications/App.app", ModeExecute)
	if err != nil {
		t.Fatalf("Assess() error = %v", err)
	}
	if res.Status != 0 {
		t.Errorf("Status = %d, want 0", res.Status)
	}
	if got, want := res.Fields[OriginatorKey], "Developer ID Application: Example Corp (ABCDEF1234)"; got != want {
		t.Errorf("Fields[%q] = %q, want %q", OriginatorKey, got, want)
	}
}

// TestSpctlAssessor_Rejected tests that a non-zero exit is reported via
// Status with diagnostics captured, not as a Go error.
func TestSpctlAssessor_Rejected(t *testing.T) {
	tool := writeStubTool(t, "echo 'rejected' >&2\nexit 3\n")

	a := &SpctlAssessor{Tool: tool}
	res, err := a.Assess(context.Background(), "/Applications/App.app", ModeExecute)
	if err != nil {
		t.Fatalf("Assess() error = %v, want nil for a rejecting collaborator", err)
	}
	if res.Status != 3 {
		t.Errorf("Status = %d, want 3", res.Status)
	}
	if res.Diagnostics != "rejected" {
		t.Errorf("Diagnostics = %q, want %q", res.Diagnostics, "rejected")
	}
}

// TestSpctlAssessor_ToolMissing tests that an uninvokable collaborator
// is a Go error rather than a status.
func TestSpctlAssessor_ToolMissing(t *testing.T) {
	a := &SpctlAssessor{Tool: filepath.Join(t.TempDir(), "no-such-tool")}
	if _, err := a.Assess(context.Background(), "/Applications/App.app", ModeExecute); err == nil {
		t.Fatal("Assess() error = nil for a missing tool, want non-nil")
	}
}

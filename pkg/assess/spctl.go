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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"howett.net/plist"
)

// DefaultTool is the assessment executable looked up on PATH.
const DefaultTool = "spctl"

var _ Assessor = (*SpctlAssessor)(nil)

// SpctlAssessor invokes spctl --assess with raw (property list) output.
// The call blocks until spctl exits; cancellation comes only from the
// caller's context.
type SpctlAssessor struct {
	// Tool overrides the spctl executable path. Empty means DefaultTool.
	Tool string
}

// Assess runs `spctl --assess --type <mode> --raw <path>` and parses the
// property-list output into Result.Fields when the assessment succeeds.
func (a *SpctlAssessor) Assess(ctx context.Context, path string, mode Mode) (Result, error) {
	tool := a.Tool
	if tool == "" {
		tool = DefaultTool
	}

	cmd := exec.CommandContext(ctx, tool, "--assess", "--type", string(mode), "--raw", path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Diagnostics: strings.TrimSpace(stderr.String())}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.Status = exitErr.ExitCode()
			return res, nil
		}
		return Result{}, fmt.Errorf("running %s: %w", tool, err)
	}

	fields, err := parseAssessment(stdout.Bytes())
	if err != nil {
		return Result{}, fmt.Errorf("parsing %s output for %q: %w", tool, path, err)
	}
	res.Fields = fields
	return res, nil
}

// parseAssessment decodes the raw assessment property list into string
// fields. Non-string values are flattened with their default formatting;
// only string-keyed entries are kept.
func parseAssessment(raw []byte) (map[string]string, error) {
	var decoded map[string]interface{}
	if _, err := plist.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	fields := make(map[string]string, len(decoded))
	for k, v := range decoded {
		switch val := v.(type) {
		case string:
			fields[k] = val
		default:
			fields[k] = fmt.Sprintf("%v", val)
		}
	}
	return fields, nil
}

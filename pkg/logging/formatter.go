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

package logging

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Entry is a single log record handed to a Formatter.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
}

// Formatter renders an Entry into bytes, including any trailing newline.
type Formatter interface {
	Format(entry Entry) ([]byte, error)
}

// TextFormatter renders plain lines. Warnings and errors carry a level
// prefix; info lines are bare so the per-target report reads naturally.
type TextFormatter struct {
	// TimeFormat prepends a timestamp when non-empty.
	TimeFormat string
}

// Format renders entry as a text line.
func (f *TextFormatter) Format(entry Entry) ([]byte, error) {
	var b strings.Builder
	if f.TimeFormat != "" {
		b.WriteString(entry.Time.Format(f.TimeFormat))
		b.WriteByte(' ')
	}
	if entry.Level >= LevelWarn {
		fmt.Fprintf(&b, "[%s] ", strings.ToUpper(entry.Level.String()))
	}
	b.WriteString(entry.Message)
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// JSONFormatter renders one JSON object per line.
type JSONFormatter struct {
	// TimeFormat defaults to time.RFC3339.
	TimeFormat string
}

// Format renders entry as a JSON line.
func (f *JSONFormatter) Format(entry Entry) ([]byte, error) {
	timeFmt := f.TimeFormat
	if timeFmt == "" {
		timeFmt = time.RFC3339
	}
	data, err := json.Marshal(struct {
		Timestamp string `json:"timestamp"`
		Level     string `json:"level"`
		Message   string `json:"message"`
	}{
		Timestamp: entry.Time.Format(timeFmt),
		Level:     entry.Level.String(),
		Message:   entry.Message,
	})
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

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

// Package logging provides the leveled logging interface used throughout
// macsigcheck. Per-target reconciliation outcomes are reported through a
// Logger so the CLI can select level and output format from flags.
package logging

import "strings"

// Level is the severity of a log message.
type Level int

const (
	// LevelDebug is the most verbose level.
	LevelDebug Level = iota
	// LevelInfo is the default level; per-target outcomes log here.
	LevelInfo
	// LevelWarn reports recoverable conditions, such as an originator
	// being overwritten in freshen mode.
	LevelWarn
	// LevelError reports per-target and fatal failures.
	LevelError
	// LevelSilent disables all output.
	LevelSilent
)

// String returns the string form of a level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelSilent:
		return "silent"
	default:
		return "unknown"
	}
}

// ParseLevel parses a string into a Level, defaulting to LevelInfo for
// unrecognized input.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "silent", "none", "off":
		return LevelSilent
	default:
		return LevelInfo
	}
}

// Format selects the output encoding for log messages.
type Format int

const (
	// FormatText emits plain human-readable lines.
	FormatText Format = iota
	// FormatJSON emits one JSON object per line.
	FormatJSON
)

// String returns the string form of a format.
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// ParseFormat parses a string into a Format, defaulting to FormatText.
func ParseFormat(s string) Format {
	if strings.ToLower(strings.TrimSpace(s)) == "json" {
		return FormatJSON
	}
	return FormatText
}

// Logger is the leveled logging interface the reconciliation engine and
// CLI write to. Any backend implementing these methods can be plugged in;
// the built-in implementation is DefaultLogger.
type Logger interface {
	// Debug logs at debug level with printf-style formatting.
	Debug(format string, args ...interface{})
	// Info logs at info level with printf-style formatting.
	Info(format string, args ...interface{})
	// Warn logs at warn level with printf-style formatting.
	Warn(format string, args ...interface{})
	// Error logs at error level with printf-style formatting.
	Error(format string, args ...interface{})

	// GetLevel returns the minimum level that produces output.
	GetLevel() Level
}

// Default returns an info-level text logger writing to stderr.
func Default() Logger {
	return NewLogger(Options{Level: LevelInfo})
}

// EnsureLogger returns l, or a default logger when l is nil.
func EnsureLogger(l Logger) Logger {
	if l == nil {
		return Default()
	}
	return l
}

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

// Package options defines the command-line flag groups for the
// macsigcheck CLI.
package options

import (
	"github.com/spf13/cobra"

	"github.com/dsedivec/macsigcheck/pkg/logging"
)

// FlagAdder is implemented by any flag group that can register itself
// on a cobra command.
type FlagAdder interface {
	AddFlags(cmd *cobra.Command)
}

// RootOptions defines flags available on the root command.
type RootOptions struct {
	// LogLevel sets the minimum log level (debug, info, warn, error,
	// silent).
	LogLevel string
	// LogFormat sets the log output format (text, json).
	LogFormat string
	// Verbose is shorthand for --log-level=debug.
	Verbose bool
}

var _ FlagAdder = (*RootOptions)(nil)

// AddFlags adds root-level flags to the cobra command.
func (o *RootOptions) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "info",
		"set the minimum log level (debug, info, warn, error, silent)")
	cmd.PersistentFlags().StringVar(&o.LogFormat, "log-format", "text",
		"set the log output format (text, json)")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"enable debug output (same as --log-level=debug)")
}

// GetLogLevel returns the effective log level; --verbose wins over a
// less verbose --log-level.
func (o *RootOptions) GetLogLevel() logging.Level {
	level := logging.ParseLevel(o.LogLevel)
	if o.Verbose && level > logging.LevelDebug {
		level = logging.LevelDebug
	}
	return level
}

// GetLogFormat returns the log format based on the options.
func (o *RootOptions) GetLogFormat() logging.Format {
	return logging.ParseFormat(o.LogFormat)
}

// NewLogger creates a logger from the root options.
func (o *RootOptions) NewLogger() logging.Logger {
	return logging.NewLogger(logging.Options{
		Level:  o.GetLogLevel(),
		Format: o.GetLogFormat(),
	})
}

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

// Package store implements the persistent signature-expectations store:
// an ordered mapping from canonical path keys to expectation records,
// with the path-key resolution algorithm that recognizes the different
// spellings of one target (raw, normalized, tilde-expanded,
// home-relative) as the same logical entity.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config configures a Store.
type Config struct {
	// Path is the location of the persisted store file.
	Path string
	// HomeDir is the user's home directory. Empty means look it up via
	// os.UserHomeDir. Tests pin this to a fixed value.
	HomeDir string
	// SubstituteHome enables home-relative canonical keys, so the store
	// stays portable across machines with different home directories.
	SubstituteHome bool
}

// Store is the durable mapping from canonical keys to expectation
// records. Iteration order is insertion order (file order after Load);
// serialization order is sorted, so saved files are diff-friendly.
type Store struct {
	path           string
	homeDir        string
	substituteHome bool

	keys    []string
	records map[string]Record
	dirty   bool
}

// New creates an empty store without touching the filesystem.
func New(cfg Config) (*Store, error) {
	homeDir := cfg.HomeDir
	if homeDir == "" {
		var err error
		homeDir, err = os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("determining home directory: %w", err)
		}
	}
	return &Store{
		path:           cfg.Path,
		homeDir:        filepath.Clean(homeDir),
		substituteHome: cfg.SubstituteHome,
		records:        make(map[string]Record),
	}, nil
}

// Load creates a store and reads the persisted file at cfg.Path. A
// missing file yields an empty store (first run); a malformed file is a
// fatal data-format error with no partial recovery.
func Load(cfg Config) (*Store, error) {
	s, err := New(cfg)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading signature store %q: %w", s.path, err)
	}
	if err := s.decode(data); err != nil {
		return nil, fmt.Errorf("parsing signature store %q: %w", s.path, err)
	}
	return s, nil
}

// decode reads a JSON object of records, preserving key order. Unknown
// record fields are tolerated; the file is user-edited state and an
// extra annotation must not make it unreadable.
func (s *Store) decode(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected string key, got %v", keyTok)
		}
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("record for %q: %w", key, err)
		}
		s.put(key, rec)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// put inserts without marking the store dirty. Used by decode.
func (s *Store) put(key string, rec Record) {
	if _, ok := s.records[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.records[key] = rec
}

// Path returns the configured store file location.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.keys)
}

// Keys returns the store keys in insertion order.
func (s *Store) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Get returns the record for key. The boolean is false when the key is
// not tracked; absence is a first-class state, not an empty record.
func (s *Store) Get(key string) (Record, bool) {
	rec, ok := s.records[key]
	return rec, ok
}

// Set inserts or replaces the record for key and marks the store
// changed. New keys append to the iteration order.
func (s *Store) Set(key string, rec Record) {
	s.put(key, rec)
	s.dirty = true
}

// Delete removes key from the store. Reconciliation never deletes
// records; this exists for external maintenance of the store.
func (s *Store) Delete(key string) {
	if _, ok := s.records[key]; !ok {
		return
	}
	delete(s.records, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	s.dirty = true
}

// Dirty reports whether any record changed since Load or the last Save.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Save serializes the full mapping deterministically (sorted keys,
// two-space indent, trailing newline) and atomically replaces the store
// file. Write failure is surfaced to the caller; there is no retry.
func (s *Store) Save() error {
	// encoding/json sorts map keys, which gives the stable ordering the
	// on-disk format requires.
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing signature store: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".macsigcheck-*")
	if err != nil {
		return fmt.Errorf("creating temporary store file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing signature store: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("writing signature store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing signature store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing signature store %q: %w", s.path, err)
	}
	s.dirty = false
	return nil
}

// Resolve maps an arbitrary path spelling to (usablePath, key, found).
// usablePath is the tilde-expanded path for filesystem access and for
// the assessment call. key is the first candidate spelling already
// present in the store, or, when none is, the proposed canonical key
// for a brand-new record (home-relative when substitution is enabled
// and the path lies under the home directory).
func (s *Store) Resolve(path string) (usablePath, key string, found bool) {
	normalized := filepath.Clean(path)
	expanded := s.expandHome(normalized)

	candidates := []string{path, normalized, expanded}
	homeRel := normalized
	if s.substituteHome {
		if rel, ok := s.homeRelative(normalized); ok {
			homeRel = rel
			candidates = append(candidates, rel)
		}
	}

	for _, c := range candidates {
		if _, ok := s.records[c]; ok {
			return expanded, c, true
		}
	}
	return expanded, homeRel, false
}

// expandHome replaces a leading "~" with the user's home directory.
func (s *Store) expandHome(path string) string {
	if path == "~" {
		return s.homeDir
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(s.homeDir, rest)
	}
	return path
}

// homeRelative rewrites a path under the home directory into the "~"
// form. ok is false when the path is not the home directory or a proper
// subpath of it.
func (s *Store) homeRelative(path string) (string, bool) {
	if path == s.homeDir {
		return "~", true
	}
	if rest, ok := strings.CutPrefix(path, s.homeDir+string(filepath.Separator)); ok {
		return "~/" + rest, true
	}
	return "", false
}

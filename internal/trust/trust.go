// Package trust implements the allow-list that gates execution of
// configuration scripts. A .gonchrc pulled from a checkout is arbitrary
// code; before executing one, gonch compares its content digest against
// the digest recorded when the user last approved that exact file.
package trust

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// State describes the trust store's verdict on a file.
type State int

const (
	// StateUnknown means the file has never been approved.
	StateUnknown State = iota
	// StateTrusted means the file's contents match the approved digest.
	StateTrusted
	// StateChanged means the file was approved before but its contents
	// have changed since.
	StateChanged
)

func (s State) String() string {
	switch s {
	case StateTrusted:
		return "trusted"
	case StateChanged:
		return "changed"
	default:
		return "unknown"
	}
}

// Entry records a single approval.
type Entry struct {
	Digest    string    `json:"digest"`
	AllowedAt time.Time `json:"allowed_at"`
}

// Store is the persisted mapping of absolute file path to approval entry.
type Store struct {
	path    string
	entries map[string]Entry
}

// NewStore opens the trust store at path, loading existing entries if the
// file exists.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:    path,
		entries: map[string]Entry{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read trust store: %w", err)
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("trust store %s is corrupt: %w", path, err)
	}

	return s, nil
}

// Digest returns the hex-encoded SHA-1 digest of the file's contents.
// SHA-1 is fixed by the on-disk format of the trust store.
func Digest(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:]), nil
}

// Check reports whether the file at filePath is trusted in its current form.
func (s *Store) Check(filePath string) (State, error) {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return StateUnknown, err
	}

	entry, ok := s.entries[abs]
	if !ok {
		return StateUnknown, nil
	}

	digest, err := Digest(abs)
	if err != nil {
		return StateUnknown, err
	}

	if digest != entry.Digest {
		return StateChanged, nil
	}
	return StateTrusted, nil
}

// Allow records the file's current digest as approved and persists the store.
func (s *Store) Allow(filePath string) error {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return err
	}

	digest, err := Digest(abs)
	if err != nil {
		return err
	}

	s.entries[abs] = Entry{
		Digest:    digest,
		AllowedAt: time.Now(),
	}
	return s.save()
}

// Deny removes the file's approval and persists the store. Denying a file
// that was never approved is an error.
func (s *Store) Deny(filePath string) error {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return err
	}

	if _, ok := s.entries[abs]; !ok {
		return fmt.Errorf("%s is not in the trust store", abs)
	}

	delete(s.entries, abs)
	return s.save()
}

// Entries returns a copy of the approval map, keyed by absolute path.
func (s *Store) Entries() map[string]Entry {
	out := make(map[string]Entry, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create trust store directory: %w", err)
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write trust store: %w", err)
	}
	return nil
}

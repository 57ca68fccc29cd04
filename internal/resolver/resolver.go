// Package resolver locates configuration files by walking up parent
// directories from the working directory.
package resolver

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no configuration file exists between the
// starting directory and the home directory.
var ErrNotFound = errors.New("config file not found")

// Resolve finds name by walking up from the current working directory to
// the user's home directory, and returns its absolute path.
func Resolve(name string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return ResolveFrom(cwd, homeDir, name)
}

// ResolveFrom walks up from startDir looking for name. The walk stops at
// (and includes) homeDir, or at the filesystem root when startDir is not
// under homeDir.
func ResolveFrom(startDir, homeDir, name string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	home, err := filepath.Abs(homeDir)
	if err != nil {
		return "", err
	}

	for {
		target := filepath.Join(dir, name)
		if _, err := os.Stat(target); err == nil {
			return target, nil
		}

		if dir == home {
			return "", ErrNotFound
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

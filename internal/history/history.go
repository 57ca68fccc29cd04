// Package history persists the inputs typed into a shell session so that
// backends can offer up/down history navigation across sessions.
package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type Manager struct {
	db         *gorm.DB
	markerPath string
}

type Entry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`

	Input string
}

const (
	historySchemaVersion = 1
)

// NewManager opens (or creates) the history database at dbFilePath. The
// schema version marker lives next to the database file.
func NewManager(dbFilePath string) (*Manager, error) {
	dbFileExists := true
	if _, err := os.Stat(dbFilePath); errors.Is(err, os.ErrNotExist) {
		dbFileExists = false
	} else if err != nil {
		return nil, fmt.Errorf("error checking history db: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error opening history db: %w", err)
	}

	m := &Manager{
		db:         db,
		markerPath: filepath.Join(filepath.Dir(dbFilePath), "history_schema_version"),
	}

	if m.needsMigration(dbFileExists) {
		if err := db.AutoMigrate(&Entry{}); err != nil {
			return nil, fmt.Errorf("error migrating history schema: %w", err)
		}
		if err := m.writeSchemaVersion(historySchemaVersion); err != nil {
			return nil, fmt.Errorf("error writing history schema version: %w", err)
		}
	}

	return m, nil
}

func (m *Manager) needsMigration(dbFileExists bool) bool {
	if !dbFileExists {
		return true
	}

	if matches, err := m.schemaVersionMatches(); err != nil || !matches {
		return true
	}

	// If the version marker is present but the table is missing (corruption
	// or manual deletion), re-run migrations to restore the schema.
	return !m.db.Migrator().HasTable(&Entry{})
}

func (m *Manager) writeSchemaVersion(version int) error {
	return os.WriteFile(m.markerPath, []byte(strconv.Itoa(version)), 0644)
}

func (m *Manager) schemaVersionMatches() (bool, error) {
	data, err := os.ReadFile(m.markerPath)
	if err != nil {
		return false, err
	}
	version, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return false, err
	}
	if version != historySchemaVersion {
		return false, fmt.Errorf("history schema version mismatch: got %d, want %d", version, historySchemaVersion)
	}
	return true, nil
}

// Record stores one input line. Blank lines are ignored.
func (m *Manager) Record(input string) (*Entry, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}

	entry := Entry{Input: input}
	if result := m.db.Create(&entry); result.Error != nil {
		return nil, result.Error
	}
	return &entry, nil
}

// Recent returns up to limit entries in chronological order (oldest first).
func (m *Manager) Recent(limit int) ([]Entry, error) {
	var entries []Entry
	result := m.db.Order("id desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// RecentInputs returns the inputs of the most recent entries, newest first,
// which is the order history navigation wants.
func (m *Manager) RecentInputs(limit int) ([]string, error) {
	var entries []Entry
	result := m.db.Order("id desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	inputs := make([]string, len(entries))
	for i, e := range entries {
		inputs[i] = e.Input
	}
	return inputs, nil
}

// Reset deletes all history entries.
func (m *Manager) Reset() error {
	result := m.db.Exec("DELETE FROM entries")
	if result.Error != nil {
		return result.Error
	}
	return nil
}

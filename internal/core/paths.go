package core

import (
	"os"
	"path/filepath"
)

// ConfigFileName is the name of the configuration script gonch looks for
// in the working directory and its ancestors.
const ConfigFileName = ".gonchrc"

type Paths struct {
	HomeDir     string
	DataDir     string
	LogFile     string
	TrustFile   string
	HistoryFile string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths == nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}

		defaultPaths = &Paths{
			HomeDir:     homeDir,
			DataDir:     filepath.Join(homeDir, ".gonch"),
			LogFile:     filepath.Join(homeDir, ".gonch", "gonch.log"),
			TrustFile:   filepath.Join(homeDir, ".gonch", "trust.json"),
			HistoryFile: filepath.Join(homeDir, ".gonch", "history.db"),
		}

		err = os.MkdirAll(defaultPaths.DataDir, 0755)
		if err != nil {
			panic(err)
		}
	}
}

func HomeDir() string {
	ensureDefaultPaths()
	return defaultPaths.HomeDir
}

func DataDir() string {
	ensureDefaultPaths()
	return defaultPaths.DataDir
}

func LogFile() string {
	ensureDefaultPaths()
	return defaultPaths.LogFile
}

func TrustFile() string {
	ensureDefaultPaths()
	return defaultPaths.TrustFile
}

func HistoryFile() string {
	ensureDefaultPaths()
	return defaultPaths.HistoryFile
}

// ResetPaths clears the cached paths, forcing them to be reinitialized.
// This is primarily used for testing purposes.
func ResetPaths() {
	defaultPaths = nil
}

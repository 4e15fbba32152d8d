// Package config resolves where todo keeps its data. The storage root
// is resolved once at startup and passed into the storage layer
// explicitly, never recomputed per operation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// storageDirName is the default per-user storage directory under $HOME.
const storageDirName = ".todo"

// Config holds the resolved runtime settings.
type Config struct {
	// Root is the storage directory holding todo.json and logs.
	Root string
	// Debug enables debug-level logging.
	Debug bool
}

// Resolve builds the config. An empty dataDir falls back to ~/.todo.
func Resolve(dataDir string, debug bool) (Config, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, storageDirName)
	}
	return Config{Root: dataDir, Debug: debug}, nil
}

// LogDir returns the directory that log files are written to.
func (c Config) LogDir() string {
	return filepath.Join(c.Root, "logs")
}

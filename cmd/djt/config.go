package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/franz/djtool/internal/store"
	"github.com/spf13/viper"
)

// catalogPath resolves the scanner catalog location: flag/env/config first,
// then the fixed user-scoped default.
func catalogPath() string {
	if p := viper.GetString("catalog"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "catalog.db"
	}
	return filepath.Join(home, ".djtool", "catalog.db")
}

// mixxxDBPath resolves the external Mixxx library database location
func mixxxDBPath() string {
	if p := viper.GetString("mixxx-db"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mixxx", "mixxxdb.sqlite")
}

// musicDir resolves the directory to scan; dirFlag wins when non-empty
func musicDir(dirFlag string) (string, error) {
	dir := dirFlag
	if dir == "" {
		dir = viper.GetString("music-dir")
	}
	if dir == "" {
		return "", fmt.Errorf("music directory is required (use --music-dir or set music-dir in config)")
	}
	if _, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("music directory not accessible: %w", err)
	}
	return dir, nil
}

// openCatalog opens the scanner catalog, creating its directory on first use
func openCatalog() (*store.Store, string, error) {
	path := catalogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create catalog directory: %w", err)
	}
	db, err := store.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open catalog: %w", err)
	}
	return db, path, nil
}

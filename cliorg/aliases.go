package cliorg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Aliases maps short org aliases to usernames, backed by a YAML file.
type Aliases struct {
	path string
}

// DefaultAliasPath returns the alias file path next to the global CLI
// configuration.
func DefaultAliasPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "sf", "aliases.yaml")
}

// NewAliases creates an alias map backed by the file at path.
func NewAliases(path string) *Aliases {
	return &Aliases{path: path}
}

// Resolve returns the username aliasOrUsername points at, or the input
// itself when no alias matches. A missing alias file resolves every input to
// itself.
func (a *Aliases) Resolve(aliasOrUsername string) (string, error) {
	entries, err := a.load()
	if err != nil {
		return "", err
	}
	if username, ok := entries[aliasOrUsername]; ok && username != "" {
		return username, nil
	}
	return aliasOrUsername, nil
}

// Set records alias as a name for username, creating the alias file if
// needed.
func (a *Aliases) Set(alias, username string) error {
	entries, err := a.load()
	if err != nil {
		return err
	}
	if entries == nil {
		entries = make(map[string]string)
	}
	entries[alias] = username

	if err := os.MkdirAll(filepath.Dir(a.path), 0o750); err != nil {
		return fmt.Errorf("failed to create alias directory: %w", err)
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(a.path, data, 0o600)
}

// Unset removes alias. Removing an alias that does not exist is not an error.
func (a *Aliases) Unset(alias string) error {
	entries, err := a.load()
	if err != nil {
		return err
	}
	if _, ok := entries[alias]; !ok {
		return nil
	}
	delete(entries, alias)
	data, err := yaml.Marshal(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(a.path, data, 0o600)
}

func (a *Aliases) load() (map[string]string, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var entries map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse alias file %s: %w", a.path, err)
	}
	return entries, nil
}

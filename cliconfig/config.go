// Package cliconfig reads and writes the layered CLI configuration shared by
// every plugin: a global file under the user's config directory, a local
// per-project file, and environment variable overrides.
//
// Lookup precedence, highest first: environment, local file, global file.
package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const appDirName = "sf"

// Source is the read capability flag resolution needs from configuration.
type Source interface {
	// Get returns the resolved value for key and whether one is set.
	Get(key Key) (string, bool)
}

// EnvSourceName is the source label reported for environment overrides.
const EnvSourceName = "env"

// Aggregator merges configuration from environment variables, a local
// project file, and a global file. The zero value is not usable; call New.
type Aggregator struct {
	globalPath string
	localPath  string
	envPrefix  string
	lookupEnv  func(string) (string, bool)
}

var _ Source = (*Aggregator)(nil)

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithGlobalPath overrides the global config file path.
func WithGlobalPath(path string) Option {
	return func(a *Aggregator) { a.globalPath = path }
}

// WithLocalPath overrides the local config file path.
func WithLocalPath(path string) Option {
	return func(a *Aggregator) { a.localPath = path }
}

// WithEnvPrefix overrides the environment variable prefix. Defaults to "SF".
func WithEnvPrefix(prefix string) Option {
	return func(a *Aggregator) { a.envPrefix = prefix }
}

// WithEnvLookup replaces the environment lookup function, for tests.
func WithEnvLookup(fn func(string) (string, bool)) Option {
	return func(a *Aggregator) { a.lookupEnv = fn }
}

// New creates an Aggregator with default paths: the global file at
// ~/.config/sf/config.yaml and the local file at ./.sf/config.yaml.
func New(opts ...Option) *Aggregator {
	home, _ := os.UserHomeDir()
	a := &Aggregator{
		globalPath: filepath.Join(home, ".config", appDirName, "config.yaml"),
		localPath:  filepath.Join(".", "."+appDirName, "config.yaml"),
		envPrefix:  "SF",
		lookupEnv:  os.LookupEnv,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GlobalPath returns the global config file path.
func (a *Aggregator) GlobalPath() string { return a.globalPath }

// LocalPath returns the local config file path.
func (a *Aggregator) LocalPath() string { return a.localPath }

// Get returns the resolved value for key and whether one is set.
func (a *Aggregator) Get(key Key) (string, bool) {
	value, _, ok := a.GetWithSource(key)
	return value, ok
}

// GetWithSource resolves key and reports where the value came from:
// EnvSourceName, the local file path, or the global file path.
func (a *Aggregator) GetWithSource(key Key) (value, source string, ok bool) {
	if validateKey(key) != nil {
		return "", "", false
	}
	if v, found := a.lookupEnv(key.EnvVar(a.envPrefix)); found && v != "" {
		return v, EnvSourceName, true
	}
	for _, path := range []string{a.localPath, a.globalPath} {
		values, err := readConfigFile(path)
		if err != nil {
			continue
		}
		if v, found := values[string(key)]; found && v != "" {
			return v, path, true
		}
	}
	return "", "", false
}

// ValueWithSource holds a resolved config value and its source.
type ValueWithSource struct {
	Value  string
	Source string
}

// List returns every known key with its resolved value and source. Unset
// keys are included with empty value and source.
func (a *Aggregator) List() map[Key]ValueWithSource {
	result := make(map[Key]ValueWithSource, len(KnownKeys()))
	for _, key := range KnownKeys() {
		value, source, _ := a.GetWithSource(key)
		result[key] = ValueWithSource{Value: value, Source: source}
	}
	return result
}

// Scope selects which config file a write applies to.
type Scope int

const (
	// GlobalScope writes to the per-user config file.
	GlobalScope Scope = iota
	// LocalScope writes to the per-project config file.
	LocalScope
)

// Set writes key=value to the config file selected by scope, preserving any
// other entries in the file.
func (a *Aggregator) Set(scope Scope, key Key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	path := a.scopePath(scope)
	values, err := readConfigFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if values == nil {
		values = make(map[string]string)
	}
	values[string(key)] = value
	return writeConfigFile(path, values)
}

// Unset removes key from the config file selected by scope. Removing a key
// that is not present is not an error.
func (a *Aggregator) Unset(scope Scope, key Key) error {
	if err := validateKey(key); err != nil {
		return err
	}
	path := a.scopePath(scope)
	values, err := readConfigFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if _, found := values[string(key)]; !found {
		return nil
	}
	delete(values, string(key))
	return writeConfigFile(path, values)
}

func (a *Aggregator) scopePath(scope Scope) string {
	if scope == LocalScope {
		return a.localPath
	}
	return a.globalPath
}

func readConfigFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var values map[string]string
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return values, nil
}

func writeConfigFile(path string, values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(values)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

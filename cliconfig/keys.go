package cliconfig

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned when a config key is not part of the supported set.
var ErrUnknownKey = errors.New("unknown config key")

// Key identifies a supported configuration value.
type Key string

// Supported configuration keys.
const (
	// OrgAPIVersion overrides the default API version used by commands.
	OrgAPIVersion Key = "org-api-version"
	// TargetOrg is the default org commands act on when --target-org is not given.
	TargetOrg Key = "target-org"
	// TargetDevHub is the default dev hub org when --target-dev-hub is not given.
	TargetDevHub Key = "target-dev-hub"
	// InstanceURL is the login endpoint used when authorizing new orgs.
	InstanceURL Key = "instance-url"
)

var keyDescriptions = map[Key]string{
	OrgAPIVersion: "API version to use for API requests, overriding command defaults",
	TargetOrg:     "username or alias of the default org",
	TargetDevHub:  "username or alias of the default dev hub org",
	InstanceURL:   "login URL used when authorizing an org",
}

// KnownKeys returns the supported keys in a stable order.
func KnownKeys() []Key {
	return []Key{OrgAPIVersion, TargetOrg, TargetDevHub, InstanceURL}
}

// Description returns the help text for k, or an empty string for unknown keys.
func Description(k Key) string {
	return keyDescriptions[k]
}

// EnvVar returns the environment variable that overrides k, e.g.
// "org-api-version" with prefix "SF" becomes "SF_ORG_API_VERSION".
func (k Key) EnvVar(prefix string) string {
	name := strings.ToUpper(strings.ReplaceAll(string(k), "-", "_"))
	if prefix == "" {
		return name
	}
	return prefix + "_" + name
}

func validateKey(k Key) error {
	if _, ok := keyDescriptions[k]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, k)
	}
	return nil
}

package sfplugins

import "errors"

// Error kinds surfaced by flag resolution. Each is wrapped with a rendered
// message from the climsg catalog; match with errors.Is.
var (
	// ErrInvalidAPIVersion reports input that does not look like an API version.
	ErrInvalidAPIVersion = errors.New("invalid API version")
	// ErrRetiredAPIVersion reports a version below the minimum the platform serves.
	ErrRetiredAPIVersion = errors.New("retired API version")
	// ErrNoDefaultEnv reports that no org was given and none could be resolved.
	ErrNoDefaultEnv = errors.New("no default environment")
	// ErrNoDefaultDevHub reports that no dev hub was given or configured.
	ErrNoDefaultDevHub = errors.New("no default dev hub")
	// ErrNotADevHub reports that the resolved org is not a Dev Hub.
	ErrNotADevHub = errors.New("not a dev hub")
)

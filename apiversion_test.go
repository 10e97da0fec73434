package sfplugins

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/k-capehart/sf-plugins-core/cliconfig"
)

func TestParseAPIVersion(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantErr     error
		wantWarning bool
	}{
		{name: "current version", input: "45.0"},
		{name: "bare integer", input: "45"},
		{name: "deprecated version", input: "25.0", wantWarning: true},
		{name: "deprecation ceiling", input: "30.0", wantWarning: true},
		{name: "just above ceiling", input: "31.0"},
		{name: "minimum supported", input: "21.0", wantWarning: true},
		{name: "retired version", input: "10.0", wantErr: ErrRetiredAPIVersion},
		{name: "just below minimum", input: "20", wantErr: ErrRetiredAPIVersion},
		{name: "not a number", input: "abc", wantErr: ErrInvalidAPIVersion},
		{name: "too many segments", input: "45.0.1", wantErr: ErrInvalidAPIVersion},
		{name: "negative", input: "-45.0", wantErr: ErrInvalidAPIVersion},
		{name: "empty", input: "", wantErr: ErrInvalidAPIVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var warnings Warnings
			got, err := ParseAPIVersion(tt.input, &warnings)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, warnings.Messages())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input, got, "parse should return the input unchanged")
			if tt.wantWarning {
				require.Len(t, warnings.Messages(), 1, "deprecation warning should be emitted exactly once")
				assert.Contains(t, warnings.Messages()[0], fmt.Sprint(MaxDeprecatedAPIVersion))
				assert.Contains(t, warnings.Messages()[0], APIVersionDeprecationURL)
			} else {
				assert.Empty(t, warnings.Messages())
			}
		})
	}
}

func TestParseAPIVersionFormatCheckedBeforeRange(t *testing.T) {
	// A malformed value that would also be out of range must fail as invalid,
	// not retired.
	_, err := ParseAPIVersion("7x", DiscardWarnings)
	require.ErrorIs(t, err, ErrInvalidAPIVersion)
	assert.NotErrorIs(t, err, ErrRetiredAPIVersion)
}

func TestParseAPIVersionErrorMessages(t *testing.T) {
	_, err := ParseAPIVersion("abc", DiscardWarnings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "abc", "invalid version error should name the input")

	_, err = ParseAPIVersion("10.0", DiscardWarnings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprint(MinSupportedAPIVersion),
		"retired version error should name the minimum supported version")
}

// resolveAPIVersion runs resolver.APIVersion inside a command invocation.
func resolveAPIVersion(t *testing.T, resolver *Resolver, args ...string) (string, bool, error) {
	t.Helper()
	var (
		value string
		ok    bool
		err   error
	)
	cmd := &cli.Command{
		Name:  "test",
		Flags: []cli.Flag{OrgAPIVersionFlag()},
		Action: func(_ context.Context, cmd *cli.Command) error {
			value, ok, err = resolver.APIVersion(cmd)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
	return value, ok, err
}

func TestResolverAPIVersionExplicit(t *testing.T) {
	var warnings Warnings
	resolver := NewResolver(WithConfig(mapConfig{}), WithWarnings(&warnings))

	value, ok, err := resolveAPIVersion(t, resolver, "--api-version", "45.0")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "45.0", value)
	assert.Empty(t, warnings.Messages())
}

func TestResolverAPIVersionConfiguredDefault(t *testing.T) {
	var warnings Warnings
	resolver := NewResolver(
		WithConfig(mapConfig{cliconfig.OrgAPIVersion: "45.0"}),
		WithWarnings(&warnings),
	)

	value, ok, err := resolveAPIVersion(t, resolver)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "45.0", value)
	require.Len(t, warnings.Messages(), 1, "configured default should emit an override notice")
	assert.Contains(t, warnings.Messages()[0], "45.0")
}

func TestResolverAPIVersionConfiguredDefaultValidated(t *testing.T) {
	resolver := NewResolver(
		WithConfig(mapConfig{cliconfig.OrgAPIVersion: "10.0"}),
		WithWarnings(&Warnings{}),
	)

	_, _, err := resolveAPIVersion(t, resolver)
	require.ErrorIs(t, err, ErrRetiredAPIVersion)
}

func TestResolverAPIVersionAbsent(t *testing.T) {
	var warnings Warnings
	resolver := NewResolver(WithConfig(mapConfig{}), WithWarnings(&warnings))

	value, ok, err := resolveAPIVersion(t, resolver)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
	assert.Empty(t, warnings.Messages())
}

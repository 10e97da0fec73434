// Package sfplugins provides reusable flag definitions for CLI plugins built
// on urfave/cli.
//
// Five flag definitions are exposed, each with its conventional name, short
// character, and help text from the message catalog:
//
//   - OrgAPIVersionFlag: --api-version, a validated platform API version
//   - OptionalOrgFlag / RequiredOrgFlag: --target-org / -o
//   - OptionalHubFlag / RequiredHubFlag: --target-dev-hub / -v
//
// Flag input is turned into values inside a command's Action through a
// Resolver, which carries the capabilities resolution needs: configuration
// lookups, session creation, and a warning sink.
//
//	resolver := sfplugins.NewResolver()
//
//	cmd := &cli.Command{
//	    Name:  "report",
//	    Flags: []cli.Flag{sfplugins.RequiredOrgFlag(), sfplugins.OrgAPIVersionFlag()},
//	    Action: func(ctx context.Context, cmd *cli.Command) error {
//	        org, err := resolver.RequiredOrg(ctx, cmd)
//	        if err != nil {
//	            return err
//	        }
//	        version, ok, err := resolver.APIVersion(cmd)
//	        ...
//	    },
//	}
//
// # Resolution behavior
//
// Org flags resolve an explicit value first and fall back to the configured
// default (target-org, or target-dev-hub for hub flags). The optional
// variants resolve to nil when no target is available or the target cannot
// be reached; the required variants fail with ErrNoDefaultEnv or
// ErrNoDefaultDevHub. Hub variants additionally check the Dev Hub predicate
// on the resolved org and fail with ErrNotADevHub when it does not hold,
// even for the optional variant.
//
// The API version flag validates explicit input against the supported range
// and falls back to the org-api-version configuration value, emitting an
// override notice when it does.
//
// # Warnings
//
// Non-fatal conditions (deprecated API versions, config overrides) are
// reported through the Resolver's WarningSink and never block resolution.
// Use WithWarnings to collect them, or leave the default, which logs through
// slog.
package sfplugins

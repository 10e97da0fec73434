package sfplugins

import (
	"github.com/urfave/cli/v3"

	"github.com/k-capehart/sf-plugins-core/climsg"
)

// Names of the flags defined by this package.
const (
	APIVersionFlagName   = "api-version"
	TargetOrgFlagName    = "target-org"
	TargetDevHubFlagName = "target-dev-hub"
)

// OrgAPIVersionFlag returns the --api-version flag definition. Input is
// validated up front by the flag itself; range warnings and the
// configuration fallback are applied by Resolver.APIVersion.
func OrgAPIVersionFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    APIVersionFlagName,
		Usage:   climsg.Default().Render("flags.apiVersion.summary"),
		Sources: cli.EnvVars("SF_ORG_API_VERSION"),
		Validator: func(input string) error {
			_, err := ParseAPIVersion(input, DiscardWarnings)
			return err
		},
	}
}

// OptionalOrgFlag returns the --target-org flag definition for commands that
// can run without an org. Resolve it with Resolver.OptionalOrg.
func OptionalOrgFlag() *cli.StringFlag {
	return targetOrgFlag()
}

// RequiredOrgFlag returns the --target-org flag definition for commands that
// need an org. The flag itself stays optional at parse time because the
// value may come from the target-org configuration default; requiredness is
// enforced by Resolver.RequiredOrg.
func RequiredOrgFlag() *cli.StringFlag {
	return targetOrgFlag()
}

// OptionalHubFlag returns the --target-dev-hub flag definition for commands
// that can run without a dev hub. Resolve it with Resolver.OptionalHub.
func OptionalHubFlag() *cli.StringFlag {
	return targetDevHubFlag()
}

// RequiredHubFlag returns the --target-dev-hub flag definition for commands
// that need a dev hub. As with RequiredOrgFlag, requiredness is enforced at
// resolution time by Resolver.RequiredHub so the configured default can
// satisfy it.
func RequiredHubFlag() *cli.StringFlag {
	return targetDevHubFlag()
}

func targetOrgFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        TargetOrgFlagName,
		Aliases:     []string{"o"},
		Usage:       climsg.Default().Render("flags.targetOrg.summary"),
		Sources:     cli.EnvVars("SF_TARGET_ORG"),
		DefaultText: "configured target-org",
	}
}

func targetDevHubFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        TargetDevHubFlagName,
		Aliases:     []string{"v"},
		Usage:       climsg.Default().Render("flags.targetDevHub.summary"),
		Sources:     cli.EnvVars("SF_TARGET_DEV_HUB"),
		DefaultText: "configured target-dev-hub",
	}
}

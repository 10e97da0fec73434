package sfplugins

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/urfave/cli/v3"

	"github.com/k-capehart/sf-plugins-core/cliconfig"
	"github.com/k-capehart/sf-plugins-core/climsg"
)

// Fixed API version policy values.
const (
	// MinSupportedAPIVersion is the lowest version the platform still serves.
	// Anything below it is retired and rejected.
	MinSupportedAPIVersion = 21
	// MaxDeprecatedAPIVersion is the highest version covered by the
	// platform's deprecation notice. Versions at or below it still parse but
	// emit a warning.
	MaxDeprecatedAPIVersion = 30
	// APIVersionDeprecationURL points at the deprecation notice referenced by
	// the warning.
	APIVersionDeprecationURL = "https://help.salesforce.com/s/articleView?id=000381744&type=1"
)

// apiVersionPattern matches numeric-dot-numeric or bare integer input,
// e.g. "54.0" or "54".
var apiVersionPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("apiversion", func(fl validator.FieldLevel) bool {
		return apiVersionPattern.MatchString(fl.Field().String())
	})
	return v
}

// ParseAPIVersion validates an API version supplied on the command line and
// returns it unchanged. Format problems are reported before range rules.
// Versions at or below MaxDeprecatedAPIVersion parse successfully but emit
// one deprecation warning to warn.
func ParseAPIVersion(input string, warn WarningSink) (string, error) {
	if err := validate.Var(input, "apiversion"); err != nil {
		return "", fmt.Errorf("%s: %w", climsg.Default().Render("errors.invalidApiVersion", input), ErrInvalidAPIVersion)
	}
	major, err := strconv.Atoi(strings.SplitN(input, ".", 2)[0])
	if err != nil {
		return "", fmt.Errorf("%s: %w", climsg.Default().Render("errors.invalidApiVersion", input), ErrInvalidAPIVersion)
	}
	if major < MinSupportedAPIVersion {
		return "", fmt.Errorf("%s: %w", climsg.Default().Render("errors.retiredApiVersion", MinSupportedAPIVersion), ErrRetiredAPIVersion)
	}
	if major <= MaxDeprecatedAPIVersion {
		warn.Warn(climsg.Default().Render("warnings.apiVersionDeprecation", MaxDeprecatedAPIVersion, APIVersionDeprecationURL))
	}
	return input, nil
}

// APIVersion resolves the --api-version flag for cmd. Explicit input is
// validated with ParseAPIVersion; otherwise the org-api-version
// configuration value is used, with an override notice emitted before it is
// validated the same way. ok is false when neither is present.
func (r *Resolver) APIVersion(cmd *cli.Command) (value string, ok bool, err error) {
	if input := cmd.String(APIVersionFlagName); input != "" {
		v, err := ParseAPIVersion(input, r.warnings)
		if err != nil {
			return "", false, err
		}
		return v, true, nil
	}

	configured, found := r.config.Get(cliconfig.OrgAPIVersion)
	if !found {
		return "", false, nil
	}
	r.warnings.Warn(climsg.Default().Render("warnings.apiVersionOverride", configured))
	v, err := ParseAPIVersion(configured, r.warnings)
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

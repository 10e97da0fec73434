package sfplugins

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/k-capehart/sf-plugins-core/cliconfig"
	"github.com/k-capehart/sf-plugins-core/clilog"
	"github.com/k-capehart/sf-plugins-core/cliorg"
	"github.com/k-capehart/sf-plugins-core/climsg"
)

// Session is the org handle capability flag resolution needs: an identity
// and the Dev Hub predicate. The default SessionFactory returns *cliorg.Org
// values, which carry the full authenticated HTTP client as well.
type Session interface {
	Username() string
	IsDevHub(ctx context.Context) (bool, error)
}

// SessionFactory creates connected org sessions from an alias or username.
type SessionFactory interface {
	Create(ctx context.Context, aliasOrUsername string) (Session, error)
}

// Resolver turns flag input into resolved values. It carries its
// collaborators explicitly: configuration lookups, session creation, and
// the sink that receives non-fatal warnings.
type Resolver struct {
	config   cliconfig.Source
	sessions SessionFactory
	warnings WarningSink
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithConfig sets the configuration source. Defaults to cliconfig.New().
func WithConfig(src cliconfig.Source) ResolverOption {
	return func(r *Resolver) { r.config = src }
}

// WithSessions sets the session factory. Defaults to a cliorg.Connector
// using the OS keychain and the standard alias file.
func WithSessions(factory SessionFactory) ResolverOption {
	return func(r *Resolver) { r.sessions = factory }
}

// WithWarnings sets the warning sink. Defaults to logging through
// slog.Default().
func WithWarnings(sink WarningSink) ResolverOption {
	return func(r *Resolver) { r.warnings = sink }
}

// NewResolver creates a Resolver with defaults for any collaborator not
// supplied via options.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	if r.config == nil {
		r.config = cliconfig.New()
	}
	if r.sessions == nil {
		r.sessions = connectorFactory{connector: cliorg.NewConnector()}
	}
	if r.warnings == nil {
		r.warnings = clilog.WarnTo(slog.Default())
	}
	return r
}

// connectorFactory adapts cliorg.Connector to the SessionFactory capability.
type connectorFactory struct {
	connector *cliorg.Connector
}

func (f connectorFactory) Create(ctx context.Context, aliasOrUsername string) (Session, error) {
	org, err := f.connector.Create(ctx, aliasOrUsername)
	if err != nil {
		return nil, err
	}
	return org, nil
}

// orgTarget determines the identifier to resolve: explicit flag input first,
// then the configured default under key.
func (r *Resolver) orgTarget(cmd *cli.Command, flagName string, key cliconfig.Key) string {
	if input := cmd.String(flagName); input != "" {
		return input
	}
	value, _ := r.config.Get(key)
	return value
}

// OptionalOrg resolves --target-org to a session, or to nil when no target
// is available or the target cannot be reached. It never fails on an
// unresolvable target.
func (r *Resolver) OptionalOrg(ctx context.Context, cmd *cli.Command) (Session, error) {
	target := r.orgTarget(cmd, TargetOrgFlagName, cliconfig.TargetOrg)
	if target == "" {
		return nil, nil
	}
	org, err := r.sessions.Create(ctx, target)
	if err != nil {
		return nil, nil
	}
	return org, nil
}

// RequiredOrg resolves --target-org to a session. It fails with
// ErrNoDefaultEnv when no target is available or the target cannot be
// reached; the underlying creation failure stays visible in the error chain.
func (r *Resolver) RequiredOrg(ctx context.Context, cmd *cli.Command) (Session, error) {
	target := r.orgTarget(cmd, TargetOrgFlagName, cliconfig.TargetOrg)
	if target == "" {
		return nil, fmt.Errorf("%s: %w", climsg.Default().Render("errors.noDefaultEnv"), ErrNoDefaultEnv)
	}
	org, err := r.sessions.Create(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", climsg.Default().Render("errors.noDefaultEnv"), ErrNoDefaultEnv, err)
	}
	return org, nil
}

// OptionalHub resolves --target-dev-hub to a session, or to nil when no
// target is available or the target cannot be reached. A target that
// resolves to an org that is not a Dev Hub still fails with ErrNotADevHub.
func (r *Resolver) OptionalHub(ctx context.Context, cmd *cli.Command) (Session, error) {
	target := r.orgTarget(cmd, TargetDevHubFlagName, cliconfig.TargetDevHub)
	if target == "" {
		return nil, nil
	}
	org, err := r.sessions.Create(ctx, target)
	if err != nil {
		return nil, nil
	}
	return r.ensureDevHub(ctx, org)
}

// RequiredHub resolves --target-dev-hub to a session. A missing target fails
// with ErrNoDefaultDevHub, a session-creation failure propagates as-is, and
// an org that is not a Dev Hub fails with ErrNotADevHub.
func (r *Resolver) RequiredHub(ctx context.Context, cmd *cli.Command) (Session, error) {
	target := r.orgTarget(cmd, TargetDevHubFlagName, cliconfig.TargetDevHub)
	if target == "" {
		return nil, fmt.Errorf("%s: %w", climsg.Default().Render("errors.noDefaultDevHub"), ErrNoDefaultDevHub)
	}
	org, err := r.sessions.Create(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("failed to create a session for %q: %w", target, err)
	}
	return r.ensureDevHub(ctx, org)
}

// ensureDevHub checks the Dev Hub predicate on a resolved org.
func (r *Resolver) ensureDevHub(ctx context.Context, org Session) (Session, error) {
	isHub, err := org.IsDevHub(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check dev hub status for %s: %w", org.Username(), err)
	}
	if !isHub {
		return nil, fmt.Errorf("%s: %w", climsg.Default().Render("errors.notADevHub", org.Username()), ErrNotADevHub)
	}
	return org, nil
}

// DefaultOrgHelp resolves the configured default org and returns its
// username for display in help text. Resolution runs fresh on every call;
// any failure renders as an empty string.
func (r *Resolver) DefaultOrgHelp(ctx context.Context) string {
	return r.defaultHelp(ctx, cliconfig.TargetOrg)
}

// DefaultHubHelp is DefaultOrgHelp for the configured default dev hub.
func (r *Resolver) DefaultHubHelp(ctx context.Context) string {
	return r.defaultHelp(ctx, cliconfig.TargetDevHub)
}

func (r *Resolver) defaultHelp(ctx context.Context, key cliconfig.Key) string {
	target, ok := r.config.Get(key)
	if !ok {
		return ""
	}
	org, err := r.sessions.Create(ctx, target)
	if err != nil {
		return ""
	}
	return org.Username()
}

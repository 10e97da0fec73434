package cliorg

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

const keychainService = "sf"

// Connector creates Org sessions from stored credentials: it resolves
// aliases, loads the credential record for the username, builds a
// refresh-capable token source, and verifies the org answers before handing
// the session back.
type Connector struct {
	store      CredentialStore
	aliases    *Aliases
	httpClient *http.Client
}

// ConnectorOption configures a Connector.
type ConnectorOption func(*Connector)

// WithStore sets a custom CredentialStore instead of the default KeychainStore.
func WithStore(store CredentialStore) ConnectorOption {
	return func(c *Connector) { c.store = store }
}

// WithAliases sets a custom alias map instead of the default alias file.
func WithAliases(aliases *Aliases) ConnectorOption {
	return func(c *Connector) { c.aliases = aliases }
}

// WithHTTPClient sets the HTTP client used for token refresh and org
// requests (useful for testing or proxies).
func WithHTTPClient(client *http.Client) ConnectorOption {
	return func(c *Connector) { c.httpClient = client }
}

// NewConnector creates a Connector with sensible defaults: the OS keychain
// for credentials and the alias file next to the global CLI configuration.
func NewConnector(opts ...ConnectorOption) *Connector {
	c := &Connector{
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = NewKeychainStore(keychainService)
	}
	if c.aliases == nil {
		c.aliases = NewAliases(DefaultAliasPath())
	}
	return c
}

// Create resolves aliasOrUsername to a connected Org session. It fails with
// ErrNoAuthInfo (wrapped) when no credentials are stored for the resolved
// username, and with a connection error when the org does not answer.
func (c *Connector) Create(ctx context.Context, aliasOrUsername string) (*Org, error) {
	username, err := c.aliases.Resolve(aliasOrUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve alias %q: %w", aliasOrUsername, err)
	}

	data, err := c.store.Load(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials for %s: %w", username, err)
	}
	rec, err := unmarshalRecord(data)
	if err != nil {
		return nil, fmt.Errorf("invalid credential record for %s: %w", username, err)
	}

	org := &Org{
		username:    rec.Username,
		alias:       rec.Alias,
		instanceURL: rec.InstanceURL,
		client:      c.authClient(ctx, rec),
	}
	if org.username == "" {
		org.username = username
	}

	if err := org.verify(ctx); err != nil {
		return nil, err
	}
	return org, nil
}

// authClient builds an HTTP client carrying the record's credentials. A
// record with a refresh token gets a refresh-capable source pointed at the
// org's token endpoint; otherwise the stored access token is used as-is.
func (c *Connector) authClient(ctx context.Context, rec *authRecord) *http.Client {
	httpCtx := ctx
	if c.httpClient != nil && c.httpClient != http.DefaultClient {
		httpCtx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	}

	tok := rec.token()
	var src oauth2.TokenSource
	if rec.RefreshToken != "" {
		conf := &oauth2.Config{
			ClientID: rec.ClientID,
			Endpoint: oauth2.Endpoint{
				TokenURL: rec.InstanceURL + "/services/oauth2/token",
			},
		}
		src = conf.TokenSource(httpCtx, tok)
	} else {
		src = oauth2.StaticTokenSource(tok)
	}
	return oauth2.NewClient(httpCtx, src)
}

// verify probes the org's version listing to confirm the session is usable.
func (o *Org) verify(ctx context.Context) error {
	endpoint := o.instanceURL + "/services/data"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to org %s: %w", o.username, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("org %s rejected the connection: %s", o.username, resp.Status)
	}
	return nil
}

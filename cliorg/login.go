package cliorg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/cli/browser"
	"golang.org/x/oauth2"
)

// DefaultLoginURL is the production login endpoint used when LoginConfig
// does not name one.
const DefaultLoginURL = "https://login.salesforce.com"

// LoginConfig configures a device-code login.
type LoginConfig struct {
	// ClientID is the connected-app client id. Required.
	ClientID string
	// LoginURL is the login endpoint. Defaults to DefaultLoginURL.
	LoginURL string
	// Alias, when set, is recorded for the authenticated username.
	Alias string
	// Scopes to request. Optional.
	Scopes []string
	// Out receives the verification instructions. Defaults to os.Stderr.
	Out io.Writer
	// OpenBrowser opens the verification URL. Defaults to browser.OpenURL.
	OpenBrowser func(url string) error
	// HTTPClient overrides the HTTP client used for the flow.
	HTTPClient *http.Client
	// Store receives the credential record. Defaults to the OS keychain.
	Store CredentialStore
	// Aliases receives the alias entry. Defaults to the alias file.
	Aliases *Aliases
}

// Login performs a Device Code flow against the platform login endpoint,
// persists the resulting credential record, and returns the username it
// authenticated as. The user is shown a verification URL and code on
// cfg.Out; when the authorization server supplies a complete verification
// URL it is also opened in the browser.
func Login(ctx context.Context, cfg LoginConfig) (string, error) {
	if cfg.ClientID == "" {
		return "", fmt.Errorf("login requires a client id")
	}
	if cfg.LoginURL == "" {
		cfg.LoginURL = DefaultLoginURL
	}
	if cfg.Out == nil {
		cfg.Out = os.Stderr
	}
	if cfg.OpenBrowser == nil {
		cfg.OpenBrowser = browser.OpenURL
	}
	if cfg.Store == nil {
		cfg.Store = NewKeychainStore(keychainService)
	}
	if cfg.Aliases == nil {
		cfg.Aliases = NewAliases(DefaultAliasPath())
	}

	oauthCfg := &oauth2.Config{
		ClientID: cfg.ClientID,
		Scopes:   cfg.Scopes,
		Endpoint: oauth2.Endpoint{
			TokenURL:      cfg.LoginURL + "/services/oauth2/token",
			DeviceAuthURL: cfg.LoginURL + "/services/oauth2/device",
		},
	}

	oauthCtx := ctx
	if cfg.HTTPClient != nil {
		oauthCtx = context.WithValue(ctx, oauth2.HTTPClient, cfg.HTTPClient)
	}

	da, err := oauthCfg.DeviceAuth(oauthCtx)
	if err != nil {
		return "", fmt.Errorf("device authorization failed: %w", err)
	}

	_, _ = fmt.Fprintf(cfg.Out, "Open this URL in your browser: %s\n", da.VerificationURI)
	_, _ = fmt.Fprintf(cfg.Out, "Enter code: %s\n", da.UserCode)
	if da.VerificationURIComplete != "" {
		_ = cfg.OpenBrowser(da.VerificationURIComplete)
	}

	tok, err := oauthCfg.DeviceAccessToken(oauthCtx, da)
	if err != nil {
		return "", fmt.Errorf("device token exchange failed: %w", err)
	}

	instanceURL := cfg.LoginURL
	if v, ok := tok.Extra("instance_url").(string); ok && v != "" {
		instanceURL = v
	}

	username, err := fetchUsername(oauthCtx, oauthCfg, tok, cfg.LoginURL)
	if err != nil {
		return "", err
	}

	rec := &authRecord{
		Username:     username,
		Alias:        cfg.Alias,
		InstanceURL:  instanceURL,
		ClientID:     cfg.ClientID,
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	}
	data, err := marshalRecord(rec)
	if err != nil {
		return "", err
	}
	if err := cfg.Store.Save(ctx, username, data); err != nil {
		return "", fmt.Errorf("failed to save credentials for %s: %w", username, err)
	}
	if cfg.Alias != "" {
		if err := cfg.Aliases.Set(cfg.Alias, username); err != nil {
			return "", fmt.Errorf("failed to record alias %s: %w", cfg.Alias, err)
		}
	}
	return username, nil
}

// fetchUsername asks the login endpoint's userinfo service who the token
// belongs to.
func fetchUsername(ctx context.Context, conf *oauth2.Config, tok *oauth2.Token, loginURL string) (string, error) {
	client := oauth2.NewClient(ctx, conf.TokenSource(ctx, tok))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loginURL+"/services/oauth2/userinfo", nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("user info request rejected: %s", resp.Status)
	}
	var info struct {
		PreferredUsername string `json:"preferred_username"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("failed to decode user info: %w", err)
	}
	if info.PreferredUsername == "" {
		return "", fmt.Errorf("user info response did not include a username")
	}
	return info.PreferredUsername, nil
}

// Package cliorg creates authenticated org sessions from locally stored
// credentials.
//
// A session is represented by Org: an HTTP client authenticated against one
// org, plus the identity metadata commands need (username, alias, instance
// URL). Credentials are persisted per username in the OS keychain, and
// aliases map short names to usernames via a YAML file next to the global
// CLI configuration.
package cliorg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// ErrNoAuthInfo is returned when no credentials are stored for a username.
var ErrNoAuthInfo = errors.New("no authentication info found")

// queryAPIVersion is the API version used for the org metadata queries this
// package issues itself. Commands pick their own version for their requests.
const queryAPIVersion = "45.0"

// Org is an authenticated session with a single org.
type Org struct {
	username    string
	alias       string
	instanceURL string
	client      *http.Client
}

// Username returns the username the session authenticated as.
func (o *Org) Username() string { return o.username }

// Alias returns the local alias for the org, or an empty string.
func (o *Org) Alias() string { return o.alias }

// InstanceURL returns the base URL of the org instance.
func (o *Org) InstanceURL() string { return o.instanceURL }

// Client returns an HTTP client that attaches the org's credentials to every
// request, refreshing the access token as needed.
func (o *Org) Client() *http.Client { return o.client }

// IsDevHub reports whether the org is a Dev Hub. The org is queried on every
// call; the answer is never cached on the handle.
//
// Detection follows the platform convention: only Dev Hub orgs expose the
// ScratchOrgInfo object, so a query against it succeeds exactly when the org
// is a hub. A rejection citing an invalid type means "not a hub" rather than
// an error.
func (o *Org) IsDevHub(ctx context.Context) (bool, error) {
	soql := url.QueryEscape("SELECT Id FROM ScratchOrgInfo LIMIT 1")
	endpoint := fmt.Sprintf("%s/services/data/v%s/query?q=%s", o.instanceURL, queryAPIVersion, soql)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to query org %s: %w", o.username, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode == http.StatusBadRequest:
		if invalidTypeResponse(resp.Body) {
			return false, nil
		}
		return false, fmt.Errorf("unexpected response from org %s: %s", o.username, resp.Status)
	default:
		return false, fmt.Errorf("unexpected response from org %s: %s", o.username, resp.Status)
	}
}

// invalidTypeResponse reports whether an error body is the platform's
// "sObject type is not supported" rejection.
func invalidTypeResponse(body io.Reader) bool {
	var apiErrors []struct {
		ErrorCode string `json:"errorCode"`
	}
	if err := json.NewDecoder(body).Decode(&apiErrors); err != nil {
		return false
	}
	for _, e := range apiErrors {
		if e.ErrorCode == "INVALID_TYPE" {
			return true
		}
	}
	return false
}

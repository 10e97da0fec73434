package cliorg

import (
	"encoding/json"
	"time"

	"golang.org/x/oauth2"
)

// authRecord is the JSON-serializable credential record stored for one org
// user.
type authRecord struct {
	Username     string    `json:"username"`
	Alias        string    `json:"alias,omitempty"`
	InstanceURL  string    `json:"instance_url"`
	ClientID     string    `json:"client_id,omitempty"`
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
}

func marshalRecord(rec *authRecord) ([]byte, error) {
	return json.Marshal(rec)
}

func unmarshalRecord(data []byte) (*authRecord, error) {
	var rec authRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *authRecord) token() *oauth2.Token {
	tokenType := r.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return &oauth2.Token{
		AccessToken:  r.AccessToken,
		TokenType:    tokenType,
		RefreshToken: r.RefreshToken,
		Expiry:       r.Expiry,
	}
}

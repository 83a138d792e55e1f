package domain

import (
	"fmt"
	"net/http"
	"strings"
)

// Credentials stores the ClickUp API credential.
// ClickUp uses personal API tokens passed verbatim in the Authorization
// header (no "Bearer" prefix for personal tokens).
type Credentials struct {
	Token string
}

// AuthenticationManager holds the ClickUp credential and provides
// authenticated HTTP clients for making API calls. The credential is
// supplied once at process start and never changes afterwards.
type AuthenticationManager struct {
	credentials *Credentials
}

// NewAuthenticationManager creates a new authentication manager.
func NewAuthenticationManager(credentials *Credentials) *AuthenticationManager {
	return &AuthenticationManager{
		credentials: credentials,
	}
}

// NewAuthenticationManagerFromConfig creates an authentication manager
// from a loaded configuration.
func NewAuthenticationManagerFromConfig(config *Config) *AuthenticationManager {
	return NewAuthenticationManager(&Credentials{
		Token: config.ClickUp.APIToken,
	})
}

// GetAuthenticatedClient returns an HTTP client with the Authorization
// header configured. Returns an error if no valid credential is held.
func (am *AuthenticationManager) GetAuthenticatedClient() (*http.Client, error) {
	if err := am.ValidateCredentials(); err != nil {
		return nil, err
	}

	transport := &authenticatedTransport{
		base:        http.DefaultTransport,
		credentials: am.credentials,
	}

	return &http.Client{
		Transport: transport,
	}, nil
}

// ValidateCredentials checks that the held credential is usable.
func (am *AuthenticationManager) ValidateCredentials() error {
	return validateCredentials(am.credentials)
}

// validateCredentials validates a Credentials object.
func validateCredentials(creds *Credentials) error {
	if creds == nil {
		return fmt.Errorf("credentials cannot be nil")
	}

	if strings.TrimSpace(creds.Token) == "" {
		return fmt.Errorf("API token is required")
	}

	return nil
}

// authenticatedTransport is an http.RoundTripper that injects the
// Authorization header on every outgoing request.
type authenticatedTransport struct {
	base        http.RoundTripper
	credentials *Credentials
}

// RoundTrip implements http.RoundTripper.
// The request is cloned before modification so the transport never
// mutates the caller's request.
func (t *authenticatedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", t.credentials.Token)
	return t.base.RoundTrip(cloned)
}

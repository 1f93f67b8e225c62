package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/oauth2/clientcredentials"
)

// OAuth2Config holds configuration for client-credentials token acquisition,
// used by deployments that front the API with an OIDC provider.
type OAuth2Config struct {
	ClientID  string   `mapstructure:"client_id"`
	ClientSec string   `mapstructure:"client_secret"`
	TokenURL  string   `mapstructure:"token_url"`
	Scopes    []string `mapstructure:"scopes"`
}

type oauth2Adapter struct{ c OAuth2Config }

func (a oauth2Adapter) Acquire(ctx context.Context) (string, error) {
	return acquireOAuth2(ctx, a.c)
}

func acquireOAuth2(ctx context.Context, pc OAuth2Config) (string, error) {
	tokenURL := strings.TrimSpace(pc.TokenURL)
	if tokenURL == "" {
		return "", errors.New("oauth2: token_url is required")
	}
	clientID := strings.TrimSpace(pc.ClientID)
	clientSecret := strings.TrimSpace(pc.ClientSec)
	if clientID == "" || clientSecret == "" {
		return "", errors.New("oauth2: client_id and client_secret are required")
	}
	cc := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		Scopes:       pc.Scopes,
	}
	tok, err := cc.Token(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(tok.AccessToken) == "" {
		return "", errors.New("oauth2: empty access token in response")
	}
	return tok.AccessToken, nil
}

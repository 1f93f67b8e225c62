package auth

import (
	"context"
	"errors"
	"strings"
)

// StaticConfig wraps a pre-issued token, typically injected through an
// environment variable for CI and service accounts.
type StaticConfig struct {
	Token string `mapstructure:"token"`
}

type staticAdapter struct{ c StaticConfig }

func (a staticAdapter) Acquire(_ context.Context) (string, error) {
	t := strings.TrimSpace(a.c.Token)
	if t == "" {
		return "", errors.New("token: value is required")
	}
	return t, nil
}

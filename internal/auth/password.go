package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// PasswordConfig holds configuration for email/password login against the
// ThreatSense API. BaseURL is the API endpoint, not the login path.
type PasswordConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type passwordAdapter struct{ c PasswordConfig }

func (a passwordAdapter) Acquire(ctx context.Context) (string, error) {
	return acquirePassword(ctx, a.c)
}

func acquirePassword(ctx context.Context, pc PasswordConfig) (string, error) {
	if strings.TrimSpace(pc.BaseURL) == "" || strings.TrimSpace(pc.Email) == "" || strings.TrimSpace(pc.Password) == "" {
		return "", errors.New("password: base_url, email and password are required")
	}
	loginURL := strings.TrimRight(pc.BaseURL, "/") + "/auth/login"
	body := map[string]string{"email": pc.Email, "password": pc.Password}
	resp, err := resty.New().R().SetContext(ctx).SetHeader("Content-Type", "application/json").SetBody(body).Post(loginURL)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return "", fmt.Errorf("password: login returned %d", resp.StatusCode())
	}
	tok := gjson.GetBytes(resp.Body(), "access_token").String()
	if strings.TrimSpace(tok) == "" {
		return "", errors.New("password: access_token not found in response")
	}
	return tok, nil
}

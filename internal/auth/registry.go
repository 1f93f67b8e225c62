package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Method is the plugin interface for a credential source. Implementations are
// lightweight wrappers around configuration that can acquire an opaque bearer
// token value; header formatting is the client's responsibility.
type Method interface {
	Acquire(ctx context.Context) (token string, err error)
}

// Factory builds a Method instance from a loosely-typed spec map.
// Decoding into a concrete config struct is the typical responsibility of a Factory.
type Factory func(spec map[string]interface{}) (Method, error)

// In-memory registry of provider factories keyed by normalized type.
var providers = map[string]Factory{}

func normalizeKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Register registers a credential provider factory under a type key
// (e.g., "password", "token", "oauth2"). The key is normalized to lower-case.
func Register(typ string, f Factory) {
	key := normalizeKey(typ)
	if key == "" || f == nil {
		return
	}
	providers[key] = f
}

// AcquireWithName builds a Method from the provider type and spec, acquires a
// token, and stores it under the provided logical name for later lookup.
func AcquireWithName(ctx context.Context, typ, name string, spec map[string]interface{}) (string, error) {
	f, ok := providers[normalizeKey(typ)]
	if !ok {
		return "", errors.New("auth: unsupported provider type: " + typ)
	}
	m, err := f(spec)
	if err != nil {
		return "", err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	v, err := m.Acquire(ctx)
	if err == nil && strings.TrimSpace(name) != "" {
		SetToken(name, v)
	}
	return v, err
}

// Built-in provider registrations
func init() {
	Register("password", func(spec map[string]interface{}) (Method, error) {
		var c PasswordConfig
		if err := mapstructure.Decode(spec, &c); err != nil {
			return nil, err
		}
		return passwordAdapter{c: c}, nil
	})

	Register("token", func(spec map[string]interface{}) (Method, error) {
		var c StaticConfig
		if err := mapstructure.Decode(spec, &c); err != nil {
			return nil, err
		}
		return staticAdapter{c: c}, nil
	})

	Register("oauth2", func(spec map[string]interface{}) (Method, error) {
		var c OAuth2Config
		if err := mapstructure.Decode(spec, &c); err != nil {
			return nil, err
		}
		return oauth2Adapter{c: c}, nil
	})
}

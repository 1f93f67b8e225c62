package tsense

import (
	"context"

	"github.com/bassette/tsense/internal/api"
	"github.com/bassette/tsense/internal/auth"
	"github.com/bassette/tsense/internal/client"
	"github.com/bassette/tsense/internal/history"
)

// Re-export commonly used types for public API

// Client is the low-level API client: request construction, bearer
// injection and response normalization.
type Client = client.Client

// Options describes a single request passed to Client.Send.
type Options = client.Options

// Result is the normalized success outcome of Client.Send.
type Result = client.Result

// APIError is the normalized non-2xx failure.
type APIError = client.APIError

// DefaultBaseURL is the endpoint used when none is configured.
const DefaultBaseURL = client.DefaultBaseURL

// NewClient creates a client for the given base URL (empty = default).
func NewClient(baseURL string) *Client { return client.New(baseURL) }

// Service exposes the typed endpoint wrappers.
type Service = api.Service

// NewService wraps a client with an optional credential.
func NewService(c *Client, credential string) *Service { return api.New(c, credential) }

// Typed models returned by the service.
type (
	Asset         = api.Asset
	ScanRun       = api.ScanRun
	Finding       = api.Finding
	ScanRequest   = api.ScanRequest
	TokenResponse = api.TokenResponse
)

// AuthMethod is the plugin-style credential provider interface.
type AuthMethod = auth.Method

// AuthFactory builds an AuthMethod from a loosely-typed spec map.
type AuthFactory = auth.Factory

// RegisterAuthProvider exposes custom credential provider registration for
// library users.
func RegisterAuthProvider(typ string, f AuthFactory) { auth.Register(typ, f) }

// AcquireAuth acquires a token via a registered provider type and stores it
// under name when non-empty.
func AcquireAuth(ctx context.Context, typ, name string, spec map[string]interface{}) (string, error) {
	return auth.AcquireWithName(ctx, typ, name, spec)
}

// Store is the session and scan-launch history store.
type Store = history.Store

// StoreSession and StoreLaunch are the records a Store persists.
type (
	StoreSession = history.Session
	StoreLaunch  = history.Launch
)

// StoreDBFileName is the default sqlite filename used for local history.
const StoreDBFileName = history.StoreDBFileName

// OpenStore opens (and initializes) a history store. Driver is "sqlite"
// (default when empty) or "postgresql".
func OpenStore(driver, dsn string) (*Store, error) { return history.Open(driver, dsn) }

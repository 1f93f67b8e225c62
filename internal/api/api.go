// Package api provides typed wrappers over the low-level client for every
// backend endpoint the tooling consumes. The client hands back untyped JSON
// values; each call site here decodes them into its expected shape, so a
// contract drift surfaces as a decode error at the boundary that noticed it.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bassette/tsense/internal/client"
	"github.com/go-viper/mapstructure/v2"
)

// Service wraps a client with the credential used for protected endpoints.
// The credential is optional; Login and Health work without one.
type Service struct {
	Client     *client.Client
	Credential string
}

// New builds a Service around an existing client.
func New(c *client.Client, credential string) *Service {
	return &Service{Client: c, Credential: credential}
}

func decode(value any, out any) error {
	if value == nil {
		return fmt.Errorf("api: empty response where a payload was expected")
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: out})
	if err != nil {
		return err
	}
	if err := dec.Decode(value); err != nil {
		return fmt.Errorf("api: unexpected response shape: %w", err)
	}
	return nil
}

func marshalBody(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Login authenticates with email/password and returns the issued token.
// It never sends a credential; the session token comes from the response.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	body, err := marshalBody(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	res, err := s.Client.Send(ctx, "/auth/login", client.Options{Method: http.MethodPost, Body: body}, "")
	if err != nil {
		return nil, err
	}
	var tok TokenResponse
	if err := decode(res.Value, &tok); err != nil {
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("api: login response carried no access token")
	}
	return &tok, nil
}

// ListAssets fetches the tenant's assets.
func (s *Service) ListAssets(ctx context.Context) ([]Asset, error) {
	res, err := s.Client.Send(ctx, "/assets", client.Options{}, s.Credential)
	if err != nil {
		return nil, err
	}
	var assets []Asset
	if err := decode(res.Value, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// CreateAsset registers a new asset of the given kind (domain, ip, url, log_source).
func (s *Service) CreateAsset(ctx context.Context, kind, value string) (*Asset, error) {
	body, err := marshalBody(map[string]string{"kind": kind, "value": value})
	if err != nil {
		return nil, err
	}
	res, err := s.Client.Send(ctx, "/assets", client.Options{Method: http.MethodPost, Body: body}, s.Credential)
	if err != nil {
		return nil, err
	}
	var a Asset
	if err := decode(res.Value, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListScans fetches the tenant's scan runs, newest first.
func (s *Service) ListScans(ctx context.Context) ([]ScanRun, error) {
	res, err := s.Client.Send(ctx, "/scans", client.Options{}, s.Credential)
	if err != nil {
		return nil, err
	}
	var scans []ScanRun
	if err := decode(res.Value, &scans); err != nil {
		return nil, err
	}
	return scans, nil
}

// GetScan fetches a single scan run by id.
func (s *Service) GetScan(ctx context.Context, id string) (*ScanRun, error) {
	res, err := s.Client.Send(ctx, "/scans/"+url.PathEscape(id), client.Options{}, s.Credential)
	if err != nil {
		return nil, err
	}
	var scan ScanRun
	if err := decode(res.Value, &scan); err != nil {
		return nil, err
	}
	return &scan, nil
}

// LaunchScan queues a scan for the given asset and plugin.
func (s *Service) LaunchScan(ctx context.Context, req ScanRequest) (*ScanRun, error) {
	if req.Plugin != "" && !IsKnownPlugin(req.Plugin) {
		return nil, fmt.Errorf("api: unknown plugin: %s", req.Plugin)
	}
	body, err := marshalBody(req)
	if err != nil {
		return nil, err
	}
	res, err := s.Client.Send(ctx, "/scans", client.Options{Method: http.MethodPost, Body: body}, s.Credential)
	if err != nil {
		return nil, err
	}
	var scan ScanRun
	if err := decode(res.Value, &scan); err != nil {
		return nil, err
	}
	return &scan, nil
}

// ListFindings fetches findings for a scan run.
func (s *Service) ListFindings(ctx context.Context, scanID string) ([]Finding, error) {
	path := "/findings?scan_id=" + url.QueryEscape(scanID)
	res, err := s.Client.Send(ctx, path, client.Options{}, s.Credential)
	if err != nil {
		return nil, err
	}
	var findings []Finding
	if err := decode(res.Value, &findings); err != nil {
		return nil, err
	}
	return findings, nil
}

// Health checks API readiness. A 2xx with any (or no) payload counts as healthy.
func (s *Service) Health(ctx context.Context) error {
	_, err := s.Client.Send(ctx, "/health", client.Options{}, "")
	return err
}

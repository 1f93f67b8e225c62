package tsense

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/bassette/tsense/internal/mockapi"
)

func startBackend(t *testing.T) *httptest.Server {
	t.Helper()
	m, err := mockapi.New(mockapi.Options{Secret: "e2e-secret", Email: "owner@demo.io", Password: "pw"})
	if err != nil {
		t.Fatalf("mock backend: %v", err)
	}
	srv := httptest.NewServer(m.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestPublicAPI_FullScanWorkflow(t *testing.T) {
	srv := startBackend(t)
	ctx := context.Background()

	c := NewClient(srv.URL)
	anon := NewService(c, "")

	tok, err := anon.Login(ctx, "owner@demo.io", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	svc := NewService(c, tok.AccessToken)
	asset, err := svc.CreateAsset(ctx, "domain", "demo.io")
	if err != nil {
		t.Fatalf("create asset: %v", err)
	}

	scan, err := svc.LaunchScan(ctx, ScanRequest{
		AssetID:  asset.ID,
		ScanType: "active",
		Plugin:   "soc_rules",
		Parameters: map[string]any{
			"window_minutes": 15,
			"source":         "auth-logs",
		},
	})
	if err != nil {
		t.Fatalf("launch: %v", err)
	}

	// poll through the mock lifecycle to completion
	var final *ScanRun
	for i := 0; i < 3; i++ {
		final, err = svc.GetScan(ctx, scan.ID)
		if err != nil {
			t.Fatalf("get scan: %v", err)
		}
		if final.Status == "done" {
			break
		}
	}
	if final.Status != "done" {
		t.Fatalf("scan never completed: %+v", final)
	}

	findings, err := svc.ListFindings(ctx, scan.ID)
	if err != nil || len(findings) == 0 {
		t.Fatalf("expected findings, got %+v err=%v", findings, err)
	}
}

func TestPublicAPI_ErrorNormalization(t *testing.T) {
	srv := startBackend(t)
	ctx := context.Background()

	svc := NewService(NewClient(srv.URL), "")
	_, err := svc.ListScans(ctx)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != 401 || apiErr.Message != "unauthorized" {
		t.Fatalf("unexpected normalized error: %+v", apiErr)
	}
}

func TestPublicAPI_TokenProviderRegistry(t *testing.T) {
	v, err := AcquireAuth(context.Background(), "token", "ci", map[string]interface{}{"token": "tok-ci"})
	if err != nil || v != "tok-ci" {
		t.Fatalf("token provider: v=%q err=%v", v, err)
	}
}

func TestPublicAPI_StoreRoundTrip(t *testing.T) {
	s, err := OpenStore("", ":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() { _ = s.Close() }()
	if err := s.SaveSession(StoreSession{Endpoint: "http://x", Token: "t"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	sess, err := s.LoadSession("")
	if err != nil || sess == nil || sess.Token != "t" {
		t.Fatalf("load: %+v err=%v", sess, err)
	}
}

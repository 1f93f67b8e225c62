package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bassette/tsense/internal/client"
	"github.com/spf13/viper"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	v := viper.New()
	doc, err := Load(v, filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing config must not error: %v", err)
	}
	if doc.ResolveEndpoint() != client.DefaultBaseURL {
		t.Fatalf("expected default endpoint, got %q", doc.ResolveEndpoint())
	}
}

func TestLoad_FullDocument(t *testing.T) {
	content := `
endpoint: https://api.internal:8443
tls:
  insecure: true
  min_tls_version: "1.2"
logging:
  level: debug
  format: json
history:
  driver: sqlite
  dsn: ":memory:"
auth:
  - type: token
    name: ci
    config:
      token: tok-ci
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	v := viper.New()
	doc, err := Load(v, path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if doc.Endpoint != "https://api.internal:8443" {
		t.Fatalf("unexpected endpoint: %q", doc.Endpoint)
	}
	if !doc.TLS.Insecure || doc.TLS.MinTLSVersion != "1.2" {
		t.Fatalf("unexpected tls config: %+v", doc.TLS)
	}
	if doc.Logging.Level != "debug" || doc.Logging.Format != "json" {
		t.Fatalf("unexpected logging config: %+v", doc.Logging)
	}
	if len(doc.Auth) != 1 || doc.Auth[0].Type != "token" || doc.Auth[0].Config["token"] != "tok-ci" {
		t.Fatalf("unexpected auth config: %+v", doc.Auth)
	}

	c := doc.NewClient()
	if c.BaseURL() != "https://api.internal:8443" {
		t.Fatalf("client endpoint mismatch: %q", c.BaseURL())
	}

	store, err := doc.OpenHistory()
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	if store == nil {
		t.Fatal("expected a store for in-memory sqlite config")
	}
	_ = store.Close()
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("endpoint: [broken"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(viper.New(), path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestOpenHistory_Disabled(t *testing.T) {
	doc := &Doc{History: HistoryConfig{Disabled: true}}
	store, err := doc.OpenHistory()
	if err != nil || store != nil {
		t.Fatalf("disabled history should yield nil store, got %v err=%v", store, err)
	}
}

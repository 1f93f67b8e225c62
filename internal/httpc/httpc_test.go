package httpc

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseTLSVersion(t *testing.T) {
	cases := map[string]uint16{
		"":        0,
		"1.0":     tls.VersionTLS10,
		"tls1.1":  tls.VersionTLS11,
		"12":      tls.VersionTLS12,
		"TLS13":   tls.VersionTLS13,
		"weird!!": 0,
	}
	for in, want := range cases {
		if got := ParseTLSVersion(in); got != want {
			t.Fatalf("ParseTLSVersion(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFromSettings_NilWhenUnset(t *testing.T) {
	if cfg := FromSettings(false, "", ""); cfg != nil {
		t.Fatalf("expected nil config for default settings, got %+v", cfg)
	}
}

func TestFromSettings_Bounds(t *testing.T) {
	cfg := FromSettings(false, "1.2", "1.2")
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.MinVersion != tls.VersionTLS12 || cfg.MaxVersion != tls.VersionTLS12 {
		t.Fatalf("expected TLS1.2 only, got Min=%v Max=%v", cfg.MinVersion, cfg.MaxVersion)
	}
	if cfg.InsecureSkipVerify {
		t.Fatal("insecure should be off by default")
	}
}

func TestHttpc_InsecureAllowsSelfSigned(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	// default should fail due to unknown authority
	h := Httpc{}
	if _, err := h.New().R().Get(srv.URL); err == nil {
		t.Fatal("expected error without insecure TLS, got nil")
	}

	hi := Httpc{TlsConfig: FromSettings(true, "1.2", "")}
	resp, err := hi.New().R().Get(srv.URL)
	if err != nil {
		t.Fatalf("expected success with insecure, got err=%v", err)
	}
	if resp.StatusCode() != 200 {
		t.Fatalf("expected 200 with insecure, got code=%d", resp.StatusCode())
	}
}

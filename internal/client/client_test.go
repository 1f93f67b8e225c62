package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestSend_BearerCredentialOverridesCallerHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Send(context.Background(), "/assets", Options{
		Headers: map[string]string{"Authorization": "Bearer stale"},
	}, "tok123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Fatalf("expected credential to override caller header, got %q", gotAuth)
	}
}

func TestSend_NoCredentialNoAuthorizationHeader(t *testing.T) {
	var present bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.Send(context.Background(), "/health", Options{}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if present {
		t.Fatal("Authorization header should be absent without a credential")
	}
}

func TestSend_DefaultContentTypeAndCallerOverride(t *testing.T) {
	var gotCT string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		w.WriteHeader(204)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.Send(context.Background(), "/scans", Options{Method: "POST", Body: `{}`}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotCT != "application/json" {
		t.Fatalf("expected default JSON content type, got %q", gotCT)
	}

	_, err := c.Send(context.Background(), "/scans", Options{
		Method:  "POST",
		Body:    "a=1",
		Headers: map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotCT != "application/x-www-form-urlencoded" {
		t.Fatalf("expected caller content type to win, got %q", gotCT)
	}
}

func TestSend_LowercaseAuthorizationStillOverridden(t *testing.T) {
	var gotAuth []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Values("Authorization")
		w.WriteHeader(204)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Send(context.Background(), "/assets", Options{
		Headers: map[string]string{"authorization": "Bearer stale"},
	}, "tok123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotAuth) != 1 || gotAuth[0] != "Bearer tok123" {
		t.Fatalf("expected single injected Authorization header, got %v", gotAuth)
	}
}

func TestSend_NonSuccessBodyTextBecomesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		_, _ = w.Write([]byte("unauthorized"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Send(context.Background(), "/assets", Options{}, "")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Error() != "unauthorized" {
		t.Fatalf("expected message %q, got %q", "unauthorized", apiErr.Error())
	}
	if apiErr.StatusCode != 401 {
		t.Fatalf("expected status 401, got %d", apiErr.StatusCode)
	}
	if res == nil || res.StatusCode != 401 {
		t.Fatalf("expected partial result with status 401, got %+v", res)
	}
}

func TestSend_NonSuccessEmptyBodyFallbackNamesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(503)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Send(context.Background(), "/scans", Options{}, "")
	if err == nil {
		t.Fatal("expected error for 503 response")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Fatalf("fallback message should include status code, got %q", err.Error())
	}
}

func TestSend_NonJSONContentTypeYieldsAbsentValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("this is not json"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Send(context.Background(), "/artifact", Options{}, "")
	if err != nil {
		t.Fatalf("non-JSON success must not error: %v", err)
	}
	if res.Value != nil {
		t.Fatalf("expected absent value, got %v", res.Value)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
}

func TestSend_JSONBodyParsedStructurally(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"a":1}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Send(context.Background(), "/thing", Options{}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"a": float64(1)}
	if !reflect.DeepEqual(res.Value, want) {
		t.Fatalf("expected %v, got %v", want, res.Value)
	}
}

func TestSend_MalformedJSONPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"a":`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Send(context.Background(), "/thing", Options{}, "")
	if err == nil {
		t.Fatal("expected parse error to propagate")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatal("parse failures must not be normalized into APIError")
	}
}

func TestSend_LoginEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			w.WriteHeader(404)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok123"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Send(context.Background(), "/auth/login", Options{
		Method: "POST",
		Body:   `{"email":"a@b.com","password":"x"}`,
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obj, ok := res.Value.(map[string]any)
	if !ok {
		t.Fatalf("expected object value, got %T", res.Value)
	}
	if obj["access_token"] != "tok123" {
		t.Fatalf("expected access_token tok123, got %v", obj["access_token"])
	}
}

func TestSend_UnreachableHostPropagates(t *testing.T) {
	c := New("http://127.0.0.1:1")
	_, err := c.Send(context.Background(), "/health", Options{}, "")
	if err == nil {
		t.Fatal("expected transport error for unreachable host")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatal("network failures must not be normalized into APIError")
	}
}

func TestNew_DefaultsAndTrailingSlash(t *testing.T) {
	if got := New("").BaseURL(); got != DefaultBaseURL {
		t.Fatalf("expected default base URL, got %q", got)
	}
	if got := New("http://api.local:8000/").BaseURL(); got != "http://api.local:8000" {
		t.Fatalf("expected trailing slash trimmed, got %q", got)
	}
}

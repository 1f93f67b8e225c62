package client

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/bassette/tsense/internal/common"
	"github.com/bassette/tsense/internal/httpc"
	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is used when no endpoint is configured.
const DefaultBaseURL = "http://localhost:8000"

// Options describes a single outgoing request: method, an optional
// pre-serialized body and optional header overrides.
type Options struct {
	Method  string
	Body    string
	Headers map[string]string
}

// Result is the outcome of a successful (2xx) call. Value holds the parsed
// JSON payload and is nil when the response did not declare a JSON content
// type, which is how endpoints returning no body are represented.
type Result struct {
	StatusCode int
	Body       []byte
	Value      any
}

// APIError is the normalized failure for non-2xx transport statuses.
// Message carries the response body text, or a generated fallback naming the
// status code when the body is empty. Network and JSON parse failures are not
// wrapped; they propagate from the underlying primitives.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// Client issues requests against a single ThreatSense API endpoint.
// The base URL is immutable after construction; no other state is kept
// between calls, so a Client is safe for concurrent use.
type Client struct {
	baseURL string
	rc      *resty.Client
}

// New creates a Client for the given base URL. An empty baseURL falls back to
// DefaultBaseURL. The trailing slash is trimmed so paths join predictably.
func New(baseURL string) *Client {
	return NewWithTLS(baseURL, nil)
}

// NewWithTLS creates a Client whose transport honors the provided TLS
// settings (nil keeps defaults).
func NewWithTLS(baseURL string, tlsCfg *tls.Config) *Client {
	b := strings.TrimSpace(baseURL)
	if b == "" {
		b = DefaultBaseURL
	}
	b = strings.TrimRight(b, "/")
	h := httpc.Httpc{TlsConfig: tlsCfg}
	return &Client{baseURL: b, rc: h.New()}
}

// BaseURL returns the configured endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// Send issues a request to baseURL+path and normalizes the response.
// Headers are merged in order: a default Content-Type: application/json,
// then caller headers, then (last, taking precedence) the bearer
// Authorization header when credential is non-empty. The path is appended
// verbatim; escaping is the caller's responsibility.
//
// Non-2xx statuses yield an *APIError alongside the partial Result. A 2xx
// response without a JSON content type succeeds with a nil Value. No retry,
// timeout or caching is performed; callers wanting deadlines pass them via ctx.
func (c *Client) Send(ctx context.Context, path string, opt Options, credential string) (*Result, error) {
	method := strings.ToUpper(strings.TrimSpace(opt.Method))
	if method == "" {
		method = http.MethodGet
	}
	url := c.baseURL + path

	// Merge order: default content type, caller overrides, then the bearer
	// header last. Matching is case-insensitive so a caller-supplied
	// "authorization" cannot survive next to the injected one.
	headers := map[string]string{"Content-Type": "application/json"}
	for k, v := range opt.Headers {
		for ek := range headers {
			if strings.EqualFold(ek, k) {
				delete(headers, ek)
			}
		}
		headers[k] = v
	}
	if credential != "" {
		for ek := range headers {
			if strings.EqualFold(ek, "Authorization") {
				delete(headers, ek)
			}
		}
		headers["Authorization"] = "Bearer " + credential
	}

	logger := common.GetLogger().WithComponent("client").WithRequest(method, url)
	logger.Debug("sending request", "headers_count", len(headers), "body_size", len(opt.Body))

	req := c.rc.R().SetContext(ctx).SetHeaders(headers)
	if opt.Body != "" {
		req.SetBody([]byte(opt.Body))
	}

	resp, err := execByMethod(req, method, url)
	if err != nil {
		logger.Error("request failed", "error", err)
		return nil, err
	}

	status := resp.StatusCode()
	body := resp.Body()
	logger.Debug("received response", "status_code", status, "response_size", len(body))

	if status < 200 || status >= 300 {
		msg := string(body)
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", status)
		}
		logger.Warn("request rejected", "status_code", status, "message", common.MaskSensitive(msg))
		return &Result{StatusCode: status, Body: body}, &APIError{StatusCode: status, Message: msg}
	}

	ct := resp.Header().Get("Content-Type")
	if !strings.Contains(ct, "application/json") {
		// 204-style responses: success with an absent value.
		return &Result{StatusCode: status, Body: body}, nil
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, err
	}
	return &Result{StatusCode: status, Body: body, Value: v}, nil
}

func execByMethod(req *resty.Request, method, url string) (*resty.Response, error) {
	switch method {
	case http.MethodGet:
		return req.Get(url)
	case http.MethodPost:
		return req.Post(url)
	case http.MethodPut:
		return req.Put(url)
	case http.MethodPatch:
		return req.Patch(url)
	case http.MethodDelete:
		return req.Delete(url)
	default:
		return nil, fmt.Errorf("client: unsupported method: %s", method)
	}
}

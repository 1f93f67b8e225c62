package httpc

import (
	"crypto/tls"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Httpc builds resty clients configured for the ThreatSense API.
// The zero value yields a plain client with library defaults.
type Httpc struct {
	TlsConfig *tls.Config
}

// New returns a resty.Client configured according to the receiver's TLS settings.
// Defaults: MinVersion TLS1.3 when MinVersion is zero.
func (h *Httpc) New() *resty.Client {
	c := resty.New()
	cfg := h.TlsConfig
	if cfg == nil {
		return c
	}
	if cfg.MinVersion == 0 {
		cfg.MinVersion = tls.VersionTLS13
	}
	c.SetTLSClientConfig(cfg)
	return c
}

// ParseTLSVersion converts a TLS version string to the corresponding crypto/tls
// constant. Supports "1.2", "12", "tls1.2", "tls12" style spellings.
// Returns 0 if the version string is not recognized.
func ParseTLSVersion(version string) uint16 {
	switch strings.ToLower(strings.TrimSpace(version)) {
	case "1.0", "10", "tls1.0", "tls10":
		return tls.VersionTLS10
	case "1.1", "11", "tls1.1", "tls11":
		return tls.VersionTLS11
	case "1.2", "12", "tls1.2", "tls12":
		return tls.VersionTLS12
	case "1.3", "13", "tls1.3", "tls13":
		return tls.VersionTLS13
	default:
		return 0
	}
}

// FromSettings builds a tls.Config from the client settings found in config
// files. Returns nil when nothing is set so callers keep transport defaults.
func FromSettings(insecure bool, minVersion, maxVersion string) *tls.Config {
	minV := ParseTLSVersion(minVersion)
	maxV := ParseTLSVersion(maxVersion)
	if !insecure && minV == 0 && maxV == 0 {
		return nil
	}
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if insecure {
		cfg.InsecureSkipVerify = true // #nosec G402 -- explicit opt-in for lab deployments
	}
	if minV != 0 {
		cfg.MinVersion = minV
	}
	if maxV != 0 {
		cfg.MaxVersion = maxV
	}
	return cfg
}

package common

import (
	"regexp"
)

// SensitivePattern represents a pattern to detect and mask sensitive information
// before it reaches log output.
type SensitivePattern struct {
	Name        string
	Regex       *regexp.Regexp
	Replacement string
}

// DefaultSensitivePatterns covers the credential material the client handles:
// bearer tokens, raw access tokens and login passwords.
var DefaultSensitivePatterns = []SensitivePattern{
	{
		Name:        "bearer_token",
		Regex:       regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9\-._~+/]+=*`),
		Replacement: "Bearer ***MASKED***",
	},
	{
		Name:        "access_token",
		Regex:       regexp.MustCompile(`(?i)(access[_-]?token|token)["'\s]*[:=]["'\s]*([^"',}\]\s]+)`),
		Replacement: `${1}":"***MASKED***"`,
	},
	{
		Name:        "password",
		Regex:       regexp.MustCompile(`(?i)(password|passwd)["'\s]*[:=]["'\s]*([^"',}\]\s]+)`),
		Replacement: `${1}":"***MASKED***"`,
	},
	{
		Name:        "authorization",
		Regex:       regexp.MustCompile(`(?i)(authorization)["'\s]*[:=]["'\s]*([^"',}\]\s]+)`),
		Replacement: `${1}":"***MASKED***"`,
	},
	{
		Name:        "client_secret",
		Regex:       regexp.MustCompile(`(?i)(client[_-]?secret)["'\s]*[:=]["'\s]*([^"',}\]\s]+)`),
		Replacement: `${1}":"***MASKED***"`,
	},
}

// Masker handles masking of sensitive information in logs
type Masker struct {
	patterns []SensitivePattern
	enabled  bool
}

// NewMasker creates a new masker with default patterns
func NewMasker() *Masker {
	return &Masker{
		patterns: DefaultSensitivePatterns,
		enabled:  true,
	}
}

// SetEnabled toggles masking on or off
func (m *Masker) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// Enabled reports whether masking is active
func (m *Masker) Enabled() bool {
	return m.enabled
}

// Mask applies all patterns to the input string
func (m *Masker) Mask(s string) string {
	if !m.enabled || s == "" {
		return s
	}
	out := s
	for _, p := range m.patterns {
		out = p.Regex.ReplaceAllString(out, p.Replacement)
	}
	return out
}

var defaultMasker = NewMasker()

// MaskSensitive masks sensitive values using the default masker.
func MaskSensitive(s string) string {
	return defaultMasker.Mask(s)
}

// SetMaskingEnabled toggles the default masker.
func SetMaskingEnabled(enabled bool) {
	defaultMasker.SetEnabled(enabled)
}

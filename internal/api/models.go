package api

// Asset is an attack-surface entry owned by a tenant: a domain, an IP, a URL
// or a log source, matching what the backend returns from /assets.
type Asset struct {
	ID       string `mapstructure:"id" json:"id"`
	TenantID string `mapstructure:"tenant_id" json:"tenant_id"`
	Kind     string `mapstructure:"kind" json:"kind"`
	Value    string `mapstructure:"value" json:"value"`
	Verified bool   `mapstructure:"verified" json:"verified"`
}

// ScanRun mirrors the backend scan lifecycle record. Status moves through
// queued, running, done and failed.
type ScanRun struct {
	ID               string  `mapstructure:"id" json:"id"`
	TenantID         string  `mapstructure:"tenant_id" json:"tenant_id"`
	AssetID          string  `mapstructure:"asset_id" json:"asset_id"`
	ScanType         string  `mapstructure:"scan_type" json:"scan_type"`
	Status           string  `mapstructure:"status" json:"status"`
	Plugin           string  `mapstructure:"plugin" json:"plugin"`
	RequiresApproval bool    `mapstructure:"requires_approval" json:"requires_approval"`
	ParametersJSON   string  `mapstructure:"parameters_json" json:"parameters_json"`
	StartedAt        *string `mapstructure:"started_at" json:"started_at,omitempty"`
	FinishedAt       *string `mapstructure:"finished_at" json:"finished_at,omitempty"`
	ArtifactPath     *string `mapstructure:"artifact_path" json:"artifact_path,omitempty"`
	ErrorMessage     *string `mapstructure:"error_message" json:"error_message,omitempty"`
}

// Finding is a single result produced by a scan plugin.
type Finding struct {
	ID          string   `mapstructure:"id" json:"id"`
	ScanRunID   string   `mapstructure:"scan_run_id" json:"scan_run_id"`
	AssetID     string   `mapstructure:"asset_id" json:"asset_id"`
	Title       string   `mapstructure:"title" json:"title"`
	Severity    string   `mapstructure:"severity" json:"severity"`
	Category    string   `mapstructure:"category" json:"category"`
	Evidence    string   `mapstructure:"evidence" json:"evidence"`
	Remediation string   `mapstructure:"remediation" json:"remediation"`
	CVE         *string  `mapstructure:"cve" json:"cve,omitempty"`
	CVSS        *float64 `mapstructure:"cvss" json:"cvss,omitempty"`
}

// TokenResponse is the payload of POST /auth/login.
type TokenResponse struct {
	AccessToken string `mapstructure:"access_token" json:"access_token"`
	TokenType   string `mapstructure:"token_type" json:"token_type"`
}

// ScanRequest is the launch payload for POST /scans.
type ScanRequest struct {
	AssetID          string         `mapstructure:"asset_id" json:"asset_id" yaml:"asset_id"`
	ScanType         string         `mapstructure:"scan_type" json:"scan_type" yaml:"scan_type"`
	Plugin           string         `mapstructure:"plugin" json:"plugin" yaml:"plugin"`
	RequiresApproval bool           `mapstructure:"requires_approval" json:"requires_approval" yaml:"requires_approval"`
	Parameters       map[string]any `mapstructure:"parameters" json:"parameters" yaml:"parameters"`
}

// KnownPlugins lists the scan plugins the worker fleet ships with.
var KnownPlugins = []string{"nmap_stub", "nuclei_scan", "soc_rules"}

// IsKnownPlugin reports whether name matches a shipped plugin.
func IsKnownPlugin(name string) bool {
	for _, p := range KnownPlugins {
		if p == name {
			return true
		}
	}
	return false
}

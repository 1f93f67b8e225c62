// Package scanspec loads scan launch requests from YAML files so recurring
// scans can live in version control next to the infrastructure they target.
package scanspec

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bassette/tsense/internal/api"
	"gopkg.in/yaml.v3"
)

// Spec is the on-disk form of a scan request.
type Spec struct {
	AssetID          string         `yaml:"asset_id"`
	ScanType         string         `yaml:"scan_type"`
	Plugin           string         `yaml:"plugin"`
	RequiresApproval bool           `yaml:"requires_approval"`
	Parameters       map[string]any `yaml:"parameters"`
}

func (s *Spec) decodeYAMLTo(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	var tmp Spec
	if err := dec.Decode(&tmp); err != nil {
		return fmt.Errorf("failed to decode YAML scan spec: %w", err)
	}
	*s = tmp
	return nil
}

// LoadFromFile loads a Spec from a YAML file path into the receiver.
func (s *Spec) LoadFromFile(path string) error {
	clean := filepath.Clean(path)
	// #nosec G304 -- path is supplied by the operator launching the scan
	f, err := os.Open(clean)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return s.decodeYAMLTo(f)
}

// DecodeYAML decodes a Spec from the provided reader into the receiver.
func (s *Spec) DecodeYAML(r io.Reader) error {
	return s.decodeYAMLTo(r)
}

// Validate checks the spec against the launch contract: asset and plugin are
// required, and the plugin must be one the worker fleet ships.
func (s *Spec) Validate() error {
	if strings.TrimSpace(s.AssetID) == "" {
		return fmt.Errorf("scan spec: asset_id is required")
	}
	if strings.TrimSpace(s.Plugin) == "" {
		return fmt.Errorf("scan spec: plugin is required")
	}
	if !api.IsKnownPlugin(s.Plugin) {
		return fmt.Errorf("scan spec: unknown plugin %q (known: %s)", s.Plugin, strings.Join(api.KnownPlugins, ", "))
	}
	return nil
}

// ToRequest converts the spec into the API launch payload.
func (s *Spec) ToRequest() api.ScanRequest {
	return api.ScanRequest{
		AssetID:          s.AssetID,
		ScanType:         s.ScanType,
		Plugin:           s.Plugin,
		RequiresApproval: s.RequiresApproval,
		Parameters:       s.Parameters,
	}
}

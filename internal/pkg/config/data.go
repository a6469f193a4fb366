package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DataConfig carries the rule tables that are data rather than code: extra
// tracking parameters for URL normalization and extra blocked networks and
// hostnames for SSRF classification. The built-in tables always apply; this
// file only extends them, so a missing or empty file is a valid deployment.
//
// Example file:
//
//	tracking_params:
//	  - partner_id
//	blocked_cidrs:
//	  - 100.64.0.0/10
//	blocked_hosts:
//	  - metadata.internal
type DataConfig struct {
	TrackingParams []string `yaml:"tracking_params"`
	BlockedCIDRs   []string `yaml:"blocked_cidrs"`
	BlockedHosts   []string `yaml:"blocked_hosts"`
}

// LoadDataConfig reads a DataConfig from the YAML file at path.
// An empty path returns a zero-value config (built-in tables only).
func LoadDataConfig(path string) (DataConfig, error) {
	var cfg DataConfig
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read data config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse data config %s: %w", path, err)
	}
	return cfg, nil
}

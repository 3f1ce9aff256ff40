// Package config loads cardmerge settings: defaults, overridden by an
// optional YAML file, overridden by environment variables. The file
// can also extend the built-in nickname and generic-domain tables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all tunable settings.
type Config struct {
	// ConfidenceFloor is the minimum pairwise score for two records to
	// be linked into a duplicate group. Default: 50. Range: 1-100.
	ConfidenceFloor int `yaml:"confidence_floor"`

	// NameBucketCap caps candidate generation from name-text buckets
	// to bound fan-out on very common names. Default: 100. Range: 2+.
	NameBucketCap int `yaml:"name_bucket_cap"`

	// PhoneticBucketCap caps candidate generation from Soundex
	// buckets. Default: 50. Range: 2+.
	PhoneticBucketCap int `yaml:"phonetic_bucket_cap"`

	// AutoThreshold is the minimum group confidence for non-
	// interactive auto-approval in `cardmerge merge`. Default: 90.
	// Range: 50-100.
	AutoThreshold int `yaml:"auto_threshold"`

	// ExtraNicknames extends the built-in nickname table
	// (nickname -> canonical first name).
	ExtraNicknames map[string]string `yaml:"extra_nicknames"`

	// ExtraGenericDomains extends the consumer email provider list
	// used by warning detection.
	ExtraGenericDomains []string `yaml:"extra_generic_domains"`
}

// Default returns the shipped defaults.
func Default() Config {
	return Config{
		ConfidenceFloor:   50,
		NameBucketCap:     100,
		PhoneticBucketCap: 50,
		AutoThreshold:     90,
	}
}

// Validate checks ranges.
func (c Config) Validate() error {
	if c.ConfidenceFloor < 1 || c.ConfidenceFloor > 100 {
		return fmt.Errorf("confidence_floor must be between 1 and 100 (got %d)", c.ConfidenceFloor)
	}
	if c.NameBucketCap < 2 {
		return fmt.Errorf("name_bucket_cap must be at least 2 (got %d)", c.NameBucketCap)
	}
	if c.PhoneticBucketCap < 2 {
		return fmt.Errorf("phonetic_bucket_cap must be at least 2 (got %d)", c.PhoneticBucketCap)
	}
	if c.AutoThreshold < 50 || c.AutoThreshold > 100 {
		return fmt.Errorf("auto_threshold must be between 50 and 100 (got %d)", c.AutoThreshold)
	}
	return nil
}

// Load builds the effective configuration: defaults, then the YAML
// file at path (skipped silently when path is empty or the default
// location does not exist), then environment variables:
//
//	CARDMERGE_CONFIDENCE_FLOOR
//	CARDMERGE_NAME_BUCKET_CAP
//	CARDMERGE_PHONETIC_BUCKET_CAP
//	CARDMERGE_AUTO_THRESHOLD
//
// The result is validated before being returned.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + "/.cardmerge.yaml"
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case explicit:
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := parseEnvInt("CARDMERGE_CONFIDENCE_FLOOR", &cfg.ConfidenceFloor); err != nil {
		return cfg, err
	}
	if err := parseEnvInt("CARDMERGE_NAME_BUCKET_CAP", &cfg.NameBucketCap); err != nil {
		return cfg, err
	}
	if err := parseEnvInt("CARDMERGE_PHONETIC_BUCKET_CAP", &cfg.PhoneticBucketCap); err != nil {
		return cfg, err
	}
	if err := parseEnvInt("CARDMERGE_AUTO_THRESHOLD", &cfg.AutoThreshold); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// parseEnvInt parses an int from an environment variable, leaving dest
// untouched when the variable is unset.
func parseEnvInt(key string, dest *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

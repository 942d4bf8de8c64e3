package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"extguard/internal/model"
)

// overrideFile is the YAML shape for catalog overrides.
type overrideFile struct {
	Permissions []Record `yaml:"permissions"`
}

// Load builds the catalog from the builtin table overlaid with an
// optional YAML override file. Empty path falls back to
// ~/.extguard/catalog.yaml. Missing file returns the builtin catalog.
// Invalid YAML or an invalid tier returns an error.
func Load(path string) (*Catalog, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), nil
		}
		path = filepath.Join(home, ".extguard", "catalog.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read catalog override: %w", err)
	}

	var of overrideFile
	if err := yaml.Unmarshal(data, &of); err != nil {
		return nil, fmt.Errorf("parse catalog override: %w", err)
	}

	for i, r := range of.Permissions {
		if r.ID == "" {
			return nil, fmt.Errorf("catalog override: record with empty id")
		}
		tier := model.Tier(strings.ToUpper(string(r.Tier)))
		if _, ok := model.TierRank[tier]; !ok {
			return nil, fmt.Errorf("catalog override: permission %q has unknown tier %q", r.ID, r.Tier)
		}
		of.Permissions[i].Tier = tier
	}

	// Builtins first, overrides replace or extend.
	merged := make([]Record, 0, len(builtinRecords)+len(of.Permissions))
	merged = append(merged, builtinRecords...)
	merged = append(merged, of.Permissions...)
	return New(merged), nil
}

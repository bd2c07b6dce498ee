// Package config loads the provider catalogue: credentials, base URLs, and
// request budgets per source key. Secrets come from the environment; the
// YAML file carries defaults and can be overridden per deployment.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourceCredentials is what the adapters need to talk to one provider.
// An empty APIKey or BaseURL means the source is not configured.
type SourceCredentials struct {
	APIKey               string
	BaseURL              string
	MaxRequestsPerMinute int
}

type sourceEntry struct {
	APIKeyEnv            string `yaml:"apiKeyEnv"`
	BaseURL              string `yaml:"baseUrl"`
	MaxRequestsPerMinute int    `yaml:"maxRequestsPerMinute"`
}

type catalogueFile struct {
	Sources map[string]sourceEntry `yaml:"sources"`
}

// Sources resolves per-provider credentials by source key.
type Sources struct {
	entries map[string]sourceEntry
}

const defaultRequestsPerMinute = 30

// Built-in defaults matching the providers this system ships with. A YAML
// file replaces an entry wholesale when it names the same key.
var defaultEntries = map[string]sourceEntry{
	"the-guardian": {
		APIKeyEnv:            "GUARDIAN_API_KEY",
		BaseURL:              "https://content.guardianapis.com",
		MaxRequestsPerMinute: 12,
	},
	"newsapi": {
		APIKeyEnv:            "NEWS_API_KEY",
		BaseURL:              "https://newsapi.org/v2",
		MaxRequestsPerMinute: 100,
	},
	"new-york-times": {
		APIKeyEnv:            "NYT_API_KEY",
		BaseURL:              "https://api.nytimes.com/svc",
		MaxRequestsPerMinute: 5,
	},
}

// LoadSources reads the catalogue file at path, or returns the built-in
// defaults when path is empty.
func LoadSources(path string) (*Sources, error) {
	entries := make(map[string]sourceEntry, len(defaultEntries))
	for key, entry := range defaultEntries {
		entries[key] = entry
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading source catalogue [%s]: %w", path, err)
		}

		var file catalogueFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("parsing source catalogue [%s]: %w", path, err)
		}

		for key, entry := range file.Sources {
			entries[key] = entry
		}
	}

	return &Sources{entries: entries}, nil
}

// Lookup resolves credentials for a source key. The API key is read from
// the entry's environment variable at lookup time, so rotated secrets take
// effect without a restart of long-running fetch daemons.
func (s *Sources) Lookup(key string) (SourceCredentials, bool) {
	entry, ok := s.entries[key]
	if !ok {
		return SourceCredentials{}, false
	}

	rpm := entry.MaxRequestsPerMinute
	if rpm <= 0 {
		rpm = defaultRequestsPerMinute
	}

	return SourceCredentials{
		APIKey:               os.Getenv(entry.APIKeyEnv),
		BaseURL:              entry.BaseURL,
		MaxRequestsPerMinute: rpm,
	}, true
}

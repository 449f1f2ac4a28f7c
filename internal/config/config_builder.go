package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder collects partial configurations from the supported sources
// and merges them with first-source-wins precedence.
type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{}
}

// add runs one source loader and records its result. Loader errors are
// accumulated so build reports them together.
func (b *configBuilder) add(load func() (*StructuredConfig, error)) *configBuilder {
	cfg, err := load()
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, cfg)

	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	return b.add(func() (*StructuredConfig, error) {
		cfg := new(StructuredConfig)
		if err := parseEnv(cfg); err != nil {
			return nil, err
		}

		return cfg, nil
	})
}

func (b *configBuilder) withFlags() *configBuilder {
	return b.add(func() (*StructuredConfig, error) {
		return ParseFlags(), nil
	})
}

// withJSON loads the optional JSON file when an earlier source named one,
// so it must run after withEnv and withFlags.
func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
			break
		}
	}

	if jsonPath == "" {
		return b
	}

	return b.add(func() (*StructuredConfig, error) {
		return parseJSON(jsonPath)
	})
}

// build merges the collected sources in registration order. A field set by
// an earlier source is never overwritten by a later one.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("building config: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(merged, cfg); err != nil {
			return nil, fmt.Errorf("merging config sources: %w", err)
		}
	}

	return merged, merged.validate()
}

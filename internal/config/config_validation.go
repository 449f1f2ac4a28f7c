// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Spec.Location == "" {
		return ErrSpecLocationRequired
	}

	switch cfg.Storage.Driver {
	case "", DriverMemory:
		// memory backend needs no DSN
	case DriverSQLite, DriverPostgres:
		if cfg.Storage.DSN == "" {
			return ErrStorageDSNRequired
		}
	default:
		return ErrUnknownStorageDriver
	}

	if cfg.App.TokenIssuer != "" && cfg.App.TokenSignKey == "" {
		return ErrTokenIssuerWithoutKey
	}

	return nil
}

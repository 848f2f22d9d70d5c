// SPDX-License-Identifier: Apache-2.0

package config

import "time"

// Fallbacks applied to any field left zero after all sources are merged.
const (
	defaultHTTPAddress    = "0.0.0.0:8080"
	defaultRequestTimeout = 30 * time.Second
	defaultTokenDuration  = 24 * time.Hour
	defaultTokenIssuer    = "contacts-api"
	defaultDBDriver       = "pgx"
	defaultCacheTTL       = 5 * time.Minute
	defaultCacheCapacity  = 500
	defaultAITimeout      = 10 * time.Second
	defaultSweepInterval  = time.Hour
	defaultRetention      = 24 * time.Hour
)

// applyDefaults fills in the documented fallback for every tunable the
// operator did not set. Secrets (sign key, DSN, AI key) have no defaults.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.AITimeout == 0 {
		cfg.App.AITimeout = defaultAITimeout
	}
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = defaultDBDriver
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = defaultCacheTTL
	}
	if cfg.Cache.Capacity == 0 {
		cfg.Cache.Capacity = defaultCacheCapacity
	}
	if cfg.Workers.SweepInterval == 0 {
		cfg.Workers.SweepInterval = defaultSweepInterval
	}
	if cfg.Workers.Retention == 0 {
		cfg.Workers.Retention = defaultRetention
	}

	cfg.RateLimit.applyDefaults()
}

func (rl *RateLimit) applyDefaults() {
	if rl.General.Max == 0 {
		rl.General = LimitClass{Max: 100, Window: 15 * time.Minute}
	}
	if rl.Search.Max == 0 {
		rl.Search = LimitClass{Max: 30, Window: time.Minute}
	}
	if rl.Auth.Max == 0 {
		rl.Auth = LimitClass{Max: 5, Window: 15 * time.Minute}
	}
	if rl.Mutation.Max == 0 {
		rl.Mutation = LimitClass{Max: 20, Window: 5 * time.Minute}
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return ErrNoTokenSignKey
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrNoDatabaseDSN
	}

	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/http"
	"strings"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or one of the sentinel errors
// from errors.go wrapped with the offending setting.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: HTTP address is required", ErrInvalidServerConfigs)
	}
	if _, ok := sameSiteModes[strings.ToLower(cfg.Server.CookieSameSite)]; !ok {
		return fmt.Errorf("%w: unknown SameSite mode %q", ErrInvalidServerConfigs, cfg.Server.CookieSameSite)
	}

	return nil
}

var sameSiteModes = map[string]http.SameSite{
	"":       http.SameSiteLaxMode,
	"lax":    http.SameSiteLaxMode,
	"strict": http.SameSiteStrictMode,
	"none":   http.SameSiteNoneMode,
}

// SameSite converts the configured cookie mode into an [http.SameSite] value.
// Unknown values fall back to Lax.
func (s Server) SameSite() http.SameSite {
	if mode, ok := sameSiteModes[strings.ToLower(s.CookieSameSite)]; ok {
		return mode
	}
	return http.SameSiteLaxMode
}

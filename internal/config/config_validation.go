// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// startup requirements. It runs after defaults are applied, so only values
// without a sensible default are checked for presence.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid*Configs sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenDuration <= 0 || cfg.App.ResetTokenTTL <= 0 {
		return fmt.Errorf("%w: token lifetimes must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Images.Bucket != "" && cfg.Storage.Images.Region == "" {
		return fmt.Errorf("%w: image bucket requires a region", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Images.MaxSize <= 0 {
		return fmt.Errorf("%w: image max size must be positive", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: http address is required", ErrInvalidServerConfigs)
	}

	if err := cfg.Mail.validate(); err != nil {
		return err
	}

	if cfg.Workers.TokenCleanupInterval <= 0 {
		return fmt.Errorf("%w: token cleanup interval must be positive", ErrInvalidWorkerConfigs)
	}

	return nil
}

func (m Mail) validate() error {
	transports := []string{MailTransportLog, MailTransportSES, MailTransportHTTP}
	if !slices.Contains(transports, m.Transport) {
		return fmt.Errorf("%w: unknown transport %q", ErrInvalidMailConfigs, m.Transport)
	}

	if m.Sender == "" {
		return fmt.Errorf("%w: sender is required", ErrInvalidMailConfigs)
	}

	switch m.Transport {
	case MailTransportSES:
		if m.Region == "" {
			return fmt.Errorf("%w: ses transport requires a region", ErrInvalidMailConfigs)
		}
	case MailTransportHTTP:
		if m.RelayURL == "" {
			return fmt.Errorf("%w: http transport requires a relay url", ErrInvalidMailConfigs)
		}
	}

	return nil
}

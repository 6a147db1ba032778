// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from the process environment through the `env`,
// `envPrefix` and `envDefault` tags of [StructuredConfig].
//
// Every variable that cannot be converted (a non-numeric PORT, a duration
// such as "soon") is reported as [ErrInvalidValue]; all of them are joined
// into the returned error.
func parseEnv(cfg *StructuredConfig) error {
	err := env.Parse(cfg)
	if err == nil {
		return nil
	}

	var aggErr env.AggregateError
	if !errors.As(err, &aggErr) {
		return fmt.Errorf("%w: environment: %w", ErrInvalidValue, err)
	}

	errs := make([]error, 0, len(aggErr.Errors))
	for _, e := range aggErr.Errors {
		errs = append(errs, fmt.Errorf("%w: environment: %w", ErrInvalidValue, e))
	}
	return errors.Join(errs...)
}

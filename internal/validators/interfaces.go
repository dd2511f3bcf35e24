// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks requests accepted by the cloud backend before
// they reach the services.
//
// A [Validator] accepts any supported request value, by value or pointer,
// and an optional list of field names that limits which rules run.
package validators

import "context"

// Validator validates obj, optionally restricted to the named fields.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}

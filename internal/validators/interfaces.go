// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks login, page and user update requests before they
// reach the services. Rules are written with ozzo-validation and failures
// wrap the sentinel errors of this package.
package validators

import "context"

// Validator checks obj. When fields are given only those fields are checked.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-user-directory/models"
	validation "github.com/go-ozzo/ozzo-validation"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldPage     = "page"
	FieldSize     = "size"
	FieldQuery    = "query"
)

// Paging limits.
const (
	MaxPageSize    = 100
	MaxQueryLength = 64
)

// RequestValidator validates the request models of the HTTP API.
type RequestValidator struct{}

func NewRequestValidator() Validator {
	return &RequestValidator{}
}

func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.LoginRequest:
		return v.validateLoginRequest(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(ctx, *value, fields...)

	case models.PageRequest:
		return v.validatePageRequest(ctx, value, fields...)
	case *models.PageRequest:
		return v.validatePageRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateLoginRequest(_ context.Context, req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	rules := make([]*validation.FieldRules, 0, len(fields))
	for _, f := range fields {
		switch f {
		case FieldUsername:
			rules = append(rules, validation.Field(&req.Username, validation.Required))
		case FieldPassword:
			rules = append(rules, validation.Field(&req.Password, validation.Required))
		default:
			return ErrUnknownField
		}
	}

	if err := validation.ValidateStruct(&req, rules...); err != nil {
		return fmt.Errorf("%w: %w", ErrMissingFields, err)
	}

	return nil
}

func (v *RequestValidator) validatePageRequest(_ context.Context, req models.PageRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPage, FieldSize, FieldQuery}
	}
	if i := slices.IndexFunc(fields, func(f string) bool {
		return f != FieldPage && f != FieldSize && f != FieldQuery
	}); i >= 0 {
		return ErrUnknownField
	}

	rules := make([]*validation.FieldRules, 0, len(fields))
	if slices.Contains(fields, FieldPage) {
		rules = append(rules, validation.Field(&req.Page, validation.Min(0)))
	}
	if slices.Contains(fields, FieldSize) {
		// Min ignores zero values, Required does not
		rules = append(rules, validation.Field(&req.Size, validation.Required, validation.Min(1), validation.Max(MaxPageSize)))
	}
	if slices.Contains(fields, FieldQuery) {
		rules = append(rules, validation.Field(&req.Query, validation.RuneLength(0, MaxQueryLength)))
	}

	if err := validation.ValidateStruct(&req, rules...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPageRequest, err)
	}

	return nil
}

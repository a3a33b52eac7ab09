// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"errors"
	"strings"

	"github.com/danielhkuo/quick-poll/models"
)

// ErrValidation matches every ValidationError via errors.Is
var ErrValidation = errors.New("invalid poll")

// ValidationError describes why poll input was rejected.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

var (
	ErrEmptyQuestion      = &ValidationError{Reason: "Poll question is required"}
	ErrInvalidOptionCount = &ValidationError{Reason: "Poll must have between 2 and 5 options"}
	ErrEmptyOption        = &ValidationError{Reason: "All options must be non-empty strings"}
	ErrDuplicateOption    = &ValidationError{Reason: "Duplicate options are not allowed"}
)

// Validate checks a question and its options after trimming whitespace.
// Options are compared case-insensitively.
func Validate(question string, options []string) error {
	if strings.TrimSpace(question) == "" {
		return ErrEmptyQuestion
	}

	if len(options) < models.MinOptions || len(options) > models.MaxOptions {
		return ErrInvalidOptionCount
	}

	for _, opt := range options {
		if strings.TrimSpace(opt) == "" {
			return ErrEmptyOption
		}
	}

	seen := make(map[string]bool, len(options))
	for _, opt := range options {
		key := strings.ToLower(strings.TrimSpace(opt))
		if seen[key] {
			return ErrDuplicateOption
		}
		seen[key] = true
	}

	return nil
}

// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"errors"
)

// The caller-facing error taxonomy. Handlers map these onto HTTP statuses;
// messages derive from them, never from raw collaborator errors.
var (
	// ErrInvalidCredentials: bad email or password, user-correctable.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrSignupRejected: the credential store refused the registration,
	// e.g. duplicate email or weak password.
	ErrSignupRejected = errors.New("signup rejected")
	// ErrRoleMismatch: authenticated but the claimed role does not match the
	// stored profile. The session is forcibly cleared before this surfaces.
	ErrRoleMismatch = errors.New("role mismatch")
	// ErrInvalidInvitation: unknown, expired, already redeemed or malformed
	// code. Never fatal to account creation.
	ErrInvalidInvitation = errors.New("invalid invitation")
	// ErrStoreUnavailable: infrastructure failure from any collaborator,
	// retryable.
	ErrStoreUnavailable = errors.New("store unavailable")
)

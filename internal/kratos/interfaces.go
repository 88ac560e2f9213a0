// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"

	"github.com/canonical/qualification-service/internal/types"
)

type ClientInterface interface {
	// VerifyPassword runs a native login flow and returns the authenticated principal.
	VerifyPassword(ctx context.Context, email, password string) (*types.Principal, error)
	// CreateIdentity runs a native registration flow. Metadata is denormalized
	// into the identity traits so later repair has material to work with.
	CreateIdentity(ctx context.Context, email, password string, meta types.PrincipalMetadata) (*types.Principal, error)
	// InvalidateSession revokes the current session, if any.
	InvalidateSession(ctx context.Context) error
	// CurrentSession resolves the principal for the persisted session token.
	// Returns (nil, nil) when no session exists.
	CurrentSession(ctx context.Context) (*types.Principal, error)
	// TriggerVerification dispatches a verification email.
	TriggerVerification(ctx context.Context, email string) error
	// Subscribe registers a session-change observer; the returned func
	// unsubscribes it. Observers receive nil when the session ends.
	Subscribe(fn func(*types.Principal)) func()
}

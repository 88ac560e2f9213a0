// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"

	"github.com/canonical/qualification-service/internal/types"
)

// ManagerInterface is the read surface of the session context exposed to the
// HTTP layer and other consumers.
type ManagerInterface interface {
	Current() (*types.Profile, bool)
	IsAuthenticated() bool
	Subscribe(fn func(Snapshot)) func()
	HasPermission(ctx context.Context, permission string) bool
}

// CredentialStoreInterface is the manager's view of the credential authority:
// the event stream plus the eager startup lookup.
type CredentialStoreInterface interface {
	CurrentSession(ctx context.Context) (*types.Principal, error)
	Subscribe(fn func(*types.Principal)) func()
}

// ProfileReaderInterface resolves profiles read-only. The subscription path
// never repairs; repair belongs to the sign-in path alone.
type ProfileReaderInterface interface {
	GetProfile(ctx context.Context, id string) (*types.Profile, error)
}

type AuthzInterface interface {
	CheckPlatformAccess(ctx context.Context, userID, permission string) (bool, error)
}

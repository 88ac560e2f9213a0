// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"context"

	"github.com/canonical/qualification-service/internal/types"
)

type ServiceInterface interface {
	SignIn(ctx context.Context, email, password string, claimedRole types.Role) (*types.Profile, error)
	Register(ctx context.Context, params RegistrationParams) (*types.Profile, error)
	Redeem(ctx context.Context, code string) (*types.Invitation, error)
	SignOut(ctx context.Context) error
}

// StorageInterface is the subset of the storage layer the engine needs.
type StorageInterface interface {
	GetProfile(ctx context.Context, id string) (*types.Profile, error)
	InsertProfile(ctx context.Context, p *types.Profile) (*types.Profile, error)
	UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) error
	TouchLastSignIn(ctx context.Context, id string) error
	GetInvitationByCode(ctx context.Context, code string) (*types.Invitation, error)
	AcceptInvitation(ctx context.Context, code string) error
	ExpireInvitation(ctx context.Context, code string) error
}

// CredentialStoreInterface is the engine's view of the credential authority.
type CredentialStoreInterface interface {
	VerifyPassword(ctx context.Context, email, password string) (*types.Principal, error)
	CreateIdentity(ctx context.Context, email, password string, meta types.PrincipalMetadata) (*types.Principal, error)
	InvalidateSession(ctx context.Context) error
	TriggerVerification(ctx context.Context, email string) error
}

type AuthzInterface interface {
	AssignContractor(ctx context.Context, userID string) error
	AssignSubcontractor(ctx context.Context, userID string) error
}

// SessionWriterInterface is the single write surface of the session context.
// Only the engine holds it.
type SessionWriterInterface interface {
	Set(profile *types.Profile)
	Clear()
	SetLoading(loading bool)
}

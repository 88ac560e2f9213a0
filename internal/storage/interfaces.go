// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/qualification-service/internal/types"
)

type StorageInterface interface {
	GetProfile(ctx context.Context, id string) (*types.Profile, error)
	InsertProfile(ctx context.Context, p *types.Profile) (*types.Profile, error)
	UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) error
	TouchLastSignIn(ctx context.Context, id string) error

	GetInvitationByCode(ctx context.Context, code string) (*types.Invitation, error)
	CreateInvitation(ctx context.Context, inv *types.Invitation) (*types.Invitation, error)
	ListInvitationsByContractor(ctx context.Context, contractorID string) ([]*types.Invitation, error)
	AcceptInvitation(ctx context.Context, code string) error
	ExpireInvitation(ctx context.Context, code string) error
}

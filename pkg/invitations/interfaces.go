// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitations

import (
	"context"

	"github.com/canonical/qualification-service/internal/types"
)

type ServiceInterface interface {
	Create(ctx context.Context, contractorID, email string) (*types.Invitation, error)
	ListByContractor(ctx context.Context, contractorID string) ([]*types.Invitation, error)
}

type StorageInterface interface {
	GetProfile(ctx context.Context, id string) (*types.Profile, error)
	CreateInvitation(ctx context.Context, inv *types.Invitation) (*types.Invitation, error)
	ListInvitationsByContractor(ctx context.Context, contractorID string) ([]*types.Invitation, error)
}

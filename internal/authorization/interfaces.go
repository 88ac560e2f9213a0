// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/go-sdk/client"

	"github.com/canonical/qualification-service/internal/openfga"
)

type AuthorizerInterface interface {
	Check(context.Context, string, string, string, ...openfga.Tuple) (bool, error)
	// CheckPlatformAccess answers whether a user holds a permission on the
	// qualification platform object.
	CheckPlatformAccess(context.Context, string, string) (bool, error)
	ValidateModel(context.Context) error

	AssignContractor(context.Context, string) error
	AssignSubcontractor(context.Context, string) error
	RemoveContractor(context.Context, string) error
	RemoveSubcontractor(context.Context, string) error
}

type AuthzClientInterface interface {
	Check(context.Context, string, string, string, ...openfga.Tuple) (bool, error)
	ReadModel(context.Context) (*fga.AuthorizationModel, error)
	CompareModel(context.Context, fga.AuthorizationModel) (bool, error)
	CreateStore(context.Context, string) (string, error)
	SetStoreID(context.Context, string)
	WriteModel(context.Context, *client.ClientWriteAuthorizationModelRequest) (string, error)
	WriteTuple(ctx context.Context, user, relation, object string) error
	DeleteTuple(ctx context.Context, user, relation, object string) error
}

// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"fmt"

	"github.com/canonical/qualification-service/internal/logging"
	"github.com/canonical/qualification-service/internal/monitoring"
	"github.com/canonical/qualification-service/internal/openfga"
	"github.com/canonical/qualification-service/internal/tracing"
)

var ErrInvalidAuthModel = fmt.Errorf("invalid authorization model schema")

var _ AuthorizerInterface = (*Authorizer)(nil)

type Authorizer struct {
	client AuthzClientInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *Authorizer) Check(ctx context.Context, user string, relation string, object string, contextualTuples ...openfga.Tuple) (bool, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.Check")
	defer span.End()

	return a.client.Check(ctx, user, relation, object, contextualTuples...)
}

func (a *Authorizer) CheckPlatformAccess(ctx context.Context, userID, permission string) (bool, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.CheckPlatformAccess")
	defer span.End()

	return a.Check(ctx, UserTuple(userID), permission, PlatformTuple(DefaultPlatform))
}

func (a *Authorizer) ValidateModel(ctx context.Context) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.ValidateModel")
	defer span.End()

	v0AuthzModel := NewAuthorizationModelProvider("v0")
	model := *v0AuthzModel.GetModel()

	eq, err := a.client.CompareModel(ctx, model)
	if err != nil {
		return err
	}
	if !eq {
		return ErrInvalidAuthModel
	}
	return nil
}

func (a *Authorizer) AssignContractor(ctx context.Context, userID string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.AssignContractor")
	defer span.End()

	return a.client.WriteTuple(ctx, UserTuple(userID), CONTRACTOR_RELATION, PlatformTuple(DefaultPlatform))
}

func (a *Authorizer) AssignSubcontractor(ctx context.Context, userID string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.AssignSubcontractor")
	defer span.End()

	return a.client.WriteTuple(ctx, UserTuple(userID), SUBCONTRACTOR_RELATION, PlatformTuple(DefaultPlatform))
}

func (a *Authorizer) RemoveContractor(ctx context.Context, userID string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.RemoveContractor")
	defer span.End()

	return a.client.DeleteTuple(ctx, UserTuple(userID), CONTRACTOR_RELATION, PlatformTuple(DefaultPlatform))
}

func (a *Authorizer) RemoveSubcontractor(ctx context.Context, userID string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.RemoveSubcontractor")
	defer span.End()

	return a.client.DeleteTuple(ctx, UserTuple(userID), SUBCONTRACTOR_RELATION, PlatformTuple(DefaultPlatform))
}

func NewAuthorizer(client AuthzClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	authorizer := new(Authorizer)
	authorizer.client = client
	authorizer.tracer = tracer
	authorizer.monitor = monitor
	authorizer.logger = logger

	return authorizer
}

// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitations

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/canonical/qualification-service/internal/logging"
	"github.com/canonical/qualification-service/internal/monitoring"
	"github.com/canonical/qualification-service/internal/storage"
	"github.com/canonical/qualification-service/internal/tracing"
	"github.com/canonical/qualification-service/internal/types"
)

// codeBytes yields 16 url-safe characters, comfortably above the redemption
// minimum length.
const codeBytes = 12

var ErrNotContractor = errors.New("issuer is not a contractor")

var _ ServiceInterface = (*Service)(nil)

// Service is the contractor-side backend for issuing invitations. Redemption
// lives in the onboarding engine.
type Service struct {
	storage  StorageInterface
	lifetime time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	lifetime time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:  storage,
		lifetime: lifetime,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (s *Service) Create(ctx context.Context, contractorID, email string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "invitations.Service.Create")
	defer span.End()

	issuer, err := s.storage.GetProfile(ctx, contractorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotContractor
		}
		return nil, fmt.Errorf("failed to resolve issuer: %w", err)
	}
	if issuer.Role != types.RoleContractor {
		return nil, ErrNotContractor
	}

	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation code: %w", err)
	}

	inv := &types.Invitation{
		Code:           code,
		Email:          email,
		ContractorID:   issuer.ID,
		ContractorName: issuer.CompanyName,
		ExpiresAt:      time.Now().UTC().Add(s.lifetime),
	}

	created, err := s.storage.CreateInvitation(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	s.logger.Infof("contractor %s invited %s, invitation %s", issuer.ID, email, created.ID)
	return created, nil
}

func (s *Service) ListByContractor(ctx context.Context, contractorID string) ([]*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "invitations.Service.ListByContractor")
	defer span.End()

	return s.storage.ListInvitationsByContractor(ctx, contractorID)
}

func generateCode() (string, error) {
	buf := make([]byte, codeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

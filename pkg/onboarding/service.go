// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canonical/qualification-service/internal/kratos"
	"github.com/canonical/qualification-service/internal/logging"
	"github.com/canonical/qualification-service/internal/monitoring"
	"github.com/canonical/qualification-service/internal/storage"
	"github.com/canonical/qualification-service/internal/tracing"
	"github.com/canonical/qualification-service/internal/types"
)

const verificationTimeout = 30 * time.Second

type RegistrationParams struct {
	Email          string
	Password       string
	Name           string
	CompanyName    string
	Role           types.Role
	InvitationCode string
}

// Service reconciles principals issued by the credential store with profile
// rows, redeems invitations at most once, and keeps the session context in
// step with the outcome of every explicit auth operation.
type Service struct {
	storage    StorageInterface
	credential CredentialStoreInterface
	authz      AuthzInterface
	sessions   SessionWriterInterface

	codeMinLength int

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	credential CredentialStoreInterface,
	authz AuthzInterface,
	sessions SessionWriterInterface,
	codeMinLength int,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:       storage,
		credential:    credential,
		authz:         authz,
		sessions:      sessions,
		codeMinLength: codeMinLength,
		tracer:        tracer,
		monitor:       monitor,
		logger:        logger,
	}
}

// SignIn verifies credentials, repairs a missing profile if the principal
// drifted, and enforces the claimed role. On a role mismatch the session is
// invalidated before the failure surfaces so no caller ever observes an
// authenticated-but-unauthorized state.
func (s *Service) SignIn(ctx context.Context, email, password string, claimedRole types.Role) (*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "onboarding.Service.SignIn")
	defer span.End()

	s.sessions.SetLoading(true)

	principal, err := s.credential.VerifyPassword(ctx, email, password)
	if err != nil {
		s.sessions.SetLoading(false)
		if errors.Is(err, kratos.ErrInvalidCredentials) {
			s.logger.Security().AuthFailure(email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Errorf("credential store failure during sign in: %v", err)
		return nil, fmt.Errorf("%w: credential store", ErrStoreUnavailable)
	}

	profile, err := s.storage.GetProfile(ctx, principal.ID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			// Role can't be established; don't leave a session behind.
			if sErr := s.credential.InvalidateSession(ctx); sErr != nil {
				s.logger.Errorf("failed to invalidate session: %v", sErr)
			}
			s.sessions.Clear()
			s.logger.Errorf("profile lookup failed for %s: %v", principal.ID, err)
			return nil, fmt.Errorf("%w: profile store", ErrStoreUnavailable)
		}
		// Drift: the principal exists without a profile. Every login attempt
		// is also a repair attempt.
		profile = s.repairProfile(ctx, principal, claimedRole)
	}

	if profile.Role != claimedRole {
		if sErr := s.credential.InvalidateSession(ctx); sErr != nil {
			s.logger.Errorf("failed to invalidate session after role mismatch: %v", sErr)
		}
		s.sessions.Clear()
		s.logger.Security().SessionRevoked(principal.ID, "role_mismatch")
		return nil, fmt.Errorf("%w: account is not registered as a %s", ErrRoleMismatch, claimedRole)
	}

	if principal.Verified && !profile.EmailVerified {
		// The credential store is the source of truth for verification.
		if err := s.storage.UpdateProfile(ctx, profile.ID, map[string]interface{}{"email_verified": true}); err != nil {
			s.logger.Warnf("failed to sync verification state for %s: %v", profile.ID, err)
		} else {
			profile.EmailVerified = true
		}
	}

	if err := s.storage.TouchLastSignIn(ctx, profile.ID); err != nil {
		s.logger.Warnf("failed to record last sign in for %s: %v", profile.ID, err)
	} else {
		now := time.Now().UTC()
		profile.LastSignInAt = &now
	}

	s.sessions.Set(profile)
	s.logger.Security().AuthSuccess(profile.ID)
	return profile, nil
}

// repairProfile closes the drift window by synthesizing a profile from the
// principal's stored metadata, with the claimed role as fallback. Failures
// here are logged, never surfaced: the next sign-in retries the repair.
func (s *Service) repairProfile(ctx context.Context, principal *types.Principal, claimedRole types.Role) *types.Profile {
	role := claimedRole
	if meta := types.Role(principal.Metadata.Role); meta.Valid() {
		role = meta
	}

	profile := &types.Profile{
		ID:            principal.ID,
		Email:         principal.Email,
		Name:          principal.Metadata.Name,
		CompanyName:   principal.Metadata.CompanyName,
		Role:          role,
		EmailVerified: principal.Verified,
		CreatedAt:     time.Now().UTC(),
	}

	created, err := s.storage.InsertProfile(ctx, profile)
	switch {
	case err == nil:
		s.logger.Infof("repaired missing profile for principal %s", principal.ID)
		profile = created
	case errors.Is(err, storage.ErrDuplicateKey):
		// Lost a race with a concurrent repair; the row is there.
		if existing, getErr := s.storage.GetProfile(ctx, principal.ID); getErr == nil {
			profile = existing
		}
	default:
		s.logger.Errorf("profile repair failed for %s: %v", principal.ID, err)
	}

	s.assignRole(ctx, profile.ID, profile.Role)
	return profile
}

// Register creates the principal first, then treats everything downstream as
// best-effort: a subcontractor account must exist even when invitation
// bookkeeping or profile persistence is unhealthy.
func (s *Service) Register(ctx context.Context, params RegistrationParams) (*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "onboarding.Service.Register")
	defer span.End()

	s.sessions.SetLoading(true)

	meta := types.PrincipalMetadata{
		Name:        params.Name,
		CompanyName: params.CompanyName,
		Role:        string(params.Role),
	}
	principal, err := s.credential.CreateIdentity(ctx, params.Email, params.Password, meta)
	if err != nil {
		s.sessions.SetLoading(false)
		if errors.Is(err, kratos.ErrSignupRejected) {
			return nil, fmt.Errorf("%w: email already in use or password not accepted", ErrSignupRejected)
		}
		s.logger.Errorf("credential store failure during registration: %v", err)
		return nil, fmt.Errorf("%w: credential store", ErrStoreUnavailable)
	}

	role := params.Role
	invitedBy := ""
	if params.InvitationCode != "" {
		inv, err := s.Redeem(ctx, params.InvitationCode)
		if err != nil {
			// Best-effort relative to account creation.
			s.logger.Warnf("invitation redemption failed during registration for %s: %v", params.Email, err)
		} else {
			// Consuming a subcontractor invitation pins the role, whatever
			// the form claimed.
			role = types.RoleSubcontractor
			invitedBy = inv.ContractorID
		}
	}

	profile := &types.Profile{
		ID:          principal.ID,
		Email:       params.Email,
		Name:        params.Name,
		CompanyName: params.CompanyName,
		Role:        role,
		InvitedBy:   invitedBy,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.storage.InsertProfile(ctx, profile)
	switch {
	case err == nil:
		profile = created
	case errors.Is(err, storage.ErrDuplicateKey):
		// Raced an async backfill; the row exists, which is what we wanted.
		if existing, getErr := s.storage.GetProfile(ctx, principal.ID); getErr == nil {
			profile = existing
		}
	default:
		// The next sign-in repairs the missing row from principal metadata.
		s.logger.Errorf("failed to create profile for %s: %v", principal.ID, err)
	}

	s.assignRole(ctx, profile.ID, profile.Role)

	s.sessions.Set(profile)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), verificationTimeout)
		defer cancel()
		if err := s.credential.TriggerVerification(ctx, params.Email); err != nil {
			s.logger.Warnf("verification email dispatch failed for %s: %v", params.Email, err)
		}
	}()

	return profile, nil
}

// Redeem performs the at-most-once pending -> accepted transition. When two
// registrations race on the same code, the storage layer's conditional update
// guarantees exactly one winner.
func (s *Service) Redeem(ctx context.Context, code string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "onboarding.Service.Redeem")
	defer span.End()

	if len(code) < s.codeMinLength {
		return nil, fmt.Errorf("%w: code too short", ErrInvalidInvitation)
	}

	inv, err := s.storage.GetInvitationByCode(ctx, code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown code", ErrInvalidInvitation)
		}
		return nil, fmt.Errorf("%w: invitation registry", ErrStoreUnavailable)
	}

	if inv.Status != types.InvitationPending {
		return nil, fmt.Errorf("%w: invitation is %s", ErrInvalidInvitation, inv.Status)
	}

	if time.Now().After(inv.ExpiresAt) {
		if err := s.storage.ExpireInvitation(ctx, code); err != nil {
			s.logger.Warnf("failed to mark invitation %s expired: %v", inv.ID, err)
		}
		return nil, fmt.Errorf("%w: invitation expired", ErrInvalidInvitation)
	}

	if err := s.storage.AcceptInvitation(ctx, code); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Someone else won the transition between our read and write.
			return nil, fmt.Errorf("%w: invitation already redeemed", ErrInvalidInvitation)
		}
		return nil, fmt.Errorf("%w: invitation registry", ErrStoreUnavailable)
	}

	inv.Status = types.InvitationAccepted
	return inv, nil
}

func (s *Service) SignOut(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "onboarding.Service.SignOut")
	defer span.End()

	s.sessions.SetLoading(true)
	err := s.credential.InvalidateSession(ctx)
	s.sessions.Clear()

	if err != nil {
		s.logger.Errorf("failed to invalidate session: %v", err)
		return fmt.Errorf("%w: credential store", ErrStoreUnavailable)
	}
	return nil
}

func (s *Service) assignRole(ctx context.Context, userID string, role types.Role) {
	var err error
	switch role {
	case types.RoleContractor:
		err = s.authz.AssignContractor(ctx, userID)
	case types.RoleSubcontractor:
		err = s.authz.AssignSubcontractor(ctx, userID)
	}
	if err != nil {
		s.logger.Errorf("failed to assign %s relation for %s: %v", role, userID, err)
	}
}

// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/qualification-service/internal/kratos"
	"github.com/canonical/qualification-service/internal/storage"
	"github.com/canonical/qualification-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package onboarding -destination ./mock_onboarding.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package onboarding -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package onboarding -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package onboarding -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

const codeMinLength = 8

type serviceMocks struct {
	storage    *MockStorageInterface
	credential *MockCredentialStoreInterface
	authz      *MockAuthzInterface
	sessions   *MockSessionWriterInterface
	security   *MockSecurityLoggerInterface
}

func newTestService(t *testing.T, ctrl *gomock.Controller) (*Service, *serviceMocks) {
	t.Helper()

	m := &serviceMocks{
		storage:    NewMockStorageInterface(ctrl),
		credential: NewMockCredentialStoreInterface(ctrl),
		authz:      NewMockAuthzInterface(ctrl),
		sessions:   NewMockSessionWriterInterface(ctrl),
		security:   NewMockSecurityLoggerInterface(ctrl),
	}

	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		},
	).AnyTimes()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockLogger.EXPECT().Security().Return(m.security).AnyTimes()
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

	mockMonitor := NewMockMonitorInterface(ctrl)

	s := NewService(m.storage, m.credential, m.authz, m.sessions, codeMinLength, mockTracer, mockMonitor, mockLogger)
	return s, m
}

func TestService_SignIn(t *testing.T) {
	principal := &types.Principal{
		ID:       "principal-1",
		Email:    "owner@built.example",
		Verified: true,
		Metadata: types.PrincipalMetadata{
			Name:        "Dana Builder",
			CompanyName: "Built Inc",
			Role:        "contractor",
		},
	}
	contractorProfile := &types.Profile{
		ID:            "principal-1",
		Email:         "owner@built.example",
		Name:          "Dana Builder",
		CompanyName:   "Built Inc",
		Role:          types.RoleContractor,
		EmailVerified: true,
	}
	storeErr := errors.New("connection refused")

	testCases := []struct {
		name        string
		claimedRole types.Role
		setupMocks  func(*serviceMocks)
		expectedErr error
	}{
		{
			name:        "success",
			claimedRole: types.RoleContractor,
			setupMocks: func(m *serviceMocks) {
				m.sessions.EXPECT().SetLoading(true)
				m.credential.EXPECT().VerifyPassword(gomock.Any(), "owner@built.example", "secret").Return(principal, nil)
				m.storage.EXPECT().GetProfile(gomock.Any(), "principal-1").Return(contractorProfile, nil)
				m.storage.EXPECT().TouchLastSignIn(gomock.Any(), "principal-1").Return(nil)
				m.sessions.EXPECT().Set(contractorProfile)
				m.security.EXPECT().AuthSuccess("principal-1")
			},
		},
		{
			name:        "stale verification flag is synced from the credential store",
			claimedRole: types.RoleContractor,
			setupMocks: func(m *serviceMocks) {
				stale := &types.Profile{
					ID:          "principal-1",
					Email:       "owner@built.example",
					Name:        "Dana Builder",
					CompanyName: "Built Inc",
					Role:        types.RoleContractor,
				}
				m.sessions.EXPECT().SetLoading(true)
				m.credential.EXPECT().VerifyPassword(gomock.Any(), "owner@built.example", "secret").Return(principal, nil)
				m.storage.EXPECT().GetProfile(gomock.Any(), "principal-1").Return(stale, nil)
				m.storage.EXPECT().UpdateProfile(gomock.Any(), "principal-1", map[string]interface{}{"email_verified": true}).Return(nil)
				m.storage.EXPECT().TouchLastSignIn(gomock.Any(), "principal-1").Return(nil)
				m.sessions.EXPECT().Set(gomock.Any()).Do(func(p *types.Profile) {
					if !p.EmailVerified {
						t.Error("expected the published profile to be marked verified")
					}
				})
				m.security.EXPECT().AuthSuccess("principal-1")
			},
		},
		{
			name:        "invalid credentials",
			claimedRole: types.RoleContractor,
			setupMocks: func(m *serviceMocks) {
				m.sessions.EXPECT().SetLoading(true)
				m.credential.EXPECT().VerifyPassword(gomock.Any(), "owner@built.example", "secret").Return(nil, kratos.ErrInvalidCredentials)
				m.sessions.EXPECT().SetLoading(false)
				m.security.EXPECT().AuthFailure("owner@built.example")
			},
			expectedErr: ErrInvalidCredentials,
		},
		{
			name:        "credential store unavailable",
			claimedRole: types.RoleContractor,
			setupMocks: func(m *serviceMocks) {
				m.sessions.EXPECT().SetLoading(true)
				m.credential.EXPECT().VerifyPassword(gomock.Any(), "owner@built.example", "secret").Return(nil, storeErr)
				m.sessions.EXPECT().SetLoading(false)
			},
			expectedErr: ErrStoreUnavailable,
		},
		{
			name:        "profile store unavailable invalidates session",
			claimedRole: types.RoleContractor,
			setupMocks: func(m *serviceMocks) {
				m.sessions.EXPECT().SetLoading(true)
				m.credential.EXPECT().VerifyPassword(gomock.Any(), "owner@built.example", "secret").Return(principal, nil)
				m.storage.EXPECT().GetProfile(gomock.Any(), "principal-1").Return(nil, storeErr)
				m.credential.EXPECT().InvalidateSession(gomock.Any()).Return(nil)
				m.sessions.EXPECT().Clear()
			},
			expectedErr: ErrStoreUnavailable,
		},
		{
			name:        "role mismatch revokes session before surfacing",
			claimedRole: types.RoleSubcontractor,
			setupMocks: func(m *serviceMocks) {
				m.sessions.EXPECT().SetLoading(true)
				m.credential.EXPECT().VerifyPassword(gomock.Any(), "owner@built.example", "secret").Return(principal, nil)
				m.storage.EXPECT().GetProfile(gomock.Any(), "principal-1").Return(contractorProfile, nil)
				gomock.InOrder(
					m.credential.EXPECT().InvalidateSession(gomock.Any()).Return(nil),
					m.sessions.EXPECT().Clear(),
					m.security.EXPECT().SessionRevoked("principal-1", "role_mismatch"),
				)
			},
			expectedErr: ErrRoleMismatch,
		},
		{
			name:        "missing profile is repaired from principal metadata",
			claimedRole: types.RoleContractor,
			setupMocks: func(m *serviceMocks) {
				m.sessions.EXPECT().SetLoading(true)
				m.credential.EXPECT().VerifyPassword(gomock.Any(), "owner@built.example", "secret").Return(principal, nil)
				m.storage.EXPECT().GetProfile(gomock.Any(), "principal-1").Return(nil, storage.ErrNotFound)
				m.storage.EXPECT().InsertProfile(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, p *types.Profile) (*types.Profile, error) {
						if p.Role != types.RoleContractor {
							t.Errorf("expected repaired role contractor, got %s", p.Role)
						}
						if p.CompanyName != "Built Inc" {
							t.Errorf("expected company from metadata, got %q", p.CompanyName)
						}
						return p, nil
					},
				)
				m.authz.EXPECT().AssignContractor(gomock.Any(), "principal-1").Return(nil)
				m.storage.EXPECT().TouchLastSignIn(gomock.Any(), "principal-1").Return(nil)
				m.sessions.EXPECT().Set(gomock.Any())
				m.security.EXPECT().AuthSuccess("principal-1")
			},
		},
		{
			name:        "repair lost race falls back to existing row",
			claimedRole: types.RoleContractor,
			setupMocks: func(m *serviceMocks) {
				m.sessions.EXPECT().SetLoading(true)
				m.credential.EXPECT().VerifyPassword(gomock.Any(), "owner@built.example", "secret").Return(principal, nil)
				gomock.InOrder(
					m.storage.EXPECT().GetProfile(gomock.Any(), "principal-1").Return(nil, storage.ErrNotFound),
					m.storage.EXPECT().InsertProfile(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey),
					m.storage.EXPECT().GetProfile(gomock.Any(), "principal-1").Return(contractorProfile, nil),
				)
				m.authz.EXPECT().AssignContractor(gomock.Any(), "principal-1").Return(nil)
				m.storage.EXPECT().TouchLastSignIn(gomock.Any(), "principal-1").Return(nil)
				m.sessions.EXPECT().Set(contractorProfile)
				m.security.EXPECT().AuthSuccess("principal-1")
			},
		},
		{
			name:        "repaired profile still enforces claimed role",
			claimedRole: types.RoleSubcontractor,
			setupMocks: func(m *serviceMocks) {
				m.sessions.EXPECT().SetLoading(true)
				m.credential.EXPECT().VerifyPassword(gomock.Any(), "owner@built.example", "secret").Return(principal, nil)
				m.storage.EXPECT().GetProfile(gomock.Any(), "principal-1").Return(nil, storage.ErrNotFound)
				// Metadata says contractor, so the repair keeps that role and
				// the subcontractor claim is then rejected.
				m.storage.EXPECT().InsertProfile(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, p *types.Profile) (*types.Profile, error) {
						return p, nil
					},
				)
				m.authz.EXPECT().AssignContractor(gomock.Any(), "principal-1").Return(nil)
				m.credential.EXPECT().InvalidateSession(gomock.Any()).Return(nil)
				m.sessions.EXPECT().Clear()
				m.security.EXPECT().SessionRevoked("principal-1", "role_mismatch")
			},
			expectedErr: ErrRoleMismatch,
		},
		{
			name:        "last sign in bookkeeping failure is not fatal",
			claimedRole: types.RoleContractor,
			setupMocks: func(m *serviceMocks) {
				m.sessions.EXPECT().SetLoading(true)
				m.credential.EXPECT().VerifyPassword(gomock.Any(), "owner@built.example", "secret").Return(principal, nil)
				m.storage.EXPECT().GetProfile(gomock.Any(), "principal-1").Return(contractorProfile, nil)
				m.storage.EXPECT().TouchLastSignIn(gomock.Any(), "principal-1").Return(storeErr)
				m.sessions.EXPECT().Set(contractorProfile)
				m.security.EXPECT().AuthSuccess("principal-1")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(t, ctrl)
			tc.setupMocks(m)

			profile, err := s.SignIn(context.Background(), "owner@built.example", "secret", tc.claimedRole)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Errorf("expected error %v, got %v", tc.expectedErr, err)
				}
				if profile != nil {
					t.Errorf("expected no profile on failure, got %+v", profile)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if profile == nil {
				t.Fatal("expected a profile")
			}
			if profile.Role != tc.claimedRole {
				t.Errorf("expected role %s, got %s", tc.claimedRole, profile.Role)
			}
		})
	}
}

func TestService_Register(t *testing.T) {
	principal := &types.Principal{
		ID:    "principal-2",
		Email: "sub@trades.example",
	}
	pendingInvitation := &types.Invitation{
		ID:             "inv-1",
		Code:           "ABC12345",
		Email:          "sub@trades.example",
		ContractorID:   "contractor-1",
		ContractorName: "Built Inc",
		Status:         types.InvitationPending,
		ExpiresAt:      time.Now().Add(time.Hour),
	}
	storeErr := errors.New("connection refused")

	baseParams := RegistrationParams{
		Email:       "sub@trades.example",
		Password:    "secret123",
		Name:        "Sam Welder",
		CompanyName: "Trades Co",
		Role:        types.RoleSubcontractor,
	}

	testCases := []struct {
		name              string
		params            RegistrationParams
		setupMocks        func(*serviceMocks, chan struct{})
		expectedErr       error
		expectedRole      types.Role
		expectedInvitedBy string
	}{
		{
			name:   "success without invitation",
			params: baseParams,
			setupMocks: func(m *serviceMocks, verified chan struct{}) {
				m.sessions.EXPECT().SetLoading(true)
				m.credential.EXPECT().CreateIdentity(gomock.Any(), "sub@trades.example", "secret123", gomock.Any()).Return(principal, nil)
				m.storage.EXPECT().InsertProfile(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, p *types.Profile) (*types.Profile, error) {
						return p, nil
					},
				)
				m.authz.EXPECT().AssignSubcontractor(gomock.Any(), "principal-2").Return(nil)
				m.sessions.EXPECT().Set(gomock.Any())
				m.credential.EXPECT().TriggerVerification(gomock.Any(), "sub@trades.example").DoAndReturn(
					func(_ context.Context, _ string) error {
						close(verified)
						return nil
					},
				)
			},
			expectedRole: types.RoleSubcontractor,
		},
		{
			name: "valid invitation pins subcontractor role",
			params: func() RegistrationParams {
				p := baseParams
				// The form claims contractor, the invitation wins.
				p.Role = types.RoleContractor
				p.InvitationCode = "ABC12345"
				return p
			}(),
			setupMocks: func(m *serviceMocks, verified chan struct{}) {
				m.sessions.EXPECT().SetLoading(true)
				m.credential.EXPECT().CreateIdentity(gomock.Any(), "sub@trades.example", "secret123", gomock.Any()).Return(principal, nil)
				m.storage.EXPECT().GetInvitationByCode(gomock.Any(), "ABC12345").Return(pendingInvitation, nil)
				m.storage.EXPECT().AcceptInvitation(gomock.Any(), "ABC12345").Return(nil)
				m.storage.EXPECT().InsertProfile(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, p *types.Profile) (*types.Profile, error) {
						return p, nil
					},
				)
				m.authz.EXPECT().AssignSubcontractor(gomock.Any(), "principal-2").Return(nil)
				m.sessions.EXPECT().Set(gomock.Any())
				m.credential.EXPECT().TriggerVerification(gomock.Any(), "sub@trades.example").DoAndReturn(
					func(_ context.Context, _ string) error {
						close(verified)
						return nil
					},
				)
			},
			expectedRole:      types.RoleSubcontractor,
			expectedInvitedBy: "contractor-1",
		},
		{
			name: "invalid invitation does not block registration",
			params: func() RegistrationParams {
				p := baseParams
				p.InvitationCode = "UNKNOWN123"
				return p
			}(),
			setupMocks: func(m *serviceMocks, verified chan struct{}) {
				m.sessions.EXPECT().SetLoading(true)
				m.credential.EXPECT().CreateIdentity(gomock.Any(), "sub@trades.example", "secret123", gomock.Any()).Return(principal, nil)
				m.storage.EXPECT().GetInvitationByCode(gomock.Any(), "UNKNOWN123").Return(nil, storage.ErrNotFound)
				m.storage.EXPECT().InsertProfile(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, p *types.Profile) (*types.Profile, error) {
						return p, nil
					},
				)
				m.authz.EXPECT().AssignSubcontractor(gomock.Any(), "principal-2").Return(nil)
				m.sessions.EXPECT().Set(gomock.Any())
				m.credential.EXPECT().TriggerVerification(gomock.Any(), "sub@trades.example").DoAndReturn(
					func(_ context.Context, _ string) error {
						close(verified)
						return nil
					},
				)
			},
			expectedRole: types.RoleSubcontractor,
		},
		{
			name:   "signup rejected",
			params: baseParams,
			setupMocks: func(m *serviceMocks, verified chan struct{}) {
				m.sessions.EXPECT().SetLoading(true)
				m.credential.EXPECT().CreateIdentity(gomock.Any(), "sub@trades.example", "secret123", gomock.Any()).Return(nil, kratos.ErrSignupRejected)
				m.sessions.EXPECT().SetLoading(false)
				close(verified)
			},
			expectedErr: ErrSignupRejected,
		},
		{
			name:   "profile persistence failure is not fatal",
			params: baseParams,
			setupMocks: func(m *serviceMocks, verified chan struct{}) {
				m.sessions.EXPECT().SetLoading(true)
				m.credential.EXPECT().CreateIdentity(gomock.Any(), "sub@trades.example", "secret123", gomock.Any()).Return(principal, nil)
				m.storage.EXPECT().InsertProfile(gomock.Any(), gomock.Any()).Return(nil, storeErr)
				m.authz.EXPECT().AssignSubcontractor(gomock.Any(), "principal-2").Return(nil)
				m.sessions.EXPECT().Set(gomock.Any())
				m.credential.EXPECT().TriggerVerification(gomock.Any(), "sub@trades.example").DoAndReturn(
					func(_ context.Context, _ string) error {
						close(verified)
						return nil
					},
				)
			},
			expectedRole: types.RoleSubcontractor,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(t, ctrl)
			verified := make(chan struct{})
			tc.setupMocks(m, verified)

			profile, err := s.Register(context.Background(), tc.params)

			select {
			case <-verified:
			case <-time.After(time.Second):
				t.Fatal("verification email was never triggered")
			}

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Errorf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if profile == nil {
				t.Fatal("expected a profile")
			}
			if profile.Role != tc.expectedRole {
				t.Errorf("expected role %s, got %s", tc.expectedRole, profile.Role)
			}
			if profile.InvitedBy != tc.expectedInvitedBy {
				t.Errorf("expected invited_by %q, got %q", tc.expectedInvitedBy, profile.InvitedBy)
			}
		})
	}
}

func TestService_Redeem(t *testing.T) {
	pending := func() *types.Invitation {
		return &types.Invitation{
			ID:           "inv-1",
			Code:         "ABC12345",
			ContractorID: "contractor-1",
			Status:       types.InvitationPending,
			ExpiresAt:    time.Now().Add(time.Hour),
		}
	}
	storeErr := errors.New("connection refused")

	testCases := []struct {
		name        string
		code        string
		setupMocks  func(*serviceMocks)
		expectedErr error
	}{
		{
			name: "success",
			code: "ABC12345",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetInvitationByCode(gomock.Any(), "ABC12345").Return(pending(), nil)
				m.storage.EXPECT().AcceptInvitation(gomock.Any(), "ABC12345").Return(nil)
			},
		},
		{
			name:        "code below minimum length",
			code:        "short",
			setupMocks:  func(m *serviceMocks) {},
			expectedErr: ErrInvalidInvitation,
		},
		{
			name: "unknown code",
			code: "ABC12345",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetInvitationByCode(gomock.Any(), "ABC12345").Return(nil, storage.ErrNotFound)
			},
			expectedErr: ErrInvalidInvitation,
		},
		{
			name: "already accepted",
			code: "ABC12345",
			setupMocks: func(m *serviceMocks) {
				inv := pending()
				inv.Status = types.InvitationAccepted
				m.storage.EXPECT().GetInvitationByCode(gomock.Any(), "ABC12345").Return(inv, nil)
			},
			expectedErr: ErrInvalidInvitation,
		},
		{
			name: "expired invitation is marked and rejected",
			code: "ABC12345",
			setupMocks: func(m *serviceMocks) {
				inv := pending()
				inv.ExpiresAt = time.Now().Add(-time.Hour)
				m.storage.EXPECT().GetInvitationByCode(gomock.Any(), "ABC12345").Return(inv, nil)
				m.storage.EXPECT().ExpireInvitation(gomock.Any(), "ABC12345").Return(nil)
			},
			expectedErr: ErrInvalidInvitation,
		},
		{
			name: "concurrent redemption loses the conditional update",
			code: "ABC12345",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetInvitationByCode(gomock.Any(), "ABC12345").Return(pending(), nil)
				m.storage.EXPECT().AcceptInvitation(gomock.Any(), "ABC12345").Return(storage.ErrNotFound)
			},
			expectedErr: ErrInvalidInvitation,
		},
		{
			name: "registry unavailable",
			code: "ABC12345",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetInvitationByCode(gomock.Any(), "ABC12345").Return(nil, storeErr)
			},
			expectedErr: ErrStoreUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(t, ctrl)
			tc.setupMocks(m)

			inv, err := s.Redeem(context.Background(), tc.code)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Errorf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if inv == nil {
				t.Fatal("expected an invitation")
			}
			if inv.Status != types.InvitationAccepted {
				t.Errorf("expected status %s, got %s", types.InvitationAccepted, inv.Status)
			}
		})
	}
}

func TestService_SignOut(t *testing.T) {
	storeErr := errors.New("connection refused")

	testCases := []struct {
		name        string
		setupMocks  func(*serviceMocks)
		expectedErr error
	}{
		{
			name: "success",
			setupMocks: func(m *serviceMocks) {
				gomock.InOrder(
					m.sessions.EXPECT().SetLoading(true),
					m.credential.EXPECT().InvalidateSession(gomock.Any()).Return(nil),
					m.sessions.EXPECT().Clear(),
				)
			},
		},
		{
			name: "session context is cleared even when invalidation fails",
			setupMocks: func(m *serviceMocks) {
				gomock.InOrder(
					m.sessions.EXPECT().SetLoading(true),
					m.credential.EXPECT().InvalidateSession(gomock.Any()).Return(storeErr),
					m.sessions.EXPECT().Clear(),
				)
			},
			expectedErr: ErrStoreUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(t, ctrl)
			tc.setupMocks(m)

			err := s.SignOut(context.Background())

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Errorf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

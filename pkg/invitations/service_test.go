// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitations

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/qualification-service/internal/storage"
	"github.com/canonical/qualification-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package invitations -destination ./mock_invitations.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invitations -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invitations -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invitations -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

const testLifetime = 168 * time.Hour

func newTestService(t *testing.T, ctrl *gomock.Controller) (*Service, *MockStorageInterface) {
	t.Helper()

	mockStorage := NewMockStorageInterface(ctrl)

	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		},
	).AnyTimes()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

	mockMonitor := NewMockMonitorInterface(ctrl)

	return NewService(mockStorage, testLifetime, mockTracer, mockMonitor, mockLogger), mockStorage
}

func TestService_Create(t *testing.T) {
	contractor := &types.Profile{
		ID:          "contractor-1",
		CompanyName: "Built Inc",
		Role:        types.RoleContractor,
	}
	subcontractor := &types.Profile{
		ID:   "sub-1",
		Role: types.RoleSubcontractor,
	}
	storeErr := errors.New("connection refused")

	testCases := []struct {
		name        string
		issuerID    string
		setupMocks  func(*MockStorageInterface)
		expectedErr error
	}{
		{
			name:     "success",
			issuerID: "contractor-1",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().GetProfile(gomock.Any(), "contractor-1").Return(contractor, nil)
				mockStorage.EXPECT().CreateInvitation(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, inv *types.Invitation) (*types.Invitation, error) {
						if inv.ContractorID != "contractor-1" {
							t.Errorf("expected contractor_id contractor-1, got %s", inv.ContractorID)
						}
						if inv.ContractorName != "Built Inc" {
							t.Errorf("expected contractor name from issuer profile, got %q", inv.ContractorName)
						}
						if len(inv.Code) < 8 {
							t.Errorf("generated code %q is too short", inv.Code)
						}
						if remaining := time.Until(inv.ExpiresAt); remaining < testLifetime-time.Minute {
							t.Errorf("expected expiry about %v out, got %v", testLifetime, remaining)
						}
						inv.ID = "inv-1"
						return inv, nil
					},
				)
			},
		},
		{
			name:     "issuer is a subcontractor",
			issuerID: "sub-1",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().GetProfile(gomock.Any(), "sub-1").Return(subcontractor, nil)
			},
			expectedErr: ErrNotContractor,
		},
		{
			name:     "issuer has no profile",
			issuerID: "ghost",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().GetProfile(gomock.Any(), "ghost").Return(nil, storage.ErrNotFound)
			},
			expectedErr: ErrNotContractor,
		},
		{
			name:     "storage error",
			issuerID: "contractor-1",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().GetProfile(gomock.Any(), "contractor-1").Return(contractor, nil)
				mockStorage.EXPECT().CreateInvitation(gomock.Any(), gomock.Any()).Return(nil, storeErr)
			},
			expectedErr: storeErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, mockStorage := newTestService(t, ctrl)
			tc.setupMocks(mockStorage)

			inv, err := s.Create(context.Background(), tc.issuerID, "sub@trades.example")

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
		})
	}
}

func TestService_ListByContractor(t *testing.T) {
	expected := []*types.Invitation{
		{ID: "inv-1", Code: "ABC12345"},
		{ID: "inv-2", Code: "DEF67890"},
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, mockStorage := newTestService(t, ctrl)
	mockStorage.EXPECT().ListInvitationsByContractor(gomock.Any(), "contractor-1").Return(expected, nil)

	invs, err := s.ListByContractor(context.Background(), "contractor-1")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(invs) != len(expected) {
		t.Errorf("expected %d invitations, got %d", len(expected), len(invs))
	}
}

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := generateCode()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 16 {
			t.Errorf("expected 16 character code, got %d (%q)", len(code), code)
		}
		if seen[code] {
			t.Errorf("duplicate code generated: %q", code)
		}
		seen[code] = true
	}
}

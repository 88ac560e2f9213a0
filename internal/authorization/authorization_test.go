// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"testing"

	fga "github.com/openfga/go-sdk"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"
)

//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_logger.go -source=../logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_monitor.go -source=../monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_tracing.go -source=../tracing/interfaces.go

func newTestAuthorizer(t *testing.T, ctrl *gomock.Controller) (*Authorizer, *MockAuthzClientInterface) {
	t.Helper()

	mockClient := NewMockAuthzClientInterface(ctrl)

	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		},
	).AnyTimes()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	return NewAuthorizer(mockClient, mockTracer, mockMonitor, mockLogger), mockClient
}

func TestAuthorizer_CheckPlatformAccess(t *testing.T) {
	checkErr := errors.New("openfga unavailable")

	testCases := []struct {
		name        string
		setupMocks  func(*MockAuthzClientInterface)
		expected    bool
		expectedErr error
	}{
		{
			name: "allowed",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().Check(gomock.Any(), "user:user-1", CAN_INVITE_PERMISSION, "platform:default").Return(true, nil)
			},
			expected: true,
		},
		{
			name: "denied",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().Check(gomock.Any(), "user:user-1", CAN_INVITE_PERMISSION, "platform:default").Return(false, nil)
			},
			expected: false,
		},
		{
			name: "client error",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().Check(gomock.Any(), "user:user-1", CAN_INVITE_PERMISSION, "platform:default").Return(false, checkErr)
			},
			expectedErr: checkErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			a, mockClient := newTestAuthorizer(t, ctrl)
			tc.setupMocks(mockClient)

			allowed, err := a.CheckPlatformAccess(context.Background(), "user-1", CAN_INVITE_PERMISSION)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Errorf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if allowed != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, allowed)
			}
		})
	}
}

func TestAuthorizer_AssignRoles(t *testing.T) {
	testCases := []struct {
		name     string
		assign   func(*Authorizer) error
		relation string
	}{
		{
			name:     "contractor",
			assign:   func(a *Authorizer) error { return a.AssignContractor(context.Background(), "user-1") },
			relation: CONTRACTOR_RELATION,
		},
		{
			name:     "subcontractor",
			assign:   func(a *Authorizer) error { return a.AssignSubcontractor(context.Background(), "user-1") },
			relation: SUBCONTRACTOR_RELATION,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			a, mockClient := newTestAuthorizer(t, ctrl)
			mockClient.EXPECT().WriteTuple(gomock.Any(), "user:user-1", tc.relation, "platform:default").Return(nil)

			if err := tc.assign(a); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAuthorizer_RemoveRoles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, mockClient := newTestAuthorizer(t, ctrl)
	mockClient.EXPECT().DeleteTuple(gomock.Any(), "user:user-1", CONTRACTOR_RELATION, "platform:default").Return(nil)

	if err := a.RemoveContractor(context.Background(), "user-1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthorizer_ValidateModel(t *testing.T) {
	compareErr := errors.New("read failed")

	testCases := []struct {
		name        string
		setupMocks  func(*MockAuthzClientInterface)
		expectedErr error
	}{
		{
			name: "model matches",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().CompareModel(gomock.Any(), gomock.Any()).Return(true, nil)
			},
		},
		{
			name: "model drifted",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().CompareModel(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			expectedErr: ErrInvalidAuthModel,
		},
		{
			name: "comparison failure",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().CompareModel(gomock.Any(), gomock.Any()).Return(false, compareErr)
			},
			expectedErr: compareErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			a, mockClient := newTestAuthorizer(t, ctrl)
			tc.setupMocks(mockClient)

			err := a.ValidateModel(context.Background())

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

func TestAuthorizationModelProvider_GetModel(t *testing.T) {
	model := NewAuthorizationModelProvider("v0").GetModel()

	if model.SchemaVersion != "1.1" {
		t.Errorf("expected schema version 1.1, got %s", model.SchemaVersion)
	}

	byName := make(map[string]fga.TypeDefinition)
	for _, td := range model.TypeDefinitions {
		byName[td.Type] = td
	}

	platform, ok := byName["platform"]
	if !ok {
		t.Fatal("expected a platform type definition")
	}

	relations := *platform.Relations
	for _, relation := range []string{
		CONTRACTOR_RELATION,
		SUBCONTRACTOR_RELATION,
		CAN_VIEW_DASHBOARD_PERMISSION,
		CAN_INVITE_PERMISSION,
		CAN_REVIEW_QUALIFICATIONS_PERMISSION,
		CAN_SUBMIT_QUALIFICATIONS_PERMISSION,
	} {
		if _, ok := relations[relation]; !ok {
			t.Errorf("expected relation %q in platform type", relation)
		}
	}
}

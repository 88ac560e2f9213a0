// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/qualification-service/internal/types"
)

func newTestAPI(t *testing.T, ctrl *gomock.Controller) (*API, *MockServiceInterface) {
	t.Helper()

	mockService := NewMockServiceInterface(ctrl)

	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		},
	).AnyTimes()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

	mockMonitor := NewMockMonitorInterface(ctrl)

	return NewAPI(mockService, mockTracer, mockMonitor, mockLogger), mockService
}

func TestAPI_Login(t *testing.T) {
	profile := &types.Profile{
		ID:    "user-1",
		Email: "owner@built.example",
		Role:  types.RoleContractor,
	}

	testCases := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name: "success",
			requestBody: loginRequest{
				Email:    "owner@built.example",
				Password: "secret",
				Role:     "contractor",
			},
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().SignIn(gomock.Any(), "owner@built.example", "secret", types.RoleContractor).Return(profile, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid body",
			requestBody:    "not-json",
			setupMocks:     func(mockSvc *MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing role",
			requestBody: loginRequest{
				Email:    "owner@built.example",
				Password: "secret",
			},
			setupMocks:     func(mockSvc *MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown role",
			requestBody: loginRequest{
				Email:    "owner@built.example",
				Password: "secret",
				Role:     "architect",
			},
			setupMocks:     func(mockSvc *MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid credentials",
			requestBody: loginRequest{
				Email:    "owner@built.example",
				Password: "wrong",
				Role:     "contractor",
			},
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().SignIn(gomock.Any(), "owner@built.example", "wrong", types.RoleContractor).Return(nil, ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "role mismatch",
			requestBody: loginRequest{
				Email:    "owner@built.example",
				Password: "secret",
				Role:     "subcontractor",
			},
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().SignIn(gomock.Any(), "owner@built.example", "secret", types.RoleSubcontractor).Return(nil, ErrRoleMismatch)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "store unavailable",
			requestBody: loginRequest{
				Email:    "owner@built.example",
				Password: "secret",
				Role:     "contractor",
			},
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().SignIn(gomock.Any(), "owner@built.example", "secret", types.RoleContractor).Return(nil, ErrStoreUnavailable)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			api, mockService := newTestAPI(t, ctrl)
			tc.setupMocks(mockService)

			mux := chi.NewMux()
			api.RegisterEndpoints(mux)

			body := encodeBody(t, tc.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/v0/auth/login", body)
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d (%s)", tc.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAPI_Register(t *testing.T) {
	profile := &types.Profile{
		ID:    "user-2",
		Email: "sub@trades.example",
		Role:  types.RoleSubcontractor,
	}

	validBody := registerRequest{
		Email:          "sub@trades.example",
		Password:       "secret123",
		Name:           "Sam Welder",
		CompanyName:    "Trades Co",
		Role:           "subcontractor",
		InvitationCode: "ABC12345",
	}

	testCases := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name:        "success",
			requestBody: validBody,
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().Register(gomock.Any(), RegistrationParams{
					Email:          "sub@trades.example",
					Password:       "secret123",
					Name:           "Sam Welder",
					CompanyName:    "Trades Co",
					Role:           types.RoleSubcontractor,
					InvitationCode: "ABC12345",
				}).Return(profile, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "short password",
			requestBody: func() registerRequest {
				r := validBody
				r.Password = "short"
				return r
			}(),
			setupMocks:     func(mockSvc *MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "signup rejected",
			requestBody: validBody,
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, ErrSignupRejected)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:        "unexpected error",
			requestBody: validBody,
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			api, mockService := newTestAPI(t, ctrl)
			tc.setupMocks(mockService)

			mux := chi.NewMux()
			api.RegisterEndpoints(mux)

			body := encodeBody(t, tc.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/v0/auth/register", body)
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d (%s)", tc.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAPI_Logout(t *testing.T) {
	testCases := []struct {
		name           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name: "success",
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().SignOut(gomock.Any()).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "store unavailable",
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().SignOut(gomock.Any()).Return(ErrStoreUnavailable)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			api, mockService := newTestAPI(t, ctrl)
			tc.setupMocks(mockService)

			mux := chi.NewMux()
			api.RegisterEndpoints(mux)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/auth/logout", nil)
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d (%s)", tc.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func encodeBody(t *testing.T, requestBody interface{}) *bytes.Buffer {
	t.Helper()

	if str, ok := requestBody.(string); ok {
		return bytes.NewBufferString(str)
	}
	body, err := json.Marshal(requestBody)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	return bytes.NewBuffer(body)
}

// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

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

//go:generate mockgen -build_flags=--mod=mod -package session -destination ./mock_session.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package session -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package session -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package session -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

type managerMocks struct {
	credential *MockCredentialStoreInterface
	profiles   *MockProfileReaderInterface
	authz      *MockAuthzInterface
	security   *MockSecurityLoggerInterface
}

func newTestManager(t *testing.T, ctrl *gomock.Controller) (*Manager, *managerMocks) {
	t.Helper()

	m := &managerMocks{
		credential: NewMockCredentialStoreInterface(ctrl),
		profiles:   NewMockProfileReaderInterface(ctrl),
		authz:      NewMockAuthzInterface(ctrl),
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
	mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

	mockMonitor := NewMockMonitorInterface(ctrl)

	mgr := NewManager(m.credential, m.profiles, m.authz, mockTracer, mockMonitor, mockLogger)
	return mgr, m
}

func waitSnapshot(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a snapshot")
		return Snapshot{}
	}
}

func TestManager_StartResolvesPersistedSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profile := &types.Profile{ID: "user-1", Role: types.RoleContractor}

	mgr, m := newTestManager(t, ctrl)
	m.credential.EXPECT().CurrentSession(gomock.Any()).Return(&types.Principal{ID: "user-1"}, nil)
	m.profiles.EXPECT().GetProfile(gomock.Any(), "user-1").Return(profile, nil)
	m.credential.EXPECT().Subscribe(gomock.Any()).Return(func() {})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mgr.Start(ctx)

	got, loading := mgr.Current()
	if loading {
		t.Error("expected loading to be false after startup resolution")
	}
	if got == nil || got.ID != "user-1" {
		t.Errorf("expected resolved profile user-1, got %+v", got)
	}
	if !mgr.IsAuthenticated() {
		t.Error("expected authenticated state")
	}
}

func TestManager_StartWithoutPersistedSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, m := newTestManager(t, ctrl)
	m.credential.EXPECT().CurrentSession(gomock.Any()).Return(nil, nil)
	m.credential.EXPECT().Subscribe(gomock.Any()).Return(func() {})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mgr.Start(ctx)

	if mgr.IsAuthenticated() {
		t.Error("expected unauthenticated state")
	}
	if _, loading := mgr.Current(); loading {
		t.Error("expected loading to be false")
	}
}

func TestManager_SessionEventsAreProcessedInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, m := newTestManager(t, ctrl)

	var emit func(*types.Principal)
	m.credential.EXPECT().CurrentSession(gomock.Any()).Return(nil, nil)
	m.credential.EXPECT().Subscribe(gomock.Any()).DoAndReturn(
		func(fn func(*types.Principal)) func() {
			emit = fn
			return func() {}
		},
	)

	m.profiles.EXPECT().GetProfile(gomock.Any(), "user-1").DoAndReturn(
		func(_ context.Context, id string) (*types.Profile, error) {
			// Slow resolution must not let a later event overtake this one.
			time.Sleep(20 * time.Millisecond)
			return &types.Profile{ID: "user-1", Role: types.RoleContractor}, nil
		},
	)
	m.profiles.EXPECT().GetProfile(gomock.Any(), "user-2").Return(
		&types.Profile{ID: "user-2", Role: types.RoleSubcontractor}, nil,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mgr.Start(ctx)

	snapshots := make(chan Snapshot, 8)
	unsubscribe := mgr.Subscribe(func(s Snapshot) { snapshots <- s })
	defer unsubscribe()

	// Initial snapshot delivered on subscription.
	if s := waitSnapshot(t, snapshots); s.Profile != nil {
		t.Errorf("expected initial unauthenticated snapshot, got %+v", s.Profile)
	}

	emit(&types.Principal{ID: "user-1"})
	emit(&types.Principal{ID: "user-2"})

	first := waitSnapshot(t, snapshots)
	if first.Profile == nil || first.Profile.ID != "user-1" {
		t.Errorf("expected user-1 snapshot first, got %+v", first.Profile)
	}
	second := waitSnapshot(t, snapshots)
	if second.Profile == nil || second.Profile.ID != "user-2" {
		t.Errorf("expected user-2 snapshot second, got %+v", second.Profile)
	}
}

func TestManager_LogoutEventClearsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, m := newTestManager(t, ctrl)

	var emit func(*types.Principal)
	m.credential.EXPECT().CurrentSession(gomock.Any()).Return(&types.Principal{ID: "user-1"}, nil)
	m.profiles.EXPECT().GetProfile(gomock.Any(), "user-1").Return(&types.Profile{ID: "user-1", Role: types.RoleContractor}, nil)
	m.credential.EXPECT().Subscribe(gomock.Any()).DoAndReturn(
		func(fn func(*types.Principal)) func() {
			emit = fn
			return func() {}
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mgr.Start(ctx)

	snapshots := make(chan Snapshot, 8)
	unsubscribe := mgr.Subscribe(func(s Snapshot) { snapshots <- s })
	defer unsubscribe()

	if s := waitSnapshot(t, snapshots); s.Profile == nil {
		t.Fatal("expected authenticated initial snapshot")
	}

	emit(nil)

	if s := waitSnapshot(t, snapshots); s.Profile != nil {
		t.Errorf("expected cleared snapshot after logout event, got %+v", s.Profile)
	}
	if mgr.IsAuthenticated() {
		t.Error("expected unauthenticated state after logout event")
	}
}

func TestManager_ResolveFailurePublishesUnauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, m := newTestManager(t, ctrl)
	m.credential.EXPECT().CurrentSession(gomock.Any()).Return(&types.Principal{ID: "user-1"}, nil)
	m.profiles.EXPECT().GetProfile(gomock.Any(), "user-1").Return(nil, storage.ErrNotFound)
	m.credential.EXPECT().Subscribe(gomock.Any()).Return(func() {})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mgr.Start(ctx)

	if mgr.IsAuthenticated() {
		t.Error("a principal without a profile must not appear authenticated")
	}
}

func TestManager_HasPermission(t *testing.T) {
	authzErr := errors.New("openfga unavailable")
	profile := &types.Profile{ID: "user-1", Role: types.RoleContractor}

	testCases := []struct {
		name       string
		profile    *types.Profile
		setupMocks func(*managerMocks)
		expected   bool
	}{
		{
			name:       "no session is denied without an authz call",
			profile:    nil,
			setupMocks: func(m *managerMocks) {},
			expected:   false,
		},
		{
			name:    "allowed",
			profile: profile,
			setupMocks: func(m *managerMocks) {
				m.authz.EXPECT().CheckPlatformAccess(gomock.Any(), "user-1", "can_invite").Return(true, nil)
			},
			expected: true,
		},
		{
			name:    "denied is audited",
			profile: profile,
			setupMocks: func(m *managerMocks) {
				m.authz.EXPECT().CheckPlatformAccess(gomock.Any(), "user-1", "can_invite").Return(false, nil)
				m.security.EXPECT().AuthzFailure("user-1", "can_invite")
			},
			expected: false,
		},
		{
			name:    "authz failure fails closed",
			profile: profile,
			setupMocks: func(m *managerMocks) {
				m.authz.EXPECT().CheckPlatformAccess(gomock.Any(), "user-1", "can_invite").Return(false, authzErr)
			},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mgr, m := newTestManager(t, ctrl)
			if tc.profile != nil {
				mgr.Set(tc.profile)
			}
			tc.setupMocks(m)

			if got := mgr.HasPermission(context.Background(), "can_invite"); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestManager_SetLoadingKeepsProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, _ := newTestManager(t, ctrl)
	profile := &types.Profile{ID: "user-1", Role: types.RoleContractor}
	mgr.Set(profile)

	mgr.SetLoading(true)

	got, loading := mgr.Current()
	if !loading {
		t.Error("expected loading to be true")
	}
	if got == nil || got.ID != "user-1" {
		t.Errorf("expected profile to survive a loading flip, got %+v", got)
	}
}

func TestManager_UnsubscribeStopsDelivery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, _ := newTestManager(t, ctrl)

	snapshots := make(chan Snapshot, 8)
	unsubscribe := mgr.Subscribe(func(s Snapshot) { snapshots <- s })
	waitSnapshot(t, snapshots)

	unsubscribe()
	mgr.Set(&types.Profile{ID: "user-1"})

	select {
	case s := <-snapshots:
		t.Errorf("unexpected snapshot after unsubscribe: %+v", s)
	case <-time.After(50 * time.Millisecond):
	}
}

// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"
	"sync"

	"github.com/canonical/qualification-service/internal/logging"
	"github.com/canonical/qualification-service/internal/monitoring"
	"github.com/canonical/qualification-service/internal/tracing"
	"github.com/canonical/qualification-service/internal/types"
)

// Snapshot is the derived session state published to observers.
type Snapshot struct {
	Profile *types.Profile
	Loading bool
}

func (s Snapshot) Authenticated() bool {
	return s.Profile != nil
}

// Manager is the process-wide session context: a single-writer reactive cell
// recomputed on every credential-store session change. Writers are the
// reconciliation engine (via SessionWriterInterface) and the subscription
// loop below; everything else only reads.
type Manager struct {
	credential CredentialStoreInterface
	profiles   ProfileReaderInterface
	authz      AuthzInterface

	mu      sync.RWMutex
	profile *types.Profile
	loading bool
	subs    map[int]func(Snapshot)
	nextSub int

	events      chan *types.Principal
	unsubscribe func()

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewManager(
	credential CredentialStoreInterface,
	profiles ProfileReaderInterface,
	authz AuthzInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Manager {
	return &Manager{
		credential: credential,
		profiles:   profiles,
		authz:      authz,
		loading:    true,
		subs:       make(map[int]func(Snapshot)),
		events:     make(chan *types.Principal, 16),
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}

// Start performs the eager resolution of any persisted session, then drains
// the session-change stream for the life of ctx. Events are processed one at
// a time: a profile is fully resolved and published before the next event is
// taken, so observers never see interleaved partial states.
func (m *Manager) Start(ctx context.Context) {
	m.resolve(ctx, m.currentPrincipal(ctx))

	m.unsubscribe = m.credential.Subscribe(func(p *types.Principal) {
		select {
		case m.events <- p:
		case <-ctx.Done():
		}
	})

	go func() {
		defer m.unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return
			case p := <-m.events:
				m.resolve(ctx, p)
			}
		}
	}()
}

func (m *Manager) currentPrincipal(ctx context.Context) *types.Principal {
	ctx, span := m.tracer.Start(ctx, "session.Manager.currentPrincipal")
	defer span.End()

	principal, err := m.credential.CurrentSession(ctx)
	if err != nil {
		m.logger.Warnf("failed to resolve persisted session: %v", err)
		return nil
	}
	return principal
}

// resolve recomputes the cell from a principal. Read-only: a missing profile
// publishes an unauthenticated state rather than triggering repair.
func (m *Manager) resolve(ctx context.Context, principal *types.Principal) {
	ctx, span := m.tracer.Start(ctx, "session.Manager.resolve")
	defer span.End()

	if principal == nil {
		m.publish(nil, false)
		return
	}

	profile, err := m.profiles.GetProfile(ctx, principal.ID)
	if err != nil {
		m.logger.Warnf("failed to resolve profile for %s: %v", principal.ID, err)
		m.publish(nil, false)
		return
	}

	m.publish(profile, false)
}

func (m *Manager) publish(profile *types.Profile, loading bool) {
	m.mu.Lock()
	m.profile = profile
	m.loading = loading
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	snapshot := Snapshot{Profile: profile, Loading: loading}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

// Set publishes a resolved profile. Engine-only write surface.
func (m *Manager) Set(profile *types.Profile) {
	m.publish(profile, false)
}

// Clear resets the cell to (nil, not-loading).
func (m *Manager) Clear() {
	m.publish(nil, false)
}

// SetLoading flips the loading flag while an explicit auth operation is in
// flight, without touching the resolved profile.
func (m *Manager) SetLoading(loading bool) {
	m.mu.Lock()
	m.loading = loading
	profile := m.profile
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	snapshot := Snapshot{Profile: profile, Loading: loading}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

// Current returns the resolved profile (possibly nil) and the loading flag.
func (m *Manager) Current() (*types.Profile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profile, m.loading
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profile != nil
}

// Subscribe registers an observer and returns its unsubscribe func. The
// observer immediately receives the current snapshot.
func (m *Manager) Subscribe(fn func(Snapshot)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	snapshot := Snapshot{Profile: m.profile, Loading: m.loading}
	m.mu.Unlock()

	fn(snapshot)

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// HasPermission is deliberately fail-closed: no profile, authz failure or
// denial all come back false, never an error.
func (m *Manager) HasPermission(ctx context.Context, permission string) bool {
	ctx, span := m.tracer.Start(ctx, "session.Manager.HasPermission")
	defer span.End()

	m.mu.RLock()
	profile := m.profile
	m.mu.RUnlock()

	if profile == nil {
		return false
	}

	allowed, err := m.authz.CheckPlatformAccess(ctx, profile.ID, permission)
	if err != nil {
		m.logger.Errorf("permission check failed for %s on %s: %v", profile.ID, permission, err)
		return false
	}
	if !allowed {
		m.logger.Security().AuthzFailure(profile.ID, permission)
	}
	return allowed
}

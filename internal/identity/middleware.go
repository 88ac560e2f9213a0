// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"
	"net/http"

	"github.com/canonical/qualification-service/internal/logging"
	"github.com/canonical/qualification-service/internal/monitoring"
	"github.com/canonical/qualification-service/internal/tracing"
	"github.com/canonical/qualification-service/internal/types"
	"github.com/canonical/qualification-service/pkg/authentication"
)

// HeaderName carries the Kratos session token of the calling user.
const HeaderName = "X-Session-Token"

// SessionResolverInterface resolves a session token to its principal.
// Returns (nil, nil) for an invalid or expired token.
type SessionResolverInterface interface {
	Whoami(ctx context.Context, token string) (*types.Principal, error)
}

type Middleware struct {
	resolver SessionResolverInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewMiddleware(resolver SessionResolverInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		resolver: resolver,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

// HTTPMiddleware stashes the authenticated user ID in the request context.
// Requests without a valid session pass through unauthenticated; handlers
// decide whether that is acceptable.
func (m *Middleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := m.tracer.Start(r.Context(), "identity.Middleware.HTTPMiddleware")
		defer span.End()

		token := r.Header.Get(HeaderName)
		if token == "" {
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		principal, err := m.resolver.Whoami(ctx, token)
		if err != nil {
			m.logger.Warnf("failed to resolve session token: %v", err)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		if principal != nil {
			ctx = authentication.WithUserID(ctx, principal.ID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

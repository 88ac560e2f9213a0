// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/canonical/qualification-service/internal/db"
	"github.com/canonical/qualification-service/internal/identity"
	"github.com/canonical/qualification-service/internal/logging"
	"github.com/canonical/qualification-service/internal/monitoring"
	"github.com/canonical/qualification-service/internal/tracing"
	"github.com/canonical/qualification-service/pkg/authentication"
	"github.com/canonical/qualification-service/pkg/invitations"
	"github.com/canonical/qualification-service/pkg/metrics"
	"github.com/canonical/qualification-service/pkg/onboarding"
	"github.com/canonical/qualification-service/pkg/session"
	"github.com/canonical/qualification-service/pkg/status"
)

func NewRouter(
	onboardingSvc onboarding.ServiceInterface,
	sessionManager session.ManagerInterface,
	invitationsSvc invitations.ServiceInterface,
	sessionResolver identity.SessionResolverInterface,
	adminAuthn *authentication.Middleware,
	dbClient db.DBClientInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
		identity.NewMiddleware(sessionResolver, tracer, monitor, logger).HTTPMiddleware,
		// Transactions are lazy, a request that never touches the DB
		// never opens one.
		db.TransactionMiddleware(dbClient, logger),
	)
	if adminAuthn != nil {
		// Bearer tokens are verified when present, session traffic
		// carries none and passes through untouched.
		middlewares = append(middlewares, middlewareBearerOnly(adminAuthn))
	}

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)
	onboarding.NewAPI(onboardingSvc, tracer, monitor, logger).RegisterEndpoints(router)
	session.NewAPI(sessionManager, tracer, monitor, logger).RegisterEndpoints(router)
	invitations.NewAPI(invitationsSvc, tracer, monitor, logger).RegisterEndpoints(router)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}

func middlewareBearerOnly(authn *authentication.Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		authenticated := authn.Authenticate()(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "" {
				authenticated.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func middlewareCORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(
		cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", identity.HeaderName},
			MaxAge:         300,
		},
	)
}

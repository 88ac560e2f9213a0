// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/qualification-service/internal/logging"
	"github.com/canonical/qualification-service/internal/monitoring"
	"github.com/canonical/qualification-service/internal/tracing"
	"github.com/canonical/qualification-service/internal/types"
)

type API struct {
	manager ManagerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(manager ManagerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		manager: manager,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/auth/session", a.current)
	mux.Get("/api/v0/auth/permissions/{permission}", a.permission)
}

type sessionResponse struct {
	Authenticated bool           `json:"authenticated"`
	Loading       bool           `json:"loading"`
	Profile       *types.Profile `json:"profile,omitempty"`
}

type permissionResponse struct {
	Permission string `json:"permission"`
	Allowed    bool   `json:"allowed"`
}

func (a *API) current(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "session.API.current")
	defer span.End()

	profile, loading := a.manager.Current()

	resp := sessionResponse{
		Authenticated: profile != nil,
		Loading:       loading,
		Profile:       profile,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

func (a *API) permission(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "session.API.permission")
	defer span.End()

	permission := chi.URLParam(r, "permission")

	resp := permissionResponse{
		Permission: permission,
		Allowed:    a.manager.HasPermission(ctx, permission),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

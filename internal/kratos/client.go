// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	ory "github.com/ory/client-go"

	"github.com/canonical/qualification-service/internal/logging"
	"github.com/canonical/qualification-service/internal/monitoring"
	"github.com/canonical/qualification-service/internal/tracing"
	"github.com/canonical/qualification-service/internal/types"
)

// Sentinel errors distinguishing user-correctable rejections from transport
// failures. Anything else returned by this package is infrastructure.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSignupRejected     = errors.New("signup rejected")
)

var _ ClientInterface = (*Client)(nil)

type Client struct {
	client *ory.APIClient

	mu           sync.Mutex
	sessionToken string
	subscribers  map[int]func(*types.Principal)
	nextSubID    int

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(kratosPublicURL string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	conf := ory.NewConfiguration()
	conf.Servers = ory.ServerConfigurations{{URL: kratosPublicURL}}
	return &Client{
		client:      ory.NewAPIClient(conf),
		subscribers: make(map[int]func(*types.Principal)),
		tracer:      tracer,
		monitor:     monitor,
		logger:      logger,
	}
}

func (c *Client) VerifyPassword(ctx context.Context, email, password string) (*types.Principal, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.VerifyPassword")
	defer span.End()

	flow, _, err := c.client.FrontendAPI.CreateNativeLoginFlow(ctx).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create login flow: %w", err)
	}

	login, r, err := c.client.FrontendAPI.UpdateLoginFlow(ctx).
		Flow(flow.Id).
		UpdateLoginFlowBody(ory.UpdateLoginFlowBody{
			UpdateLoginFlowWithPasswordMethod: ory.NewUpdateLoginFlowWithPasswordMethod(email, "password", password),
		}).
		Execute()
	if err != nil {
		if r != nil && (r.StatusCode == http.StatusBadRequest || r.StatusCode == http.StatusUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to submit login flow: %w", err)
	}

	principal := principalFromIdentity(login.Session.Identity)

	c.mu.Lock()
	if login.SessionToken != nil {
		c.sessionToken = *login.SessionToken
	}
	c.mu.Unlock()

	c.notify(principal)
	return principal, nil
}

func (c *Client) CreateIdentity(ctx context.Context, email, password string, meta types.PrincipalMetadata) (*types.Principal, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.CreateIdentity")
	defer span.End()

	flow, _, err := c.client.FrontendAPI.CreateNativeRegistrationFlow(ctx).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create registration flow: %w", err)
	}

	traits := map[string]interface{}{
		"email":   email,
		"name":    meta.Name,
		"company": meta.CompanyName,
		"role":    meta.Role,
	}

	registration, r, err := c.client.FrontendAPI.UpdateRegistrationFlow(ctx).
		Flow(flow.Id).
		UpdateRegistrationFlowBody(ory.UpdateRegistrationFlowBody{
			UpdateRegistrationFlowWithPasswordMethod: ory.NewUpdateRegistrationFlowWithPasswordMethod("password", password, traits),
		}).
		Execute()
	if err != nil {
		if r != nil && r.StatusCode == http.StatusBadRequest {
			// Duplicate email, weak password and the like. The flow UI holds
			// the precise reason but we never leak raw store messages.
			return nil, ErrSignupRejected
		}
		return nil, fmt.Errorf("failed to submit registration flow: %w", err)
	}

	principal := principalFromIdentity(&registration.Identity)

	c.mu.Lock()
	if registration.SessionToken != nil {
		c.sessionToken = *registration.SessionToken
	}
	c.mu.Unlock()

	c.notify(principal)
	return principal, nil
}

func (c *Client) InvalidateSession(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "kratos.InvalidateSession")
	defer span.End()

	c.mu.Lock()
	token := c.sessionToken
	c.sessionToken = ""
	c.mu.Unlock()

	if token == "" {
		c.notify(nil)
		return nil
	}

	_, err := c.client.FrontendAPI.PerformNativeLogout(ctx).
		PerformNativeLogoutBody(*ory.NewPerformNativeLogoutBody(token)).
		Execute()

	// The local session is gone either way.
	c.notify(nil)

	if err != nil {
		return fmt.Errorf("failed to perform logout: %w", err)
	}
	return nil
}

func (c *Client) CurrentSession(ctx context.Context) (*types.Principal, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.CurrentSession")
	defer span.End()

	c.mu.Lock()
	token := c.sessionToken
	c.mu.Unlock()

	if token == "" {
		return nil, nil
	}

	session, r, err := c.client.FrontendAPI.ToSession(ctx).
		XSessionToken(token).
		Execute()
	if err != nil {
		if r != nil && r.StatusCode == http.StatusUnauthorized {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	return principalFromIdentity(session.Identity), nil
}

// Whoami resolves an arbitrary session token, independent of the client's own
// persisted session. Used by the request identity middleware.
func (c *Client) Whoami(ctx context.Context, token string) (*types.Principal, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Whoami")
	defer span.End()

	session, r, err := c.client.FrontendAPI.ToSession(ctx).
		XSessionToken(token).
		Execute()
	if err != nil {
		if r != nil && r.StatusCode == http.StatusUnauthorized {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	return principalFromIdentity(session.Identity), nil
}

func (c *Client) TriggerVerification(ctx context.Context, email string) error {
	ctx, span := c.tracer.Start(ctx, "kratos.TriggerVerification")
	defer span.End()

	flow, _, err := c.client.FrontendAPI.CreateNativeVerificationFlow(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to create verification flow: %w", err)
	}

	_, _, err = c.client.FrontendAPI.UpdateVerificationFlow(ctx).
		Flow(flow.Id).
		UpdateVerificationFlowBody(ory.UpdateVerificationFlowBody{
			UpdateVerificationFlowWithCodeMethod: &ory.UpdateVerificationFlowWithCodeMethod{
				Email:  &email,
				Method: "code",
			},
		}).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to submit verification flow: %w", err)
	}

	return nil
}

func (c *Client) Subscribe(fn func(*types.Principal)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

func (c *Client) notify(principal *types.Principal) {
	c.mu.Lock()
	fns := make([]func(*types.Principal), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(principal)
	}
}

func principalFromIdentity(identity *ory.Identity) *types.Principal {
	if identity == nil {
		return nil
	}

	p := &types.Principal{ID: identity.Id}

	if traits, ok := identity.Traits.(map[string]interface{}); ok {
		if e, ok := traits["email"].(string); ok {
			p.Email = e
		}
		if n, ok := traits["name"].(string); ok {
			p.Metadata.Name = n
		}
		if company, ok := traits["company"].(string); ok {
			p.Metadata.CompanyName = company
		}
		if role, ok := traits["role"].(string); ok {
			p.Metadata.Role = role
		}
	}

	for _, addr := range identity.VerifiableAddresses {
		if addr.Value == p.Email && addr.Verified {
			p.Verified = true
		}
	}

	return p
}

// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"encoding/json"
	"fmt"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/language/pkg/go/transformer"
)

// authModel is the v0 authorization model for the qualification platform.
// Contractors review qualifications and issue invitations; subcontractors
// submit qualifications. Both see the dashboard.
var authModel = `model
  schema 1.1

type user

type platform
  relations
    define contractor: [user]
    define subcontractor: [user]
    define can_view_dashboard: contractor or subcontractor
    define can_invite: contractor
    define can_review_qualifications: contractor
    define can_submit_qualifications: subcontractor
`

type AuthorizationModelProvider struct {
	version string
}

func NewAuthorizationModelProvider(version string) *AuthorizationModelProvider {
	p := new(AuthorizationModelProvider)
	p.version = version
	return p
}

func (p *AuthorizationModelProvider) GetModel() *fga.AuthorizationModel {
	modelJSON, err := transformer.TransformDSLToJSON(authModel)
	if err != nil {
		panic(fmt.Sprintf("invalid authorization model DSL: %v", err))
	}

	var model fga.AuthorizationModel
	if err := json.Unmarshal([]byte(modelJSON), &model); err != nil {
		panic(fmt.Sprintf("failed to parse authorization model: %v", err))
	}

	return &model
}

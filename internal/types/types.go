// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// Role is the application-level role bound to a profile.
type Role string

const (
	RoleContractor    Role = "contractor"
	RoleSubcontractor Role = "subcontractor"
)

func (r Role) Valid() bool {
	return r == RoleContractor || r == RoleSubcontractor
}

// InvitationStatus transitions: pending -> accepted (exactly once, via
// conditional update) and pending -> expired (lazy, never reversed).
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
)

// Profile is the application identity record. Its ID equals the Kratos
// identity ID of the owning principal.
type Profile struct {
	ID            string     `db:"id" json:"id"`
	Email         string     `db:"email" json:"email"`
	Name          string     `db:"name" json:"name"`
	CompanyName   string     `db:"company_name" json:"company_name"`
	Role          Role       `db:"role" json:"role"`
	EmailVerified bool       `db:"email_verified" json:"email_verified"`
	InvitedBy     string     `db:"invited_by" json:"invited_by,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	LastSignInAt  *time.Time `db:"last_sign_in_at" json:"last_sign_in_at,omitempty"`
}

// Invitation is an outstanding offer from a contractor to a prospective
// subcontractor, redeemed via an opaque code.
type Invitation struct {
	ID             string           `db:"id" json:"id"`
	Code           string           `db:"code" json:"code"`
	Email          string           `db:"email" json:"email"`
	ContractorID   string           `db:"contractor_id" json:"contractor_id"`
	ContractorName string           `db:"contractor_name" json:"contractor_name"`
	Status         InvitationStatus `db:"status" json:"status"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
	ExpiresAt      time.Time        `db:"expires_at" json:"expires_at"`
}

// Principal is the identity issued by the credential store. Metadata is the
// denormalized blob attached at signup, consumed only by the repair path.
type Principal struct {
	ID       string
	Email    string
	Verified bool
	Metadata PrincipalMetadata
}

// PrincipalMetadata is best-effort material for profile repair. Any field may
// be empty.
type PrincipalMetadata struct {
	Name        string
	CompanyName string
	Role        string
}

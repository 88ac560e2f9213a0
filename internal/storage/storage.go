// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/canonical/qualification-service/internal/db"
	"github.com/canonical/qualification-service/internal/logging"
	"github.com/canonical/qualification-service/internal/monitoring"
	"github.com/canonical/qualification-service/internal/tracing"
	"github.com/canonical/qualification-service/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func (s *Storage) GetProfile(ctx context.Context, id string) (*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetProfile")
	defer span.End()

	var p types.Profile
	var invitedBy sql.NullString
	var lastSignIn sql.NullTime

	err := s.db.Statement(ctx).
		Select("id", "email", "name", "company_name", "role", "email_verified", "invited_by", "created_at", "last_sign_in_at").
		From("profiles").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&p.ID, &p.Email, &p.Name, &p.CompanyName, &p.Role, &p.EmailVerified, &invitedBy, &p.CreatedAt, &lastSignIn)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if invitedBy.Valid {
		p.InvitedBy = invitedBy.String
	}
	if lastSignIn.Valid {
		p.LastSignInAt = &lastSignIn.Time
	}

	return &p, nil
}

// InsertProfile persists a new profile row. A duplicate primary key surfaces
// as ErrDuplicateKey so callers can treat races with async backfill as success.
func (s *Storage) InsertProfile(ctx context.Context, p *types.Profile) (*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "storage.InsertProfile")
	defer span.End()

	var invitedBy interface{}
	if p.InvitedBy != "" {
		invitedBy = p.InvitedBy
	}

	var created types.Profile
	var invited sql.NullString

	err := s.db.Statement(ctx).
		Insert("profiles").
		Columns("id", "email", "name", "company_name", "role", "email_verified", "invited_by").
		Values(p.ID, p.Email, p.Name, p.CompanyName, p.Role, p.EmailVerified, invitedBy).
		Suffix("RETURNING id, email, name, company_name, role, email_verified, invited_by, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.Email, &created.Name, &created.CompanyName, &created.Role, &created.EmailVerified, &invited, &created.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}

	if invited.Valid {
		created.InvitedBy = invited.String
	}

	return &created, nil
}

func (s *Storage) UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateProfile")
	defer span.End()

	if len(fields) == 0 {
		return nil
	}

	res, err := s.db.Statement(ctx).
		Update("profiles").
		SetMap(fields).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) TouchLastSignIn(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.TouchLastSignIn")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Update("profiles").
		Set("last_sign_in_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update last sign in: %w", err)
	}
	return nil
}

func (s *Storage) GetInvitationByCode(ctx context.Context, code string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetInvitationByCode")
	defer span.End()

	var inv types.Invitation
	err := s.db.Statement(ctx).
		Select("id", "code", "email", "contractor_id", "contractor_name", "status", "created_at", "expires_at").
		From("invitations").
		Where(sq.Eq{"code": code}).
		QueryRowContext(ctx).
		Scan(&inv.ID, &inv.Code, &inv.Email, &inv.ContractorID, &inv.ContractorName, &inv.Status, &inv.CreatedAt, &inv.ExpiresAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	return &inv, nil
}

func (s *Storage) CreateInvitation(ctx context.Context, inv *types.Invitation) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateInvitation")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation ID: %w", err)
	}

	var created types.Invitation
	err = s.db.Statement(ctx).
		Insert("invitations").
		Columns("id", "code", "email", "contractor_id", "contractor_name", "status", "expires_at").
		Values(id.String(), inv.Code, inv.Email, inv.ContractorID, inv.ContractorName, types.InvitationPending, inv.ExpiresAt).
		Suffix("RETURNING id, code, email, contractor_id, contractor_name, status, created_at, expires_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.Code, &created.Email, &created.ContractorID, &created.ContractorName, &created.Status, &created.CreatedAt, &created.ExpiresAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to insert invitation: %w", err)
	}

	return &created, nil
}

func (s *Storage) ListInvitationsByContractor(ctx context.Context, contractorID string) ([]*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListInvitationsByContractor")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "code", "email", "contractor_id", "contractor_name", "status", "created_at", "expires_at").
		From("invitations").
		Where(sq.Eq{"contractor_id": contractorID}).
		OrderBy("created_at DESC").
		QueryContext(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	var invitations []*types.Invitation
	for rows.Next() {
		var inv types.Invitation
		if err := rows.Scan(&inv.ID, &inv.Code, &inv.Email, &inv.ContractorID, &inv.ContractorName, &inv.Status, &inv.CreatedAt, &inv.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, &inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return invitations, nil
}

// AcceptInvitation performs the pending -> accepted transition as a single
// conditional update. Exactly one of two racing redeemers observes success;
// the other gets ErrNotFound. The expiry guard lives in the statement so the
// check and the transition are atomic.
func (s *Storage) AcceptInvitation(ctx context.Context, code string) error {
	ctx, span := s.tracer.Start(ctx, "storage.AcceptInvitation")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("invitations").
		Set("status", types.InvitationAccepted).
		Where(sq.Eq{"code": code, "status": types.InvitationPending}).
		Where(sq.Gt{"expires_at": time.Now().UTC()}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to accept invitation: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ExpireInvitation lazily records the pending -> expired transition. Guarded
// on pending status so an accepted invitation is never reversed.
func (s *Storage) ExpireInvitation(ctx context.Context, code string) error {
	ctx, span := s.tracer.Start(ctx, "storage.ExpireInvitation")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Update("invitations").
		Set("status", types.InvitationExpired).
		Where(sq.Eq{"code": code, "status": types.InvitationPending}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to expire invitation: %w", err)
	}
	return nil
}

package mangiato

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/nonibytes/mangiato/mangiato/model"
	"github.com/nonibytes/mangiato/mangiato/ops"
	"github.com/nonibytes/mangiato/mangiato/schema"
)

// CreateInvitation invites email to register. The acceptance token is only
// logged; delivering it is left to the caller.
func (s *Store) CreateInvitation(ctx context.Context, email string) (Invitation, error) {
	email, err := normalizeEmail("email", email)
	if err != nil {
		return Invitation{}, err
	}
	sqlt := s.sqlt()

	var out Invitation
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := ops.GetUserByUsername(ctx, tx, sqlt, email); err == nil {
			return ConflictError("A user with that email already exists.")
		} else if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if _, err := ops.GetInvitationByEmail(ctx, tx, sqlt, email); err == nil {
			return ConflictError("An invitation for that email already exists.")
		} else if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		inv := model.Invitation{Email: email, Token: uuid.NewString(), Status: InvitationPending}
		id, err := ops.InsertInvitation(ctx, tx, sqlt, inv, s.now())
		if err != nil {
			return err
		}
		out, err = ops.GetInvitation(ctx, tx, sqlt, id)
		return err
	})
	if err != nil {
		return Invitation{}, err
	}
	s.logger.Info("invitation created", "invitation_id", out.ID, "email", out.Email, "token", out.Token)
	return out, nil
}

func (s *Store) GetInvitation(ctx context.Context, id int64) (Invitation, error) {
	inv, err := ops.GetInvitation(ctx, s.db, s.sqlt(), id)
	if err != nil {
		return Invitation{}, lookupError(err, "invitation", id)
	}
	return inv, nil
}

func (s *Store) ListInvitations(ctx context.Context, opts ListOptions) (Page[Invitation], error) {
	lq, err := listQuery(schema.Invitations(), opts)
	if err != nil {
		return Page[Invitation]{}, err
	}
	items, info, err := ops.ListInvitations(ctx, s.db, s.adapter.PlaceholderStyle(), lq)
	if err != nil {
		return Page[Invitation]{}, storeError("list invitations", err)
	}
	return Page[Invitation]{Items: items, PageInfo: info}, nil
}

func (s *Store) DeleteInvitation(ctx context.Context, id int64) error {
	ok, err := ops.DeleteInvitation(ctx, s.db, s.sqlt(), id)
	if err != nil {
		return storeError("delete invitation", err)
	}
	if !ok {
		return NotFoundError("invitation", id)
	}
	return nil
}

// AcceptInvitation turns a pending invitation into a confirmed user with a
// profile. An unknown id and a wrong token look the same to the caller.
func (s *Store) AcceptInvitation(ctx context.Context, id int64, token, firstName, lastName string) (User, error) {
	sqlt := s.sqlt()

	var out User
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		inv, err := ops.GetInvitation(ctx, tx, sqlt, id)
		if errors.Is(err, sql.ErrNoRows) {
			return NewError(ErrNotFound, "invalid link")
		}
		if err != nil {
			return err
		}
		if subtle.ConstantTimeCompare([]byte(inv.Token), []byte(strings.TrimSpace(token))) != 1 {
			return NewError(ErrNotFound, "invalid link")
		}
		if inv.Status == InvitationAccepted {
			return ConflictError("invitation already accepted")
		}

		now := s.now()
		out, err = s.insertUser(ctx, tx, model.User{
			Username:    inv.Email,
			FirstName:   strings.TrimSpace(firstName),
			LastName:    strings.TrimSpace(lastName),
			Confirmed:   true,
			ConfirmedOn: &now,
		})
		if err != nil {
			return err
		}
		_, err = ops.SetInvitationStatus(ctx, tx, sqlt, id, InvitationAccepted)
		return err
	})
	if err != nil {
		return User{}, err
	}
	s.logger.Info("invitation accepted", "invitation_id", id, "user_id", out.ID)
	return out, nil
}

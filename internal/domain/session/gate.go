package session

import (
	"context"
	"errors"

	"care-hub-go/internal/domain/directory"
	"care-hub-go/pkg/logger"
)

type Gate struct {
	directory Directory
	lifecycle Lifecycle
	store     Store
	log       logger.Logger
}

func NewGate(dir Directory, lifecycle Lifecycle, store Store, log logger.Logger) *Gate {
	if log == nil {
		log = logger.Discard()
	}
	return &Gate{directory: dir, lifecycle: lifecycle, store: store, log: log}
}

// Login checks the credential, heals an expired suspension and then refuses
// banned or still suspended accounts.
func (g *Gate) Login(ctx context.Context, username, password string) (*directory.User, error) {
	user, err := g.directory.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			g.log.AuthEvent("login_failed", "username", username, "reason", "unknown_user")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Password != password {
		g.log.AuthEvent("login_failed", "username", username, "reason", "password_mismatch")
		return nil, ErrInvalidCredentials
	}

	status, err := g.lifecycle.EffectiveStatus(ctx, user, g.lifecycle.Today())
	if err != nil {
		return nil, err
	}

	switch status {
	case directory.StatusBanned:
		g.log.AuthEvent("login_refused", "user_id", user.ID, "status", status)
		return nil, &BannedError{Reason: user.BanReason}
	case directory.StatusSuspended:
		g.log.AuthEvent("login_refused", "user_id", user.ID, "status", status)
		until := g.lifecycle.Today()
		if user.SuspensionEndDate != nil {
			until = *user.SuspensionEndDate
		}
		return nil, &SuspendedError{Until: until}
	}

	if err := g.store.Save(ctx, *user); err != nil {
		return nil, err
	}
	g.log.AuthEvent("login", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (g *Gate) Logout(ctx context.Context) error {
	if err := g.store.Clear(ctx); err != nil {
		return err
	}
	g.log.AuthEvent("logout")
	return nil
}

func (g *Gate) Current(ctx context.Context) (*directory.User, error) {
	return g.store.Load(ctx)
}

// Refresh replaces the cached snapshot when user is the active identity.
func (g *Gate) Refresh(ctx context.Context, user directory.User) error {
	current, err := g.store.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return nil
		}
		return err
	}
	if current.ID != user.ID {
		return nil
	}
	return g.store.Save(ctx, user)
}

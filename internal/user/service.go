package user

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/platform/crypto"
	"bookcatalog/internal/platform/logger"
)

const (
	msgUsernameTaken      = "Username already exists"
	msgInvalidCredentials = "Invalid username or password"
	msgPasswordTooLong    = "Password is too long"
	msgRegisterFailed     = "Fail to register user"
	msgLoginFailed        = "Fail to login"
)

// Service handles registration and credential checks. Every error it
// returns carries an apperr kind.
type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, log *zap.Logger) *Service {
	return &Service{store: store, logger: logger.OrNop(log).Named("user")}
}

// Register stores a new account. A taken username is a bad request.
func (s *Service) Register(ctx context.Context, username, password string) (User, error) {
	_, err := s.store.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return User{}, apperr.BadRequest(msgUsernameTaken)
	case !errors.Is(err, ErrNotFound):
		s.logger.Error("identity store failure", zap.String("op", "lookup"), zap.String("username", username), zap.Error(err))
		return User{}, apperr.Internal(msgRegisterFailed)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return User{}, apperr.BadRequest(msgPasswordTooLong)
		}
		s.logger.Error("hash password", zap.Error(err))
		return User{}, apperr.Internal(msgRegisterFailed)
	}

	u := User{Username: username, Password: hash}
	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return User{}, apperr.BadRequest(msgUsernameTaken)
		}
		s.logger.Error("identity store failure", zap.String("op", "create"), zap.String("username", username), zap.Error(err))
		return User{}, apperr.Internal(msgRegisterFailed)
	}
	return u, nil
}

// Authenticate returns the account when password matches exactly.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	u, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, apperr.BadRequest(msgInvalidCredentials)
		}
		s.logger.Error("identity store failure", zap.String("op", "lookup"), zap.String("username", username), zap.Error(err))
		return User{}, apperr.Internal(msgLoginFailed)
	}
	if !crypto.VerifyPassword(u.Password, password) {
		return User{}, apperr.BadRequest(msgInvalidCredentials)
	}
	return u, nil
}

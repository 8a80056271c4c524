// Package service holds the business operations behind the HTTP handlers.
package service

import (
	"context"
	"errors"

	"chirp/internal/models"
	"chirp/internal/observability"
	"chirp/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any authentication failure: unknown
// username, wrong password or an inactive account. Callers must not
// distinguish the cases in user-facing output.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService implements account registration, authentication and self-update.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// RegisterInput carries the validated registration form fields.
type RegisterInput struct {
	Username    string
	Email       string
	DisplayName string
	Password    string
	Avatar      string
}

// Register hashes the password and persists a new active account.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	avatar := in.Avatar
	if avatar == "" {
		avatar = models.DefaultAvatar
	}

	user := &models.User{
		Username:    in.Username,
		Email:       in.Email,
		Password:    string(hashedPassword),
		DisplayName: in.DisplayName,
		Avatar:      avatar,
		IsActive:    true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	observability.Registrations.Inc()
	return user, nil
}

// Authenticate verifies the credentials and that the account is active.
// Every failure maps to ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		observability.Logins.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); cmpErr != nil {
		observability.Logins.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		observability.Logins.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}

	observability.Logins.WithLabelValues("success").Inc()
	return user, nil
}

// UpdateProfileInput carries the validated self-update form fields.
// Username is immutable and deliberately absent.
type UpdateProfileInput struct {
	UserID      uint
	Email       string
	DisplayName string
	Avatar      string
}

// UpdateProfile applies the externally settable fields to the caller's own record.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	user.Email = in.Email
	user.DisplayName = in.DisplayName
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

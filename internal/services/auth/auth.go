// Package auth registers portal accounts and issues bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/tenant-portal/internal/lib/jwt"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/password"
	"github.com/magabrotheeeer/tenant-portal/internal/models"
	"github.com/magabrotheeeer/tenant-portal/internal/storage"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailExists is returned when registering a taken email.
	ErrEmailExists = errors.New("email already registered")
)

// ProfileRepository stores accounts.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, p models.Profile) (string, error)
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
}

// Service handles sign-up and sign-in.
type Service struct {
	profiles ProfileRepository
	jwtMaker jwt.Maker
}

// NewService returns an auth Service.
func NewService(profiles ProfileRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		profiles: profiles,
		jwtMaker: jwtMaker,
	}
}

// Register creates an account and returns its id.
func (s *Service) Register(ctx context.Context, req models.DummyRegister) (string, error) {
	const op = "auth.Register"
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.profiles.CreateProfile(ctx, models.Profile{
		Email:        strings.TrimSpace(req.Email),
		FullName:     strings.TrimSpace(req.FullName),
		UserType:     req.UserType,
		PasswordHash: hashed,
	})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return "", fmt.Errorf("%s: %w", op, ErrEmailExists)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// Login checks the password and returns a signed token with the profile.
func (s *Service) Login(ctx context.Context, req models.DummyLogin) (string, *models.Profile, error) {
	const op = "auth.Login"
	profile, err := s.profiles.GetProfileByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(profile.PasswordHash, req.Password); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.jwtMaker.GenerateToken(profile.ID, profile.UserType)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, profile, nil
}

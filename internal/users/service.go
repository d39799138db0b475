package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=users_test

type usersRepo interface {
	Create(ctx context.Context, email, passwordHash, name string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type sessionManager interface {
	Login(ctx context.Context, userID string, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type SignupParams struct {
	Email    string
	Password string
	Name     string
}

type Service struct {
	repo     usersRepo
	sessions sessionManager
	now      func() time.Time
}

func NewService(repo usersRepo, sessions sessionManager) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
		now:      time.Now,
	}
}

// Signup creates the account and logs the new user in right away.
func (s *Service) Signup(ctx context.Context, params SignupParams) (_ *User, _ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.signup")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	email, err := normalizeEmail(params.Email)
	if err != nil {
		return nil, "", err
	}
	if len(params.Password) < minPasswordLength {
		return nil, "", ErrPasswordTooWeak
	}

	hash, err := pkg.HashPassword(params.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, email, hash, strings.TrimSpace(params.Name))
	if err != nil {
		return nil, "", err
	}

	token, err := s.sessions.Login(ctx, user.ID, s.now())
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}
	return user, token, nil
}

// Login checks the credentials and starts a new session. Unknown emails and
// wrong passwords both yield ErrWrongPassword.
func (s *Service) Login(ctx context.Context, email, password string) (_ *User, _ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	email, err = normalizeEmail(email)
	if err != nil {
		return nil, "", ErrWrongPassword
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, "", ErrWrongPassword
	}
	if err != nil {
		return nil, "", err
	}
	if !pkg.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrWrongPassword
	}

	token, err := s.sessions.Login(ctx, user.ID, s.now())
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}
	return user, token, nil
}

func (s *Service) Logout(ctx context.Context, token string) (bool, error) {
	return s.sessions.Logout(ctx, token)
}

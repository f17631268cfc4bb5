package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/udyoglabs/dukaan-backend/pkg/auth"
	"github.com/udyoglabs/dukaan-backend/pkg/config"
	"github.com/udyoglabs/dukaan-backend/pkg/db"
	"github.com/udyoglabs/dukaan-backend/pkg/db/models"
	pkgerrors "github.com/udyoglabs/dukaan-backend/pkg/errors"
	"github.com/udyoglabs/dukaan-backend/pkg/logger"
)

const invalidCredentialsMessage = "invalid credentials"

// Service authenticates the shop operator.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	EnsureDefaultOperator(ctx context.Context, username, password string) error
}

// LoginInput carries the submitted credentials.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult is returned to the client on a successful login.
type LoginResult struct {
	AccessToken string      `json:"access_token"`
	ExpiresAt   time.Time   `json:"expires_at"`
	Operator    OperatorDTO `json:"operator"`
}

// OperatorDTO is the public shape of an operator account.
type OperatorDTO struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type service struct {
	repo        *Repository
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
	now         func() time.Time
}

// NewService constructs an auth service instance.
func NewService(repo *Repository, jwtCfg config.JWTConfig, passwordCfg config.PasswordConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("operator repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:        repo,
		jwtCfg:      jwtCfg,
		passwordCfg: passwordCfg,
		logg:        logg,
		now:         time.Now,
	}, nil
}

// Login verifies the credentials and mints an access token.
func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	operator, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup operator")
	}

	valid, err := pkgAuth.VerifyPassword(input.Password, operator.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	now := s.now().UTC()
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		OperatorID: operator.ID,
		Username:   operator.Username,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	s.logg.Info(s.logg.WithField(ctx, "operator_id", operator.ID.String()), "operator logged in")
	return &LoginResult{
		AccessToken: token,
		ExpiresAt:   now.Add(s.jwtCfg.AccessTokenTTL()),
		Operator: OperatorDTO{
			ID:       operator.ID,
			Username: operator.Username,
		},
	}, nil
}

// EnsureDefaultOperator seeds the first login when no operators exist yet.
// A blank password disables seeding.
func (s *service) EnsureDefaultOperator(ctx context.Context, username, password string) error {
	if strings.TrimSpace(password) == "" {
		return nil
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "bootstrap operator username is required")
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting operators")
	}
	if count > 0 {
		return nil
	}

	hash, err := pkgAuth.HashPassword(password, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing bootstrap password")
	}

	operator := &models.Operator{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
	}
	if _, err := s.repo.Create(ctx, operator); err != nil {
		// another instance may have seeded concurrently
		if db.IsUniqueViolation(err) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating bootstrap operator")
	}

	s.logg.Info(s.logg.WithField(ctx, "operator_id", operator.ID.String()), "bootstrap operator created")
	return nil
}

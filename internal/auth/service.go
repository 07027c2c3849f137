package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/activity"
	pkgAuth "github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/security"
)

const (
	invalidCredentialsMessage = "invalid credentials"
	minPasswordLength         = 8
)

// Service authenticates back-office operators.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
	CreateAdmin(ctx context.Context, input CreateAdminInput) (*AdminDTO, error)
}

type adminRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	Create(ctx context.Context, admin *models.AdminUser) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type sessionManager interface {
	Create(ctx context.Context, adminID uuid.UUID) (string, error)
	Revoke(ctx context.Context, sessionID string) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Repo           adminRepository
	SessionManager sessionManager
	Activity       activity.Recorder
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

type service struct {
	repo        adminRepository
	sessions    sessionManager
	activity    activity.Recorder
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// NewService constructs the admin auth service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("admin repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.Activity == nil {
		params.Activity = activity.Nop{}
	}
	return &service{
		repo:        params.Repo,
		sessions:    params.SessionManager,
		activity:    params.Activity,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	admin, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.repo.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update last login")
	}
	admin.LastLoginAt = &now

	sessionID, err := s.sessions.Create(ctx, admin.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store session")
	}
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AdminTokenPayload{
		AdminID:   admin.ID,
		Email:     admin.Email,
		SessionID: sessionID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	s.activity.Record(ctx, activity.Entry{
		AdminID:    &admin.ID,
		Action:     enums.ActivityAdminLogin,
		EntityType: enums.EntityAdmin,
		EntityID:   &admin.ID,
		Summary:    fmt.Sprintf("%s signed in", admin.Name),
	})

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   now.Add(s.jwtCfg.TokenTTL()),
		Admin:       NewAdminDTO(admin),
	}, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session")
	}
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) CreateAdmin(ctx context.Context, input CreateAdminInput) (*AdminDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)
	details := map[string]string{}
	if email == "" || !strings.Contains(email, "@") {
		details["email"] = "must be a valid email"
	}
	if name == "" {
		details["name"] = "is required"
	}
	if len(input.Password) < minPasswordLength {
		details["password"] = fmt.Sprintf("must be at least %d characters", minPasswordLength)
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	admin := &models.AdminUser{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create admin")
	}
	dto := NewAdminDTO(admin)
	return &dto, nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.AdminUser, error) {
	input := strings.ToLower(strings.TrimSpace(email))
	if input == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	admin, err := s.repo.FindByEmail(ctx, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup admin")
	}

	valid, err := security.VerifyPassword(password, admin.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || !admin.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return admin, nil
}

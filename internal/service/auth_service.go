package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/workforce-service/internal/auth"
	"github.com/spec-kit/workforce-service/internal/config"
	"github.com/spec-kit/workforce-service/internal/domain"
	"github.com/spec-kit/workforce-service/internal/events"
	"github.com/spec-kit/workforce-service/internal/repository"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

var (
	nameFormat      = regexp.MustCompile(`^[A-Za-z]+\.[A-Za-z]+$`)
	passwordLetter  = regexp.MustCompile(`[A-Za-z]`)
	passwordDigit   = regexp.MustCompile(`[0-9]`)
	passwordSpecial = regexp.MustCompile(`[@$!%*#?&]`)
)

// TokenPair bundles the access/refresh tokens returned at login.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthService coordinates signup, login, refresh and password reset.
type AuthService struct {
	employees  repository.EmployeeRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	signup     config.SignupConfig
	dispatcher events.Dispatcher
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	Dispatcher   events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		employees:  deps.EmployeeRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes, cfg.Auth.RefreshTokenTTLDays),
		bcryptCost: cfg.Auth.BcryptCost,
		signup:     cfg.Signup,
		dispatcher: deps.Dispatcher,
	}
}

// Signup validates registration input and creates a new employee account.
func (s *AuthService) Signup(ctx context.Context, name, email, password string, role domain.Role, pin string) (*domain.Employee, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"field": "role"})
	}
	if !hasSuffixFold(email, s.signup.EmailDomain) {
		return nil, apperrors.NewValidationError("email must end in "+s.signup.EmailDomain, map[string]any{"field": "email"})
	}
	if !nameFormat.MatchString(name) {
		return nil, apperrors.NewValidationError("name must be in 'First.Last' format", map[string]any{"field": "name"})
	}
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}
	if pin != s.signup.RolePINs[role] {
		return nil, apperrors.NewValidationError("invalid pin for the selected role", map[string]any{"field": "pin"})
	}

	if _, err := s.employees.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	emp := &domain.Employee{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.employees.Create(ctx, emp); err != nil {
		// Concurrent signup with the same email loses the race at the
		// unique constraint.
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventEmployeeSignedUp, events.Actor{}, events.EmployeeSignedUpPayload{
		EmployeeID: emp.ID,
		Email:      emp.Email,
		Role:       emp.Role,
	})
	return emp, nil
}

// Login authenticates an employee and issues the access/refresh pair.
// Unknown email and wrong password yield the identical error so the
// response never reveals whether an account exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Employee, *TokenPair, error) {
	emp, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, nil, apperrors.MapError(err)
	}
	if !auth.VerifyPassword(emp.PasswordHash, password) {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}

	access, accessExp, err := s.tokenMgr.IssueAccessToken(emp)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	refresh, refreshExp, err := s.tokenMgr.IssueRefreshToken(emp)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	return emp, &TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is not rotated. The employee is re-fetched so a
// deactivated or deleted account cannot keep minting access tokens.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.tokenMgr.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid refresh token")
	}

	emp, err := s.employees.GetByID(ctx, claims.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, apperrors.NewUnauthorized("invalid refresh token")
		}
		return "", time.Time{}, apperrors.MapError(err)
	}
	if !emp.Active {
		return "", time.Time{}, apperrors.NewUnauthorized("account deactivated")
	}

	access, exp, err := s.tokenMgr.IssueAccessToken(emp)
	if err != nil {
		return "", time.Time{}, apperrors.MapError(err)
	}
	return access, exp, nil
}

// ForgotPassword overwrites the stored credential after checking the
// role PIN for the account's stored role.
func (s *AuthService) ForgotPassword(ctx context.Context, email, pin, newPassword string) error {
	emp, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("employee", map[string]any{"email": email})
		}
		return apperrors.MapError(err)
	}

	if pin != s.signup.RolePINs[emp.Role] {
		return apperrors.NewValidationError("invalid pin", map[string]any{"field": "pin"})
	}
	if err := validatePasswordStrength(newPassword); err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.employees.UpdatePassword(ctx, emp.ID, hash); err != nil {
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.EventPasswordReset, events.Actor{}, events.PasswordResetPayload{EmployeeID: emp.ID})
	return nil
}

// CurrentEmployee resolves an access token to a live employee record.
// The store is always consulted: a still-valid token for a deactivated
// account is rejected here rather than trusted for its embedded
// is_active claim.
func (s *AuthService) CurrentEmployee(ctx context.Context, accessToken string) (*domain.Employee, *auth.Claims, error) {
	claims, err := s.tokenMgr.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, nil, apperrors.NewUnauthorized("invalid token")
	}

	emp, err := s.employees.GetByID(ctx, claims.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthorized("invalid token")
		}
		return nil, nil, apperrors.MapError(err)
	}
	if !emp.Active {
		return nil, nil, apperrors.NewUnauthorized("account deactivated")
	}
	return emp, claims, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, actor events.Actor, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}

func validatePasswordStrength(password string) error {
	if len(password) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", map[string]any{"field": "password"})
	}
	if !passwordLetter.MatchString(password) || !passwordDigit.MatchString(password) || !passwordSpecial.MatchString(password) {
		return apperrors.NewValidationError("password must contain letters, digits, and special characters", map[string]any{"field": "password"})
	}
	return nil
}

func hasSuffixFold(s, suffix string) bool {
	return strings.HasSuffix(strings.ToLower(s), strings.ToLower(suffix))
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/workforce-service/internal/config"
	"github.com/spec-kit/workforce-service/internal/domain"
)

func newTestAuthService(repo *fakeEmployeeRepo) *AuthService {
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 30,
			RefreshTokenTTLDays:   365,
			BcryptCost:            bcrypt.MinCost,
		},
		Signup: config.SignupConfig{
			EmailDomain: "@gyansys.com",
			RolePINs: map[domain.Role]string{
				domain.RoleAdmin:    "adm789",
				domain.RoleManager:  "mgr456",
				domain.RoleEmployee: "emp123",
			},
		},
	}
	return NewAuthService(cfg, AuthDependencies{EmployeeRepo: repo})
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("valid signup creates an active account", func(t *testing.T) {
		svc := newTestAuthService(newFakeEmployeeRepo())

		emp, err := svc.Signup(ctx, "Alice.Tester", "Alice.Tester@gyansys.com", "Abc12345@", domain.RoleEmployee, "emp123")
		require.NoError(t, err)
		require.NotZero(t, emp.ID)
		require.Equal(t, domain.RoleEmployee, emp.Role)
		require.True(t, emp.Active)
		require.NotEqual(t, "Abc12345@", emp.PasswordHash)
	})

	t.Run("manager signup requires the manager pin", func(t *testing.T) {
		svc := newTestAuthService(newFakeEmployeeRepo())

		_, err := svc.Signup(ctx, "Bob.Lead", "Bob.Lead@gyansys.com", "Abc12345@", domain.RoleManager, "emp123")
		requireErrorCode(t, err, "VALIDATION_FAILED")

		_, err = svc.Signup(ctx, "Bob.Lead", "Bob.Lead@gyansys.com", "Abc12345@", domain.RoleManager, "mgr456")
		require.NoError(t, err)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		svc := newTestAuthService(newFakeEmployeeRepo())

		cases := []struct {
			name     string
			empName  string
			email    string
			password string
			role     domain.Role
			pin      string
		}{
			{"unknown role", "Alice.Tester", "Alice.Tester@gyansys.com", "Abc12345@", domain.Role("guest"), "emp123"},
			{"wrong email domain", "Alice.Tester", "Alice.Tester@example.com", "Abc12345@", domain.RoleEmployee, "emp123"},
			{"name without dot", "Alice", "Alice.Tester@gyansys.com", "Abc12345@", domain.RoleEmployee, "emp123"},
			{"name with digits", "Alice.T3ster", "Alice.Tester@gyansys.com", "Abc12345@", domain.RoleEmployee, "emp123"},
			{"password too short", "Alice.Tester", "Alice.Tester@gyansys.com", "Ab1@", domain.RoleEmployee, "emp123"},
			{"password without digit", "Alice.Tester", "Alice.Tester@gyansys.com", "Abcdefgh@", domain.RoleEmployee, "emp123"},
			{"password without special", "Alice.Tester", "Alice.Tester@gyansys.com", "Abcd1234", domain.RoleEmployee, "emp123"},
			{"password without letter", "Alice.Tester", "Alice.Tester@gyansys.com", "12345678@", domain.RoleEmployee, "emp123"},
			{"wrong pin", "Alice.Tester", "Alice.Tester@gyansys.com", "Abc12345@", domain.RoleEmployee, "wrong"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Signup(ctx, tc.empName, tc.email, tc.password, tc.role, tc.pin)
				requireErrorCode(t, err, "VALIDATION_FAILED")
			})
		}
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc := newTestAuthService(newFakeEmployeeRepo())

		_, err := svc.Signup(ctx, "Alice.Tester", "Alice.Tester@gyansys.com", "Abc12345@", domain.RoleEmployee, "emp123")
		require.NoError(t, err)

		_, err = svc.Signup(ctx, "Alice.Other", "Alice.Tester@gyansys.com", "Abc12345@", domain.RoleEmployee, "emp123")
		requireErrorCode(t, err, "CONFLICT")
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEmployeeRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Signup(ctx, "Alice.Tester", "Alice.Tester@gyansys.com", "Abc12345@", domain.RoleEmployee, "emp123")
	require.NoError(t, err)

	t.Run("valid credentials issue the token pair", func(t *testing.T) {
		emp, pair, err := svc.Login(ctx, "Alice.Tester@gyansys.com", "Abc12345@")
		require.NoError(t, err)
		require.Equal(t, "Alice.Tester@gyansys.com", emp.Email)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
		require.NotEqual(t, pair.AccessToken, pair.RefreshToken)
		require.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		_, _, errUnknown := svc.Login(ctx, "Nobody.Here@gyansys.com", "Abc12345@")
		_, _, errWrongPw := svc.Login(ctx, "Alice.Tester@gyansys.com", "Wrong1234@")

		requireErrorCode(t, errUnknown, "UNAUTHORIZED")
		requireErrorCode(t, errWrongPw, "UNAUTHORIZED")
		require.Equal(t, errUnknown.Error(), errWrongPw.Error())
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEmployeeRepo()
	svc := newTestAuthService(repo)

	emp, err := svc.Signup(ctx, "Alice.Tester", "Alice.Tester@gyansys.com", "Abc12345@", domain.RoleEmployee, "emp123")
	require.NoError(t, err)
	_, pair, err := svc.Login(ctx, "Alice.Tester@gyansys.com", "Abc12345@")
	require.NoError(t, err)

	t.Run("valid refresh token mints a new access token", func(t *testing.T) {
		access, expiresAt, err := svc.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		require.NotEmpty(t, access)
		require.False(t, expiresAt.IsZero())

		claims, err := svc.TokenManager().VerifyAccessToken(access)
		require.NoError(t, err)
		require.Equal(t, emp.ID, claims.EmployeeID)
	})

	t.Run("access token is rejected as a refresh token", func(t *testing.T) {
		_, _, err := svc.Refresh(ctx, pair.AccessToken)
		requireErrorCode(t, err, "UNAUTHORIZED")
	})

	t.Run("deactivated account cannot refresh", func(t *testing.T) {
		require.NoError(t, repo.SetActive(ctx, emp.ID, false))
		defer func() { require.NoError(t, repo.SetActive(ctx, emp.ID, true)) }()

		_, _, err := svc.Refresh(ctx, pair.RefreshToken)
		requireErrorCode(t, err, "UNAUTHORIZED")
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, _, err := svc.Refresh(ctx, "not-a-token")
		requireErrorCode(t, err, "UNAUTHORIZED")
	})
}

func TestForgotPassword(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEmployeeRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Signup(ctx, "Alice.Tester", "Alice.Tester@gyansys.com", "Abc12345@", domain.RoleEmployee, "emp123")
	require.NoError(t, err)

	t.Run("unknown email is not found", func(t *testing.T) {
		err := svc.ForgotPassword(ctx, "Nobody.Here@gyansys.com", "emp123", "New12345@")
		requireErrorCode(t, err, "NOT_FOUND")
	})

	t.Run("pin must match the stored role", func(t *testing.T) {
		err := svc.ForgotPassword(ctx, "Alice.Tester@gyansys.com", "mgr456", "New12345@")
		requireErrorCode(t, err, "VALIDATION_FAILED")
	})

	t.Run("weak replacement password is rejected", func(t *testing.T) {
		err := svc.ForgotPassword(ctx, "Alice.Tester@gyansys.com", "emp123", "weak")
		requireErrorCode(t, err, "VALIDATION_FAILED")
	})

	t.Run("reset flips which password logs in", func(t *testing.T) {
		require.NoError(t, svc.ForgotPassword(ctx, "Alice.Tester@gyansys.com", "emp123", "New12345@"))

		_, _, err := svc.Login(ctx, "Alice.Tester@gyansys.com", "Abc12345@")
		requireErrorCode(t, err, "UNAUTHORIZED")

		_, _, err = svc.Login(ctx, "Alice.Tester@gyansys.com", "New12345@")
		require.NoError(t, err)
	})
}

func TestCurrentEmployee(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEmployeeRepo()
	svc := newTestAuthService(repo)

	emp, err := svc.Signup(ctx, "Alice.Tester", "Alice.Tester@gyansys.com", "Abc12345@", domain.RoleEmployee, "emp123")
	require.NoError(t, err)
	_, pair, err := svc.Login(ctx, "Alice.Tester@gyansys.com", "Abc12345@")
	require.NoError(t, err)

	t.Run("valid token resolves the live record", func(t *testing.T) {
		got, claims, err := svc.CurrentEmployee(ctx, pair.AccessToken)
		require.NoError(t, err)
		require.Equal(t, emp.ID, got.ID)
		require.Equal(t, domain.RoleEmployee, claims.Role)
	})

	t.Run("refresh token does not pass as an access token", func(t *testing.T) {
		_, _, err := svc.CurrentEmployee(ctx, pair.RefreshToken)
		requireErrorCode(t, err, "UNAUTHORIZED")
	})

	t.Run("token for a deactivated account is rejected", func(t *testing.T) {
		require.NoError(t, repo.SetActive(ctx, emp.ID, false))
		defer func() { require.NoError(t, repo.SetActive(ctx, emp.ID, true)) }()

		_, _, err := svc.CurrentEmployee(ctx, pair.AccessToken)
		requireErrorCode(t, err, "UNAUTHORIZED")
	})
}

func TestAuthFlow(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newFakeEmployeeRepo())

	created, err := svc.Signup(ctx, "Alice.Tester", "Alice.Tester@gyansys.com", "Abc12345@", domain.RoleEmployee, "emp123")
	require.NoError(t, err)

	_, pair, err := svc.Login(ctx, "Alice.Tester@gyansys.com", "Abc12345@")
	require.NoError(t, err)

	current, claims, err := svc.CurrentEmployee(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, created.ID, current.ID)
	require.Equal(t, domain.RoleEmployee, claims.Role)

	access, expiresAt, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.False(t, expiresAt.Before(pair.AccessExpiresAt))

	refreshed, _, err := svc.CurrentEmployee(ctx, access)
	require.NoError(t, err)
	require.Equal(t, created.ID, refreshed.ID)
}

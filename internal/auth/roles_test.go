package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/workforce-service/internal/domain"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

func TestAuthorize(t *testing.T) {
	cases := []struct {
		name    string
		role    domain.Role
		allowed []domain.Role
		wantErr bool
	}{
		{"admin passes admin-only", domain.RoleAdmin, []domain.Role{domain.RoleAdmin}, false},
		{"manager denied admin-only", domain.RoleManager, []domain.Role{domain.RoleAdmin}, true},
		{"employee denied admin-only", domain.RoleEmployee, []domain.Role{domain.RoleAdmin}, true},
		{"manager passes manager-or-admin", domain.RoleManager, []domain.Role{domain.RoleManager, domain.RoleAdmin}, false},
		{"admin passes manager-or-admin", domain.RoleAdmin, []domain.Role{domain.RoleManager, domain.RoleAdmin}, false},
		{"employee denied manager-or-admin", domain.RoleEmployee, []domain.Role{domain.RoleManager, domain.RoleAdmin}, true},
		{"employee passes open set", domain.RoleEmployee, nil, false},
		{"manager passes open set", domain.RoleManager, nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.role, tc.allowed...)
			if !tc.wantErr {
				require.NoError(t, err)
				return
			}
			var domainErr *apperrors.DomainError
			require.True(t, errors.As(err, &domainErr))
			require.Equal(t, "FORBIDDEN", domainErr.Code)
			require.Equal(t, "insufficient permissions", domainErr.Message)
		})
	}
}

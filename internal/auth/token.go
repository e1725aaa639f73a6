package auth

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// refreshKeySuffix separates the refresh signing domain from the access
// domain. A token signed for one purpose never verifies under the
// other key.
const refreshKeySuffix = "_refresh"

// ErrInvalidToken is returned for any verification failure: bad
// signature, malformed encoding, wrong signing domain, or expiry in
// the past. Callers translate it uniformly to an unauthorized error.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and validates the access/refresh JWT pair.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewTokenManager builds a manager from the shared signing secret and
// the two configured lifetimes.
func NewTokenManager(secret string, accessTTLMinutes, refreshTTLDays int) *TokenManager {
	if accessTTLMinutes <= 0 {
		accessTTLMinutes = 30
	}
	if refreshTTLDays <= 0 {
		refreshTTLDays = 365
	}
	return &TokenManager{
		accessSecret:  []byte(secret),
		refreshSecret: []byte(secret + refreshKeySuffix),
		accessTTL:     time.Duration(accessTTLMinutes) * time.Minute,
		refreshTTL:    time.Duration(refreshTTLDays) * 24 * time.Hour,
		now:           time.Now,
	}
}

// Claims describes the JWT payload shared by both token domains.
type Claims struct {
	EmployeeID    int64       `json:"emp_id"`
	Role          domain.Role `json:"role"`
	Email         string      `json:"email"`
	Active        bool        `json:"is_active"`
	Experience    int         `json:"experience"`
	BillableHours int         `json:"billable_work_hours"`
	Department    *string     `json:"dept,omitempty"`
	jwt.RegisteredClaims
}

func claimsFor(emp *domain.Employee) *Claims {
	return &Claims{
		EmployeeID:    emp.ID,
		Role:          emp.Role,
		Email:         emp.Email,
		Active:        emp.Active,
		Experience:    emp.Experience,
		BillableHours: emp.BillableHours,
		Department:    emp.Department,
	}
}

// IssueAccessToken signs a short-lived token under the access key.
func (tm *TokenManager) IssueAccessToken(emp *domain.Employee) (string, time.Time, error) {
	return tm.sign(emp, tm.accessSecret, tm.accessTTL)
}

// IssueRefreshToken signs a long-lived token under the refresh key.
func (tm *TokenManager) IssueRefreshToken(emp *domain.Employee) (string, time.Time, error) {
	return tm.sign(emp, tm.refreshSecret, tm.refreshTTL)
}

func (tm *TokenManager) sign(emp *domain.Employee, secret []byte, ttl time.Duration) (string, time.Time, error) {
	now := tm.now()
	expiresAt := now.Add(ttl)

	claims := claimsFor(emp)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(emp.ID, 10),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// VerifyAccessToken validates signature and expiry under the access key.
func (tm *TokenManager) VerifyAccessToken(tokenStr string) (*Claims, error) {
	return tm.parse(tokenStr, tm.accessSecret)
}

// VerifyRefreshToken validates signature and expiry under the refresh key.
func (tm *TokenManager) VerifyRefreshToken(tokenStr string) (*Claims, error) {
	return tm.parse(tokenStr, tm.refreshSecret)
}

func (tm *TokenManager) parse(tokenStr string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithTimeFunc(tm.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

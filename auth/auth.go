package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNoToken      = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// TokenTTL bounds how long a login session lives. Authorization flags inside
// the token can go stale within this window; sensitive operations re-read
// them from storage instead of trusting the token.
const TokenTTL = 24 * time.Hour

// Claims is the session token payload. The flags are carried for routing
// and display only - the casting transaction and admin mutations re-check
// the voter row.
type Claims struct {
	VoterID    int64  `json:"voter_id"`
	Email      string `json:"email"`
	IsAdmin    bool   `json:"is_admin"`
	IsEligible bool   `json:"is_eligible"`
	jwt.RegisteredClaims
}

// HashPassword derives a bcrypt digest for storage.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// CheckPassword reports whether password matches the stored bcrypt digest.
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// IssueToken signs a session token for an authenticated voter.
func IssueToken(secret string, voterID int64, email string, isAdmin, isEligible bool) (string, error) {
	now := time.Now()
	claims := Claims{
		VoterID:    voterID,
		Email:      email,
		IsAdmin:    isAdmin,
		IsEligible: isEligible,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a signed session token and returns its claims.
func ParseToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.VoterID <= 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ClaimsFromRequest extracts and validates the bearer token on a request.
// Returns ErrNoToken when no Authorization header is present, so callers
// can distinguish "must log in" from "bad token".
func ClaimsFromRequest(r *http.Request, secret string) (*Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, ErrNoToken
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, ErrInvalidToken
	}
	return ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
}

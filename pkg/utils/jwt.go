package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Roles that may act on behalf of any student.
const (
	RoleStudent   = "student"
	RolePreceptor = "preceptor"
	RoleAdmin     = "admin"
)

// Claims represents JWT custom claims
type Claims struct {
	StudentID int64  `json:"student_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// ActsForAnyStudent reports whether the role is not limited to its own
// student id.
func (c *Claims) ActsForAnyStudent() bool {
	return c.Role == RoleAdmin || c.Role == RolePreceptor
}

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
}

func NewTokenIssuer(secret string, expiry time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// GenerateAccessToken generates a JWT access token for the student
func (t *TokenIssuer) GenerateAccessToken(studentID int64, role string) (string, error) {
	if role == "" {
		role = RoleStudent
	}
	now := time.Now()
	claims := Claims{
		StudentID: studentID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(studentID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// ValidateAccessToken validates and parses a JWT access token
func (t *TokenIssuer) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		if claims.StudentID <= 0 && !claims.ActsForAnyStudent() {
			return nil, errors.New("token carries no student id")
		}
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

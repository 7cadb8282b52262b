// auth/jwt.go
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/hashemm621/AssetVerse-Server/apperr"
)

type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the bearer credentials the API
// accepts. It is the concrete identity collaborator: everything past the
// middleware only ever sees the verified principal email.
type TokenService struct {
	key        []byte
	expiration time.Duration
}

func NewTokenService(key []byte, expiration time.Duration) *TokenService {
	return &TokenService{key: key, expiration: expiration}
}

func (s *TokenService) Generate(email, name, role string) (string, error) {
	claims := Claims{
		Email: email,
		Name:  name,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// Verify validates a bearer credential and yields the principal email.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.New(apperr.Auth, "unexpected signing method")
		}
		return s.key, nil
	})
	if err != nil || !token.Valid || claims.Email == "" {
		return "", apperr.New(apperr.Auth, "Invalid or expired token")
	}
	return claims.Email, nil
}

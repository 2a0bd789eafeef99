package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/glYohanny/Gucci/internal/apierror"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures. Each carries the message returned to clients.
var (
	ErrTokenFaltante = apierror.Autenticacion("Token faltante")
	ErrTokenExpirado = apierror.Autenticacion("Token expirado")
	ErrTokenInvalido = apierror.Autenticacion("Token inválido")
)

// TokenManager issues and verifies HS256 tokens whose subject is the
// usuario id.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *TokenManager) Emitir(usuarioID uint) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(usuarioID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verificar returns the usuario id carried by raw.
func (m *TokenManager) Verificar(raw string) (uint, error) {
	if raw == "" {
		return 0, ErrTokenFaltante
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpirado
		}
		return 0, ErrTokenInvalido
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrTokenInvalido
	}
	return uint(id), nil
}

package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"toolkeep/internal/domain"
)

// SessionService emite y valida tokens de sesión firmados con HS256.
type SessionService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// SessionClaims es el conjunto mínimo de claims dentro de un token de sesión.
type SessionClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

var (
	ErrSessionInvalid = errors.New("session token invalid")
	ErrSessionExpired = errors.New("session token expired")
)

const defaultSessionTTL = 7 * 24 * time.Hour

func NewSessionService(secret string, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "toolkeep",
	}
}

// TTL devuelve la vigencia configurada de los tokens emitidos.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

func (s *SessionService) Issue(user domain.PublicUser) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrSessionInvalid
	}
	if strings.TrimSpace(user.ID) == "" {
		return "", ErrSessionInvalid
	}

	now := time.Now().UTC()
	claims := SessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify valida firma, expiración y claims; token alterado, malformado o
// vencido termina en sentinela, nunca en pánico ni en error crudo del parser.
func (s *SessionService) Verify(tokenString string) (SessionClaims, error) {
	if len(s.secret) == 0 {
		return SessionClaims{}, ErrSessionInvalid
	}
	if strings.TrimSpace(tokenString) == "" {
		return SessionClaims{}, ErrSessionInvalid
	}

	var claims SessionClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return SessionClaims{}, ErrSessionExpired
		}
		return SessionClaims{}, ErrSessionInvalid
	}
	if !s.isValidClaims(claims) {
		return SessionClaims{}, ErrSessionInvalid
	}
	return claims, nil
}

func (s *SessionService) isValidClaims(claims SessionClaims) bool {
	if strings.TrimSpace(claims.UserID) == "" {
		return false
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return false
	}
	if claims.Subject != claims.UserID {
		return false
	}
	return strings.TrimSpace(claims.Issuer) == s.issuer
}

package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"toolkeep/internal/domain"
)

func TestSessionService_IssueVerify(t *testing.T) {
	svc := NewSessionService("secret", 7*24*time.Hour)
	user := domain.PublicUser{ID: "u1", Email: "user@example.com", Name: "Test"}

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "user@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt == nil {
		t.Fatalf("expected expiration claim")
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 7*24*time.Hour-time.Minute || ttl > 7*24*time.Hour+time.Minute {
		t.Fatalf("expected ~7 day expiry, got %v", ttl)
	}
}

func TestSessionService_RejectsExpiredToken(t *testing.T) {
	svc := NewSessionService("secret", 7*24*time.Hour)

	// Token firmado con el mismo secreto pero emitido hace mas de 7 dias.
	issued := time.Now().UTC().Add(-8 * 24 * time.Hour)
	claims := SessionClaims{
		UserID: "u1",
		Email:  "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "toolkeep",
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(7 * 24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestSessionService_RejectsTamperedSignature(t *testing.T) {
	svc := NewSessionService("secret", time.Hour)
	token, err := svc.Issue(domain.PublicUser{ID: "u1", Email: "user@example.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected compact JWS, got %d segments", len(parts))
	}
	sig := []byte(parts[2])
	// El ultimo caracter base64 contiene bits de relleno que un decoder
	// no estricto ignora; se excluye para no dar un falso negativo.
	for i := 0; i < len(sig)-1; i++ {
		flipped := make([]byte, len(sig))
		copy(flipped, sig)
		flipped[i] ^= 0x01
		tampered := parts[0] + "." + parts[1] + "." + string(flipped)
		if _, err := svc.Verify(tampered); err == nil {
			t.Fatalf("expected rejection after flipping signature byte %d", i)
		}
	}
}

func TestSessionService_RejectsWrongSecret(t *testing.T) {
	token, err := NewSessionService("secret-a", time.Hour).Issue(domain.PublicUser{ID: "u1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewSessionService("secret-b", time.Hour).Verify(token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
}

func TestSessionService_RejectsMalformedToken(t *testing.T) {
	svc := NewSessionService("secret", time.Hour)
	for _, token := range []string{"", "   ", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(token); !errors.Is(err, ErrSessionInvalid) {
			t.Fatalf("expected ErrSessionInvalid for %q, got %v", token, err)
		}
	}
}

func TestSessionService_RejectsEmptySecret(t *testing.T) {
	svc := NewSessionService("", time.Hour)
	if _, err := svc.Issue(domain.PublicUser{ID: "u1"}); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid on issue, got %v", err)
	}
	if _, err := svc.Verify("whatever"); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid on verify, got %v", err)
	}
}

func TestSessionService_RejectsWrongIssuer(t *testing.T) {
	svc := NewSessionService("secret", time.Hour)
	now := time.Now().UTC()
	claims := SessionClaims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "other-issuer",
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
}

func TestSessionService_RejectsSubjectMismatch(t *testing.T) {
	svc := NewSessionService("secret", time.Hour)
	now := time.Now().UTC()
	claims := SessionClaims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "toolkeep",
			Subject:   "someone-else",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
}

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/lyonblue/PHADMINISTRATION/internal/common"
)

var testSecret = []byte("test-secret")

func TestGenerateAndParseToken(t *testing.T) {
	tokenString, err := GenerateToken("u1", "admin", testSecret, time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseToken(tokenString, testSecret)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.UserID != "u1" {
		t.Fatalf("want user u1, got %q", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Fatalf("want role admin, got %q", claims.Role)
	}
}

func TestParseToken_Expired(t *testing.T) {
	tokenString, err := GenerateToken("u1", "user", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := ParseToken(tokenString, testSecret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseToken_WrongKey(t *testing.T) {
	tokenString, err := GenerateToken("u1", "user", testSecret, time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := ParseToken(tokenString, []byte("other-key")); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for wrong key, got %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken("not.a.jwt", testSecret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

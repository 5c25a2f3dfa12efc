package auth

import (
	"context"
	"testing"
	"time"
)

func testService(secret string) Service {
	return NewService(&Config{
		JWTSecret:         secret,
		AccessTokenExpiry: time.Minute,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := testService("test-secret")

	token, err := svc.GenerateToken("user_1", "member")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	claims, err := svc.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if claims.UserID != "user_1" {
		t.Errorf("user id = %s, want user_1", claims.UserID)
	}
	if claims.Role != "member" {
		t.Errorf("role = %s, want member", claims.Role)
	}
	if claims.Type != "access" {
		t.Errorf("type = %s, want access", claims.Type)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := testService("secret-a").GenerateToken("user_1", "")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := testService("secret-b").ValidateToken(context.Background(), token); err != ErrInvalidToken {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := testService("test-secret")

	if _, err := svc.ValidateToken(context.Background(), "not-a-token"); err != ErrInvalidToken {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

package auth

import (
	"testing"
	"time"
)

func TestGenerateAndValidateSeatToken(t *testing.T) {
	mgr := NewJWTManager("test-secret-key-123")
	token, err := mgr.GenerateSeatToken("room-42", "p1")
	if err != nil {
		t.Fatalf("generate seat token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := mgr.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.RoomID != "room-42" {
		t.Errorf("expected room_id=room-42, got %s", claims.RoomID)
	}
	if claims.Seat != "p1" {
		t.Errorf("expected seat=p1, got %s", claims.Seat)
	}
	if claims.Subject != "room-42/p1" {
		t.Errorf("expected subject=room-42/p1, got %s", claims.Subject)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	mgr1 := NewJWTManager("secret-one")
	mgr2 := NewJWTManager("secret-two")

	token, err := mgr1.GenerateSeatToken("room-1", "p2")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := mgr2.ValidateToken(token); err == nil {
		t.Error("expected validation to fail with wrong secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	mgr := NewJWTManager("test-secret")
	if _, err := mgr.ValidateToken("not-a-jwt"); err == nil {
		t.Error("expected error for garbage token")
	}
	if _, err := mgr.ValidateToken(""); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestExpiredToken(t *testing.T) {
	mgr := &JWTManager{
		secret: []byte("test-secret"),
		expiry: -1 * time.Second,
	}
	token, err := mgr.GenerateSeatToken("room-1", "p1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := mgr.ValidateToken(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestDifferentSeatsGetDifferentTokens(t *testing.T) {
	mgr := NewJWTManager("test-secret")
	t1, _ := mgr.GenerateSeatToken("room-1", "p1")
	t2, _ := mgr.GenerateSeatToken("room-1", "p2")
	if t1 == t2 {
		t.Error("different seats should get different tokens")
	}
}

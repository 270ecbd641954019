package api

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/uxrlabs/uxr-tracker-backend/models"
)

func TestJWTService_RoundTrip(t *testing.T) {
	service := NewJWTService([]byte("test-secret"), time.Hour)
	user := models.User{
		ID:    uuid.New(),
		Email: "admin@uxr.team",
		Role:  models.RoleAdmin,
	}

	token, err := service.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != user.ID.String() {
		t.Errorf("expected user ID %s, got %s", user.ID, claims.UserID)
	}
	if claims.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, claims.Email)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("expected role %s, got %s", models.RoleAdmin, claims.Role)
	}
	if claims.Issuer != jwtIssuer {
		t.Errorf("expected issuer %s, got %s", jwtIssuer, claims.Issuer)
	}
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	signer := NewJWTService([]byte("secret-a"), time.Hour)
	verifier := NewJWTService([]byte("secret-b"), time.Hour)

	token, err := signer.GenerateToken(models.User{ID: uuid.New()})
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatal("token signed with a different secret should be rejected")
	}
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	service := NewJWTService([]byte("test-secret"), -time.Minute)

	token, err := service.GenerateToken(models.User{ID: uuid.New()})
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := service.ValidateToken(token); err == nil {
		t.Fatal("expired token should be rejected")
	}
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	service := NewJWTService([]byte("test-secret"), time.Hour)
	if _, err := service.ValidateToken("not.a.token"); err == nil {
		t.Fatal("malformed token should be rejected")
	}
}

package utils

import (
	"testing"
	"time"

	"slotbook/config"
)

func TestExtractIdentityRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	defer func() { config.AppConfig.JWTSecret = "" }()

	token, err := GenerateToken("user-1", RoleConsumer, time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	id, err := ExtractIdentity(token)
	if err != nil {
		t.Fatalf("ExtractIdentity: %v", err)
	}
	if id.UserID != "user-1" || id.Role != RoleConsumer {
		t.Fatalf("unexpected identity %+v", id)
	}
}

func TestExtractIdentityRejectsExpiredAndForeignTokens(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	defer func() { config.AppConfig.JWTSecret = "" }()

	expired, err := GenerateToken("user-1", RoleConsumer, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ExtractIdentity(expired); err == nil {
		t.Fatal("expected expired token to be rejected")
	}

	config.AppConfig.JWTSecret = "other-secret"
	foreign, _ := GenerateToken("user-2", RoleAdmin, time.Minute)
	config.AppConfig.JWTSecret = "test-secret"
	if _, err := ExtractIdentity(foreign); err == nil {
		t.Fatal("expected token signed with another key to be rejected")
	}
}

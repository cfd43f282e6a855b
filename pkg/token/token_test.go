package token

import (
	"testing"

	"github.com/gbmsdev99/xclinic/config"
)

func TestIssueAndVerify(t *testing.T) {
	mgr, err := NewManager(config.AuthConfig{
		JWTSecret:        "test-secret",
		AccessTTLMinutes: 5,
		Issuer:           "xclinic",
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	signed, _, err := mgr.Issue("admin", "admin")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := mgr.Verify(signed)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("Username = %q, want %q", claims.Username, "admin")
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want %q", claims.Role, "admin")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	mgr, _ := NewManager(config.AuthConfig{JWTSecret: "secret-a"})
	other, _ := NewManager(config.AuthConfig{JWTSecret: "secret-b"})

	signed, _, err := mgr.Issue("admin", "admin")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := other.Verify(signed); err == nil {
		t.Error("Expected verification to fail with a different secret")
	}
}

func TestVerify_Garbage(t *testing.T) {
	mgr, _ := NewManager(config.AuthConfig{JWTSecret: "secret"})
	if _, err := mgr.Verify("not-a-token"); err == nil {
		t.Error("Expected verification of garbage input to fail")
	}
}

func TestNewManager_MissingSecret(t *testing.T) {
	if _, err := NewManager(config.AuthConfig{}); err == nil {
		t.Error("Expected error when jwt secret is missing")
	}
}

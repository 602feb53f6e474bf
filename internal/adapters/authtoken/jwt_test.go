package authtoken

import (
	"testing"
	"time"

	"stayhub/internal/domain"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	j := NewJWT("test-secret", time.Hour)
	u := domain.User{ID: "u1", Email: "guest@example.com", Role: domain.RoleGuest}

	raw, err := j.Issue(u)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	p, err := j.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if p.UserID != "u1" || p.Email != "guest@example.com" || p.Role != domain.RoleGuest {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	raw, err := NewJWT("secret-a", time.Hour).Issue(domain.User{ID: "u1", Role: domain.RoleHost})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewJWT("secret-b", time.Hour).Verify(raw); err != ErrInvalidToken {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	j := NewJWT("test-secret", -time.Minute)
	raw, err := j.Issue(domain.User{ID: "u1", Role: domain.RoleGuest})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := j.Verify(raw); err != ErrInvalidToken {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := NewJWT("test-secret", time.Hour).Verify("not-a-token"); err != ErrInvalidToken {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

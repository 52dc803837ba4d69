package auth

import (
	"strings"
	"testing"
	"time"
)

func TestHashAndVerifyPassword(t *testing.T) {
	digest, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "secret123" {
		t.Fatal("digest equals plaintext")
	}
	if !VerifyPassword("secret123", digest) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("wrong", digest) {
		t.Error("wrong password accepted")
	}
}

func TestGeneratePassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		p, err := GeneratePassword()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(p) != passwordLen {
			t.Errorf("len = %d, want %d", len(p), passwordLen)
		}
		if !strings.ContainsAny(p, upperLetters) || !strings.ContainsAny(p, lowerLetters) ||
			!strings.ContainsAny(p, digits) || !strings.ContainsAny(p, symbols) {
			t.Errorf("password missing a required class: %q", p)
		}
		if seen[p] {
			t.Errorf("duplicate password generated: %q", p)
		}
		seen[p] = true
	}
}

func TestTokensIssueAndVerify(t *testing.T) {
	tokens := NewTokens("test-secret")

	raw, err := tokens.Issue(1, "admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := tokens.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Username != "admin" || claims.Subject != "1" {
		t.Errorf("claims = %+v", claims)
	}
	if exp := claims.ExpiresAt.Time; time.Until(exp) > tokenTTL || time.Until(exp) <= 0 {
		t.Errorf("unexpected expiry %v", exp)
	}

	if _, err := tokens.Verify(raw + "x"); err == nil {
		t.Error("tampered token accepted")
	}
	other := NewTokens("different-secret")
	if _, err := other.Verify(raw); err == nil {
		t.Error("token accepted with wrong secret")
	}
}

func TestCooldownSecondsForFailCount(t *testing.T) {
	tests := []struct {
		failCount int
		want      int
	}{
		{1, 2},
		{2, 4},
		{3, 8},
		{4, 16},
		{5, 30}, // 2^5=32 -> cap 30
		{10, 30},
		{63, 30}, // would overflow a naive 2^n
		{1000, 30},
	}
	for _, tt := range tests {
		if got := CooldownSecondsForFailCount(tt.failCount); got != tt.want {
			t.Errorf("CooldownSecondsForFailCount(%d) = %d, want %d", tt.failCount, got, tt.want)
		}
	}
}

func TestThrottle(t *testing.T) {
	th := NewThrottle()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	th.now = func() time.Time { return now }

	if w := th.WaitSeconds("admin"); w != 0 {
		t.Errorf("fresh user wait = %d, want 0", w)
	}

	th.RecordFailure("admin")
	if w := th.WaitSeconds("admin"); w <= 0 || w > 3 {
		t.Errorf("after one failure wait = %d, want ~2", w)
	}

	// Other users are unaffected.
	if w := th.WaitSeconds("other"); w != 0 {
		t.Errorf("other user wait = %d, want 0", w)
	}

	// Cooldown expires with time.
	now = now.Add(5 * time.Second)
	if w := th.WaitSeconds("admin"); w != 0 {
		t.Errorf("after expiry wait = %d, want 0", w)
	}

	// Repeated failures cap at 30s.
	for i := 0; i < 8; i++ {
		th.RecordFailure("admin")
	}
	if w := th.WaitSeconds("admin"); w > throttleCapSeconds+1 {
		t.Errorf("wait = %d, want <= %d", w, throttleCapSeconds+1)
	}

	th.RecordSuccess("admin")
	if w := th.WaitSeconds("admin"); w != 0 {
		t.Errorf("after success wait = %d, want 0", w)
	}
}

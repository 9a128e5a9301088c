package auth

import "testing"

func TestIssueAndValidateRoundTrip(t *testing.T) {
	token, err := IssueToken("admin", "test-secret", "1h")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	claims, err := ValidateToken(token, "test-secret")
	if err != nil {
		t.Fatalf("validating token: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("username = %q, want admin", claims.Username)
	}
	if claims.Issuer != "agency-support-chat" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := IssueToken("admin", "test-secret", "1h")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	if _, err := ValidateToken(token, "other-secret"); err == nil {
		t.Error("token signed with a different secret should be rejected")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := IssueToken("admin", "test-secret", "-1h")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	if _, err := ValidateToken(token, "test-secret"); err == nil {
		t.Error("expired token should be rejected")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	if _, err := ValidateToken("not.a.token", "test-secret"); err == nil {
		t.Error("malformed token should be rejected")
	}
}

func TestBadDurationFallsBackToDefault(t *testing.T) {
	token, err := IssueToken("admin", "test-secret", "not-a-duration")
	if err != nil {
		t.Fatalf("issuing token with bad duration: %v", err)
	}
	if _, err := ValidateToken(token, "test-secret"); err != nil {
		t.Errorf("token with default expiry should validate: %v", err)
	}
}

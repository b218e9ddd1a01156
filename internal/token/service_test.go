package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(Config{Secret: testSecret, TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewService() error: %v", err)
	}
	return svc
}

func TestNewService_MissingSecret(t *testing.T) {
	if _, err := NewService(Config{}); err == nil {
		t.Fatal("NewService() with no secret should fail")
	}
}

func TestNewService_ShortSecret(t *testing.T) {
	if _, err := NewService(Config{Secret: "too-short"}); err == nil {
		t.Fatal("NewService() with a short secret should fail")
	}
}

func TestIssueValidate_RoundTrip(t *testing.T) {
	svc := testService(t)

	signed, err := svc.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	claims, err := svc.Validate(signed)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if got := claims.UserID(); got != "user-123" {
		t.Errorf("subject = %q, want %q", got, "user-123")
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("expected iat and exp claims to be set")
	}
	if !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		t.Error("expiry must be strictly after issued-at")
	}
}

func TestValidate_Expired(t *testing.T) {
	svc := testService(t)

	signed, err := svc.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	// Move the clock past expiry plus leeway.
	svc.now = func() time.Time {
		return time.Now().Add(svc.cfg.TTL + svc.cfg.Leeway + time.Minute)
	}

	_, err = svc.Validate(signed)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("Validate() error = %v, want ErrExpired", err)
	}
}

func TestValidate_WithinLeeway(t *testing.T) {
	svc := testService(t)

	signed, err := svc.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	// Just past expiry but inside the leeway window.
	svc.now = func() time.Time {
		return time.Now().Add(svc.cfg.TTL + 10*time.Second)
	}

	if _, err := svc.Validate(signed); err != nil {
		t.Fatalf("Validate() within leeway error: %v", err)
	}
}

func TestValidate_TamperedSignature(t *testing.T) {
	svc := testService(t)

	signed, err := svc.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	// Alter one character of the signature segment.
	idx := strings.LastIndex(signed, ".")
	sig := []byte(signed[idx+1:])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := signed[:idx+1] + string(sig)

	_, err = svc.Validate(tampered)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("Validate() error = %v, want ErrInvalidSignature", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	svc := testService(t)

	other, err := NewService(Config{Secret: "ffffffffffffffffffffffffffffffff", TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewService() error: %v", err)
	}

	signed, err := other.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	_, err = svc.Validate(signed)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("Validate() error = %v, want ErrInvalidSignature", err)
	}
}

func TestValidate_Malformed(t *testing.T) {
	svc := testService(t)

	for _, input := range []string{"", "garbage", "a.b", "a.b.c"} {
		if _, err := svc.Validate(input); !errors.Is(err, ErrMalformed) {
			t.Errorf("Validate(%q) error = %v, want ErrMalformed", input, err)
		}
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{Secret: testSecret}
	cfg.ApplyDefaults()

	if cfg.TTL != time.Hour {
		t.Errorf("default TTL = %s, want 1h", cfg.TTL)
	}
	if cfg.Leeway != 60*time.Second {
		t.Errorf("default leeway = %s, want 60s", cfg.Leeway)
	}
}

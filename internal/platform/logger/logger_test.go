package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVs(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"password", "hunter2",
		"email", "shopper@example.com",
		"product_id", "p-1",
		"dangling",
	})
	if len(out) != 7 {
		t.Fatalf("unexpected length: %d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("password not redacted: %v", out[1])
	}
	hashed, ok := out[3].(string)
	if !ok || !strings.HasPrefix(hashed, "hash:") {
		t.Fatalf("email not hashed: %v", out[3])
	}
	if strings.Contains(hashed, "shopper") {
		t.Fatalf("email leaked: %v", hashed)
	}
	if out[5] != "p-1" {
		t.Fatalf("plain value changed: %v", out[5])
	}
	if out[6] != "dangling" {
		t.Fatalf("dangling key dropped: %v", out[6])
	}
}

func TestHashValueStable(t *testing.T) {
	a := hashValue("shopper@example.com")
	b := hashValue("shopper@example.com")
	if a != b {
		t.Fatalf("hash not stable: %q vs %q", a, b)
	}
	if hashValue("") != "" {
		t.Fatalf("empty value should hash to empty")
	}
}

func TestLooksLikeJWT(t *testing.T) {
	tok := "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0NTY3ODkwIn0.sig"
	if !looksLikeJWT(tok) {
		t.Fatalf("expected jwt detection")
	}
	if sanitizeValue("note", tok) != "[REDACTED]" {
		t.Fatalf("jwt-like value not redacted")
	}
	if looksLikeJWT("a.b.c") {
		t.Fatalf("short dotted string flagged as jwt")
	}
}

package booking

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestVoucherSecretPrefersEnv(t *testing.T) {
	t.Setenv("VOUCHER_SECRET", "per-deployment-key")
	if got := string(voucherSecret()); got != "per-deployment-key" {
		t.Fatalf("env secret not used, got %q", got)
	}
}

func TestSignVoucherShape(t *testing.T) {
	sig := signVoucher("b123", "u-owner")

	parts := strings.Split(sig, "|")
	if len(parts) != 3 {
		t.Fatalf("expected bookingID|userID|signature, got %q", sig)
	}
	if parts[0] != "b123" || parts[1] != "u-owner" {
		t.Fatalf("payload fields wrong: %q", sig)
	}
	if _, err := base64.StdEncoding.DecodeString(parts[2]); err != nil {
		t.Fatalf("signature is not base64: %v", err)
	}

	if signVoucher("b123", "u-owner") != sig {
		t.Fatal("signature must be deterministic for the same key")
	}
	if signVoucher("b124", "u-owner") == sig {
		t.Fatal("different bookings must not share a signature")
	}
}

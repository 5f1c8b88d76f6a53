package orgs

import (
	"strings"
	"testing"
)

const testSecret = "unit-test-sso-secret"

func TestSSOConfigRoundTrip(t *testing.T) {
	plaintext := `{"idp_url":"https://idp.example.com/saml","certificate":"MIIC...","entity_id":"skillytics"}`

	encrypted, err := EncryptSSOConfig(plaintext, testSecret)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if strings.Contains(encrypted, "idp.example.com") {
		t.Error("ciphertext leaks plaintext")
	}
	// iv-hex:cipher-hex
	parts := strings.Split(encrypted, ":")
	if len(parts) != 2 {
		t.Fatalf("encrypted format = %q, want iv:ciphertext", encrypted)
	}
	if len(parts[0]) != 32 { // 16-byte IV hex-encoded
		t.Errorf("IV hex length = %d, want 32", len(parts[0]))
	}

	decrypted, err := DecryptSSOConfig(encrypted, testSecret)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if decrypted != plaintext {
		t.Errorf("round trip mismatch:\n got %q\nwant %q", decrypted, plaintext)
	}
}

func TestSSOConfigUniqueIVs(t *testing.T) {
	a, err := EncryptSSOConfig("same input", testSecret)
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncryptSSOConfig("same input", testSecret)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two encryptions of the same input must differ (random IV)")
	}
}

func TestSSOConfigWrongKey(t *testing.T) {
	encrypted, err := EncryptSSOConfig(`{"idp_url":"https://idp.example.com"}`, testSecret)
	if err != nil {
		t.Fatal(err)
	}

	decrypted, err := DecryptSSOConfig(encrypted, "a-different-secret")
	if err == nil && decrypted == `{"idp_url":"https://idp.example.com"}` {
		t.Error("wrong key must not recover the plaintext")
	}
}

func TestSSOConfigMalformedInput(t *testing.T) {
	for _, bad := range []string{"", "notformat", "zz:zz", "abcd:"} {
		if _, err := DecryptSSOConfig(bad, testSecret); err == nil {
			t.Errorf("DecryptSSOConfig(%q) should fail", bad)
		}
	}
}

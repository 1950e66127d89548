package dirigera

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"
)

func TestGenerateProofKey(t *testing.T) {
	t.Run("challenge derives from verifier", func(t *testing.T) {
		proof, err := GenerateProofKey()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		sum := sha256.Sum256([]byte(proof.Verifier))
		want := base64.RawURLEncoding.EncodeToString(sum[:])
		if proof.Challenge != want {
			t.Errorf("Challenge = %q, want %q", proof.Challenge, want)
		}
	})

	t.Run("verifier length and alphabet", func(t *testing.T) {
		proof, err := GenerateProofKey()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(proof.Verifier) != verifierLength {
			t.Errorf("verifier length = %d, want %d", len(proof.Verifier), verifierLength)
		}
		if len(proof.Verifier) < 43 {
			t.Errorf("verifier length %d below the RFC 7636 minimum", len(proof.Verifier))
		}
		if _, err := base64.RawURLEncoding.DecodeString(proof.Verifier); err != nil {
			t.Errorf("verifier is not URL-safe base64: %v", err)
		}
	})

	t.Run("fresh key per attempt", func(t *testing.T) {
		a, err := GenerateProofKey()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := GenerateProofKey()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.Verifier == b.Verifier {
			t.Error("two generated verifiers are identical")
		}
		if a.Challenge == b.Challenge {
			t.Error("two generated challenges are identical")
		}
	})

	t.Run("no padding in challenge", func(t *testing.T) {
		proof, err := GenerateProofKey()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, r := range proof.Challenge {
			if r == '=' {
				t.Error("challenge contains padding")
			}
		}
	})
}

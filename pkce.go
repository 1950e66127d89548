package dirigera

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// verifierLength is the number of URL-safe characters in a generated
// verifier. RFC 7636 allows anything between 43 and 128; the hub accepts the
// maximum, so use it.
const verifierLength = 128

// ProofKey is a PKCE code verifier together with its derived S256 challenge.
// A ProofKey is generated fresh for every pairing attempt and is never
// persisted or reused. Only the challenge is sent with the authorization
// request; the verifier is revealed to the hub at token redemption, which
// binds the redemption to the client that requested the code.
type ProofKey struct {
	Verifier  string
	Challenge string
}

// GenerateProofKey creates a new ProofKey from a cryptographically secure
// random source. It fails only if the random source does.
func GenerateProofKey() (*ProofKey, error) {
	raw := make([]byte, verifierLength*3/4)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate code verifier: %w", err)
	}

	verifier := base64.RawURLEncoding.EncodeToString(raw)
	return &ProofKey{
		Verifier:  verifier,
		Challenge: deriveChallenge(verifier),
	}, nil
}

// deriveChallenge computes the S256 code challenge for a verifier:
// base64url(sha256(verifier)) without padding.
func deriveChallenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

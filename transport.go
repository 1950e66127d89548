package dirigera

import (
	"crypto/tls"
	"net/http"
	"time"
)

// TrustPolicy controls how server certificates are validated when talking to
// the hub. The policy is passed explicitly into transport construction and is
// scoped to the client instance it builds; nothing global is ever modified.
type TrustPolicy int

const (
	// TrustSystemCAs validates server certificates against the system
	// certificate pool. The hub's self-signed certificate will not pass
	// this policy; it exists for callers that front the hub with their
	// own TLS terminator.
	TrustSystemCAs TrustPolicy = iota

	// TrustAnyCertificate accepts any server certificate while still
	// negotiating TLS for confidentiality and integrity. The hub presents
	// a self-signed certificate and is identified by its address on the
	// local network rather than by a CA chain, so this is the default
	// policy for hub connections.
	TrustAnyCertificate
)

// tlsConfig returns the TLS configuration for the policy. TLS 1.2 is the
// floor either way; the policy only affects chain and hostname verification.
func (p TrustPolicy) tlsConfig() *tls.Config {
	return &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: p == TrustAnyCertificate,
	}
}

// NewTransport builds an HTTP transport governed by the given trust policy.
// There are no error conditions at build time; connection failures surface
// when a request is made.
func NewTransport(policy TrustPolicy) *http.Transport {
	return &http.Transport{
		TLSClientConfig:     policy.tlsConfig(),
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
}

// newHTTPClient wraps NewTransport in a client with the default timeout.
func newHTTPClient(policy TrustPolicy) *http.Client {
	return &http.Client{
		Timeout:   DefaultTimeout,
		Transport: NewTransport(policy),
	}
}

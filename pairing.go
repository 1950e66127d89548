package dirigera

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// pairingAudience is the fixed client identifier the hub expects in
	// the authorization request.
	pairingAudience = "homesmart.local"

	// challengeMethod is the PKCE challenge derivation the hub supports.
	challengeMethod = "S256"

	// pairingGrantType is the grant used at token redemption.
	pairingGrantType = "authorization_code"
)

// PairingState is the observable state of a pairing attempt. States are
// reported through the Pairer's state callback so a CLI can tell the user
// when to press the button.
type PairingState int

const (
	// StateIdle: no request issued yet.
	StateIdle PairingState = iota

	// StateAwaitingConfirmation: the hub has issued an authorization code
	// and is waiting for the user to press the action button.
	StateAwaitingConfirmation

	// StateRedeeming: a token redemption attempt is in flight.
	StateRedeeming

	// StatePaired: the hub returned an access token.
	StatePaired

	// StateFailed: the attempt ended without a token. A fresh Pairer (and
	// with it a fresh proof key) is required to try again.
	StateFailed
)

// String returns a human-readable state name.
func (s PairingState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingConfirmation:
		return "awaiting-confirmation"
	case StateRedeeming:
		return "redeeming"
	case StatePaired:
		return "paired"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// PairingConfig bounds the confirmation window. The total wait is capped at
// (MaxRetries+1) redemption attempts spaced Interval apart, so a hub that is
// never confirmed fails deterministically instead of blocking forever.
type PairingConfig struct {
	// MaxRetries is how many times redemption is retried after the
	// initial attempt while the hub reports "button not pressed".
	MaxRetries int

	// Interval is the fixed delay between redemption attempts.
	Interval time.Duration

	// ClientName is reported to the hub in the token request and shows up
	// in the app's list of paired clients.
	ClientName string
}

// DefaultPairingConfig gives the user roughly a minute to press the button.
func DefaultPairingConfig() PairingConfig {
	return PairingConfig{
		MaxRetries: 30,
		Interval:   2 * time.Second,
		ClientName: "localhost",
	}
}

// errConfirmationPending marks a redemption attempt that failed only because
// the button has not been pressed yet. It never escapes the retry loop.
var errConfirmationPending = errors.New("dirigera: waiting for button press")

// Pairer drives the one-time pairing flow against a hub: it requests an
// authorization code bound to a fresh proof key, waits for the user to
// confirm on the device, and redeems the code for a long-lived access
// token. A Pairer is single use; after Pair returns it must be discarded.
type Pairer struct {
	ip         string
	port       int
	baseURL    string
	httpClient *http.Client
	config     PairingConfig
	onState    func(PairingState)
	logger     *slog.Logger
	state      PairingState
}

// PairerOption configures a Pairer.
type PairerOption func(*Pairer)

// WithPairingConfig overrides the retry policy and client name.
func WithPairingConfig(cfg PairingConfig) PairerOption {
	return func(p *Pairer) {
		p.config = cfg
	}
}

// WithPairingStateFunc registers a callback invoked on every state
// transition. The callback runs on the pairing goroutine; keep it cheap.
func WithPairingStateFunc(fn func(PairingState)) PairerOption {
	return func(p *Pairer) {
		p.onState = fn
	}
}

// WithPairingHTTPClient sets a custom HTTP client for the unauthenticated
// pairing calls.
func WithPairingHTTPClient(client *http.Client) PairerOption {
	return func(p *Pairer) {
		p.httpClient = client
	}
}

// WithPairingBaseURL overrides the URL derived from the hub address. Mainly
// useful for tests that point the pairer at a local stub server.
func WithPairingBaseURL(url string) PairerOption {
	return func(p *Pairer) {
		p.baseURL = url
	}
}

// WithPairingPort sets a non-default API port.
func WithPairingPort(port int) PairerOption {
	return func(p *Pairer) {
		p.port = port
	}
}

// WithPairingLogger sets a structured logger for the pairing flow.
func WithPairingLogger(logger *slog.Logger) PairerOption {
	return func(p *Pairer) {
		p.logger = logger
	}
}

// NewPairer creates a pairing flow controller for the hub at the given IP
// address. Pairing talks to the hub before any trust is established, so the
// default HTTP client uses the TrustAnyCertificate policy.
func NewPairer(ip string, opts ...PairerOption) *Pairer {
	p := &Pairer{
		ip:     ip,
		port:   DefaultPort,
		config: DefaultPairingConfig(),
		state:  StateIdle,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.httpClient == nil {
		p.httpClient = newHTTPClient(TrustAnyCertificate)
	}
	if p.baseURL == "" && p.ip != "" {
		p.baseURL = fmt.Sprintf("https://%s:%d/%s", p.ip, p.port, apiVersion)
	}
	if p.config.Interval <= 0 {
		p.config.Interval = DefaultPairingConfig().Interval
	}
	if p.config.MaxRetries <= 0 {
		p.config.MaxRetries = DefaultPairingConfig().MaxRetries
	}
	if p.config.ClientName == "" {
		p.config.ClientName = DefaultPairingConfig().ClientName
	}

	return p
}

// State returns the current pairing state.
func (p *Pairer) State() PairingState {
	return p.state
}

// Pair runs the full flow and returns the access token. The token is handed
// to the caller for persistence; the Pairer keeps nothing. Cancelling the
// context aborts the flow between redemption attempts.
//
// A timeout waiting for the button press returns ErrPairingTimeout; an
// explicit denial or expired code returns an error matching
// ErrPairingRejected. Either way the attempt is spent: retrying requires a
// new Pairer so a fresh proof key is generated.
func (p *Pairer) Pair(ctx context.Context) (string, error) {
	if p.baseURL == "" {
		return "", ErrEmptyIPAddress
	}
	if p.state != StateIdle {
		return "", fmt.Errorf("dirigera: pairer is single use, create a new one")
	}

	proof, err := GenerateProofKey()
	if err != nil {
		p.setState(StateFailed)
		return "", err
	}

	code, err := p.authorize(ctx, proof.Challenge)
	if err != nil {
		p.setState(StateFailed)
		return "", err
	}
	p.setState(StateAwaitingConfirmation)

	token, err := p.redeem(ctx, code, proof.Verifier)
	if err != nil {
		p.setState(StateFailed)
		return "", err
	}

	p.setState(StatePaired)
	return token, nil
}

// setState records a transition and notifies the callback. Re-entering the
// current state is not reported.
func (p *Pairer) setState(state PairingState) {
	if state == p.state {
		return
	}
	p.state = state
	if p.logger != nil {
		p.logger.LogAttrs(context.Background(), slog.LevelDebug, "pairing_state",
			slog.String("state", state.String()),
		)
	}
	if p.onState != nil {
		p.onState(state)
	}
}

// authorize submits the authorization-code request. Only the derived
// challenge is sent; the verifier stays local until redemption.
func (p *Pairer) authorize(ctx context.Context, challenge string) (string, error) {
	status, body, err := p.post(ctx, "/oauth/authorize", map[string]string{
		"audience":              pairingAudience,
		"response_type":         "code",
		"code_challenge":        challenge,
		"code_challenge_method": challengeMethod,
	})
	if err != nil {
		return "", err
	}
	if status >= 400 {
		return "", fmt.Errorf("%w: authorize returned status %d: %s", ErrPairingRejected, status, truncatePreview(body))
	}

	var resp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse authorize response: %w (body: %s)", err, truncatePreview(body))
	}
	if resp.Code == "" {
		return "", fmt.Errorf("%w: no authorization code in response: %s", ErrPairingRejected, truncatePreview(body))
	}

	return resp.Code, nil
}

// redeem polls the token endpoint until the hub confirms, the retry budget
// runs out, or the hub rejects the code. The hub answers 403 for every
// attempt made before the button is pressed; that is the expected pending
// signal, not an error.
func (p *Pairer) redeem(ctx context.Context, code, verifier string) (string, error) {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(
			backoff.NewConstantBackOff(p.config.Interval),
			uint64(p.config.MaxRetries),
		),
		ctx,
	)

	var token string
	attempt := func() error {
		p.setState(StateRedeeming)
		tok, err := p.requestToken(ctx, code, verifier)
		if err != nil {
			if errors.Is(err, errConfirmationPending) {
				p.setState(StateAwaitingConfirmation)
				return err
			}
			return backoff.Permanent(err)
		}
		token = tok
		return nil
	}

	if err := backoff.Retry(attempt, policy); err != nil {
		if errors.Is(err, errConfirmationPending) {
			return "", ErrPairingTimeout
		}
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return "", fmt.Errorf("dirigera: pairing aborted: %w", ctxErr)
		}
		return "", err
	}

	return token, nil
}

// requestToken performs a single redemption attempt.
func (p *Pairer) requestToken(ctx context.Context, code, verifier string) (string, error) {
	status, body, err := p.post(ctx, "/oauth/token", map[string]string{
		"code":          code,
		"name":          p.config.ClientName,
		"grant_type":    pairingGrantType,
		"code_verifier": verifier,
	})
	if err != nil {
		return "", err
	}

	switch {
	case status == http.StatusForbidden:
		return "", errConfirmationPending
	case status >= 400:
		return "", fmt.Errorf("%w: token endpoint returned status %d: %s", ErrPairingRejected, status, truncatePreview(body))
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w (body: %s)", err, truncatePreview(body))
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("%w: response contained no access token: %s", ErrPairingRejected, truncatePreview(body))
	}

	return resp.AccessToken, nil
}

// post sends an unauthenticated JSON POST to a pairing endpoint and returns
// the status code and raw body. Transport errors are returned as-is so the
// retry loop can treat them as terminal.
func (p *Pairer) post(ctx context.Context, path string, payload map[string]string) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("pairing request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, body, nil
}

// Package dirigera provides a Go client library for the IKEA Dirigera
// smart-home hub's local REST API.
//
// The hub serves HTTPS on port 8443 of its local IP address with a
// self-signed certificate, so the client identifies it by address rather
// than by a CA chain: transport construction takes an explicit TrustPolicy,
// and the default TrustAnyCertificate policy skips certificate validation
// for that client instance only while still encrypting all traffic.
//
// # Pairing
//
// A client authenticates with a long-lived bearer token obtained through a
// one-time pairing flow: the library requests an authorization code bound to
// a fresh PKCE proof key, the user presses the action button on the hub, and
// the code plus verifier are redeemed for the token.
//
//	pairer := dirigera.NewPairer("192.168.1.83",
//	    dirigera.WithPairingStateFunc(func(s dirigera.PairingState) {
//	        if s == dirigera.StateAwaitingConfirmation {
//	            fmt.Println("Press the action button on the hub")
//	        }
//	    }),
//	)
//	token, err := pairer.Pair(context.Background())
//
// The redemption loop polls on a fixed interval and gives up after a bounded
// number of attempts, so a never-confirmed pairing fails with
// ErrPairingTimeout instead of hanging. Cancel the context to abort early.
//
// # Basic usage
//
// Construct a client from an address and token, or from a saved config file:
//
//	client, err := dirigera.NewClient("192.168.1.83", token)
//
//	cfg, err := dirigera.LoadConfig("config.toml")
//	client, err := dirigera.NewClientFromConfig(cfg)
//
// List devices and control them:
//
//	devices, err := client.ListDevices(ctx)
//	for _, d := range devices {
//	    fmt.Printf("%s (%s)\n", d.Attributes.CustomName, d.DeviceType)
//	}
//
//	err = client.SetLightLevel(ctx, &device, 75)
//	err = client.TriggerScene(ctx, sceneID)
//
// Mutations are gated on the device's receivable capabilities and fail with
// ErrMissingCapability when the device cannot accept them.
//
// # Error handling
//
// Non-2xx responses surface with status code and raw body. Helpers classify
// the cases a caller usually branches on:
//
//	if dirigera.IsUnauthorized(err) {
//	    // token revoked, re-pair
//	} else if dirigera.IsPairingTimeout(err) {
//	    // button was never pressed, ask the user to try again
//	}
//
// The generate-token command under cmd/generate-token runs the pairing flow
// interactively and writes config.toml.
package dirigera

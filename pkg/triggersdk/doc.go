/*
Package triggersdk is a client for the refresh trigger remediation API.

# Overview

A Client holds the API configuration (endpoint URLs, application identity and
secret) and the current access token. Every authenticated operation checks the
token lazily and mints a new one when it is missing or close to expiry:

	client, err := triggersdk.New(ctx, provider)

	// Upload a CSV of accounts to start refresh triggers
	res, err := client.AddRefresh(ctx, &triggersdk.File{Name: "accounts.csv", Content: data}, "")

	// Stop them again for a specific market
	res, err = client.StopRefresh(ctx, file, "036")

	// Read the application properties document
	props, err := client.GetApplicationProperties(ctx)

# Token Signing

Token requests are signed with HMAC-SHA256 keyed by the application secret over
the base string "{appId}-2-{unixMillis}". The signature is sent base64url
encoded without padding in X-Auth-Signature alongside X-Auth-Timestamp,
X-Auth-AppID and X-Auth-Version.

# Configuration

Configuration is persisted through a ConfigProvider under ConfigStorageKey as
JSON. The provider is injected, so the client can sit on top of any key-value
store:

	cfg, err := client.UpdateConfig(ctx, triggersdk.ConfigUpdate{
		AppID:     triggersdk.String("my-app"),
		AppSecret: triggersdk.String(secret),
	})

Changing the application identity, secret or token URL discards the held
token.

# Demo Mode

With DemoMode enabled every operation returns a simulated result and no request
leaves the process. File validation still runs.

# Error Handling

Non-2xx responses are returned as *APIError, whose message reads
"<operation> failed: <status text>":

	res, err := client.AddRefresh(ctx, file, "")
	if apiErr, ok := triggersdk.AsAPIError(err); ok {
		log.Printf("upstream answered %d", apiErr.StatusCode)
	}

Missing or unusable files fail with ErrNoFile, ErrEmptyFile,
ErrInvalidFileType or ErrFileTooLarge before any network I/O. Nothing is
retried.

# Thread Safety

A Client is safe for concurrent use. Concurrent callers that find the token
stale share one token request.
*/
package triggersdk

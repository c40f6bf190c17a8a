// Package api implements the typed HTTP client for the language-learning
// backend, including the bearer-token transport that renews an expired
// access token and retries the failed request exactly once.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/sync/singleflight"
)

// CredentialStore holds the current token pair. Implementations must update
// both tokens atomically so a concurrent reader never observes a mixed pair.
type CredentialStore interface {
	// Tokens returns the stored pair. Both strings are empty when logged out.
	Tokens() (access, refresh string)

	// SetTokens replaces the stored pair.
	SetTokens(access, refresh string) error
}

// authTransport decorates a RoundTripper with bearer attachment and the
// renew-and-retry protocol. The retry decision is a local variable in
// RoundTrip, never a flag written onto the request, so a request object can
// be shared without carrying retry state.
type authTransport struct {
	base       http.RoundTripper
	creds      CredentialStore
	refreshURL string

	// renewGroup collapses concurrent renewals: however many requests fail
	// 401 at once, the refresh endpoint is called at most once per expiry.
	renewGroup singleflight.Group

	// onExpired is invoked when a renewal is rejected, meaning the session
	// cannot be recovered. May be nil.
	onExpired func()
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	access, refresh := t.creds.Tokens()

	resp, err := t.send(req, access)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	// No refresh token: nothing to renew, propagate the 401 as-is.
	if refresh == "" {
		return resp, nil
	}

	newAccess, renewErr := t.renewAccess(req, refresh)
	if renewErr != nil {
		// Renewal failed. The original 401 is the caller's error; the
		// renewal's own failure must not mask it.
		return resp, nil
	}

	// The original response is replaced by the retried one.
	drain(resp)

	return t.send(req, newAccess)
}

// send dispatches a fresh clone of req with the given access token attached.
// The clone gets its own body via GetBody so the original stays replayable.
func (t *authTransport) send(req *http.Request, access string) (*http.Response, error) {
	r := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("replay request body: %w", err)
		}
		r.Body = body
	}
	if access != "" {
		r.Header.Set("Authorization", "Bearer "+access)
	}
	return t.base.RoundTrip(r)
}

// renewAccess exchanges the refresh token for a new pair. Concurrent callers
// holding the same refresh token share a single network call.
func (t *authTransport) renewAccess(req *http.Request, refresh string) (string, error) {
	v, err, _ := t.renewGroup.Do(refresh, func() (any, error) {
		// A renewal may have completed while this request was failing: the
		// stored pair has rotated past the one we hold. Reuse it.
		if access, stored := t.creds.Tokens(); stored != refresh && access != "" {
			return access, nil
		}

		pair, err := t.refresh(req, refresh)
		if err != nil {
			if t.onExpired != nil {
				t.onExpired()
			}
			return "", err
		}
		if err := t.creds.SetTokens(pair.AccessToken, pair.RefreshToken); err != nil {
			return "", fmt.Errorf("store renewed tokens: %w", err)
		}
		return pair.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// refresh performs the renewal call against the fixed refresh endpoint,
// going through the base transport so it cannot recurse into RoundTrip.
func (t *authTransport) refresh(orig *http.Request, refreshToken string) (*TokenPair, error) {
	req, err := http.NewRequestWithContext(orig.Context(), http.MethodPost, t.refreshURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+refreshToken)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &AuthError{Detail: readDetail(resp.Body)}
	}

	var pair TokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return nil, fmt.Errorf("decode refresh response: %w", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return nil, fmt.Errorf("refresh response missing tokens")
	}
	return &pair, nil
}

// readDetail extracts the server's "detail" message from an error body.
func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 1<<16))
	if err != nil {
		return ""
	}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Detail
}

// drain discards and closes a response body so the connection can be reused.
func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
	_ = resp.Body.Close()
}

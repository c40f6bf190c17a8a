package auth

import (
	"context"
	"sync"

	"github.com/sahana/lingo/internal/api"
)

// Session is the authentication controller. It owns login, registration and
// logout, publishes the current identity to subscribers, and ends the
// session when the transport reports an unrecoverable renewal failure.
//
// Dependents read Current() or subscribe for changes instead of reaching
// into ambient state; navigation on session end is the subscriber's concern.
type Session struct {
	store  *FileStore
	client *api.Client

	mu          sync.RWMutex
	identity    *Identity
	subscribers []func(*Identity)
}

// NewSession builds a session controller and its API client against baseURL.
func NewSession(baseURL string, store *FileStore, opts ...api.Option) *Session {
	s := &Session{store: store}
	opts = append(opts, api.WithAuthExpiredHook(s.End))
	s.client = api.New(baseURL, store, opts...)
	return s
}

// Client returns the API client bound to this session's credentials.
func (s *Session) Client() *api.Client {
	return s.client
}

// Resume republishes the identity from a token pair left over from an
// earlier run. No-op when logged out or the stored token is unreadable.
func (s *Session) Resume() {
	access, _ := s.store.Tokens()
	if access == "" {
		return
	}
	identity, err := DecodeIdentity(access)
	if err != nil {
		// A token we cannot read is a token we cannot use.
		_ = s.store.Clear()
		return
	}
	s.publish(identity)
}

// Register creates an account. The user must still log in; no session state
// changes. Server rejections surface as api.ValidationError with the
// server's own message.
func (s *Session) Register(ctx context.Context, email, password string) error {
	return s.client.Register(ctx, email, password)
}

// Login authenticates and, on success, persists the token pair and
// publishes the new identity. On failure nothing is persisted.
func (s *Session) Login(ctx context.Context, email, password string) error {
	pair, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	identity, err := DecodeIdentity(pair.AccessToken)
	if err != nil {
		return err
	}
	// The subject claim is the account ID; the address used to log in is
	// the freshest email we have.
	identity.Email = email

	if err := s.store.SetTokens(pair.AccessToken, pair.RefreshToken); err != nil {
		return err
	}
	s.publish(identity)
	return nil
}

// Logout clears both credentials and the published identity. Purely local,
// always succeeds from the caller's perspective.
func (s *Session) Logout() {
	_ = s.store.Clear()
	s.publish(nil)
}

// End is Logout under another name, invoked by the transport when token
// renewal fails. Subscribers decide what to show the user.
func (s *Session) End() {
	s.Logout()
}

// Current returns the published identity, or nil when logged out.
func (s *Session) Current() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Subscribe registers fn to be called with the identity on every change.
// fn receives nil when the session ends.
func (s *Session) Subscribe(fn func(*Identity)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Session) publish(identity *Identity) {
	s.mu.Lock()
	s.identity = identity
	subs := make([]func(*Identity), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(identity)
	}
}

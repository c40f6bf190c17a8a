package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is used when no server address is configured.
const DefaultBaseURL = "http://localhost:8000"

// Client is the typed client for the language-learning backend. All calls go
// through the auth transport, so token attachment and renewal are invisible
// to callers.
type Client struct {
	baseURL   string
	http      *http.Client
	transport *authTransport
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPTransport replaces the underlying transport used for network I/O.
func WithHTTPTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.transport.base = rt }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithAuthExpiredHook registers a callback invoked when token renewal fails
// and the session cannot be recovered.
func WithAuthExpiredHook(fn func()) Option {
	return func(c *Client) { c.transport.onExpired = fn }
}

// New creates a Client for the given server address backed by creds.
func New(baseURL string, creds CredentialStore, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	t := &authTransport{
		base:       http.DefaultTransport,
		creds:      creds,
		refreshURL: baseURL + "/auth/refresh",
	}
	c := &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: t,
			Timeout:   30 * time.Second,
		},
		transport: t,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register creates a new account. The user must still log in afterwards.
func (c *Client) Register(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.post(ctx, "/auth/register", body, nil)
}

// Login exchanges credentials for a token pair. The pair is returned, not
// stored: persisting it is the session controller's decision.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	body := map[string]string{"email": email, "password": password}
	var pair TokenPair
	if err := c.post(ctx, "/auth/login", body, &pair); err != nil {
		return nil, err
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return nil, fmt.Errorf("login response missing tokens")
	}
	return &pair, nil
}

// Me returns the authenticated account details.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FetchTest retrieves the placement-test questions for a language. An empty
// question set is reported as a NotFoundError.
func (c *Client) FetchTest(ctx context.Context, language string) ([]Question, error) {
	q := url.Values{"language": {language}}
	questions, err := c.getQuestions(ctx, "/placement-test/test", q)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, &NotFoundError{Language: language}
	}
	return questions, nil
}

// GenerateTest asks the backend to generate and store num fresh questions
// for a language. Admin only.
func (c *Client) GenerateTest(ctx context.Context, language string, num int) ([]Question, error) {
	q := url.Values{
		"language":      {language},
		"num_questions": {strconv.Itoa(num)},
	}
	return c.getQuestions(ctx, "/placement-test/generate", q)
}

// SaveResult persists a finished placement result.
func (c *Client) SaveResult(ctx context.Context, result PlacementResult) error {
	return c.post(ctx, "/placement-test/result", result, nil)
}

// getQuestions fetches and validates a question array.
func (c *Client) getQuestions(ctx context.Context, path string, query url.Values) ([]Question, error) {
	raw, err := c.getRaw(ctx, path, query)
	if err != nil {
		return nil, err
	}
	if err := ValidateQuestions(raw); err != nil {
		return nil, err
	}
	var questions []Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return questions, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	raw, err := c.getRaw(ctx, path, query)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) getRaw(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	raw, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// do sends the request and maps failures onto the error taxonomy.
func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body struct {
			Detail string `json:"detail"`
		}
		_ = json.Unmarshal(data, &body)
		return nil, errorFromStatus(resp.StatusCode, body.Detail)
	}
	return data, nil
}

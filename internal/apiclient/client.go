// Package apiclient is a typed client for the /api/v1/users REST surface.
//
// Every request passes through the registered request interceptors before
// dispatch, and every failure is shown to the error observers before it is
// returned. Observers only look: the caller receives the exact error value.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"usermgmt/internal/domain"
	"usermgmt/internal/logger"

	"github.com/google/uuid"
)

const APIPrefix = "/api/v1"

type RequestInterceptor func(req *http.Request) error

type ErrorObserver func(err error)

type Client struct {
	baseURL      string
	http         *http.Client
	log          logger.Logger
	interceptors []RequestInterceptor
	observers    []ErrorObserver
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithLogger(log logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

func WithRequestInterceptor(ri RequestInterceptor) Option {
	return func(c *Client) { c.interceptors = append(c.interceptors, ri) }
}

func WithErrorObserver(eo ErrorObserver) Option {
	return func(c *Client) { c.observers = append(c.observers, eo) }
}

// WithRequestID tags each request with a fresh X-Request-ID.
func WithRequestID() Option {
	return WithRequestInterceptor(func(req *http.Request) error {
		if req.Header.Get("X-Request-ID") == "" {
			req.Header.Set("X-Request-ID", uuid.NewString())
		}
		return nil
	})
}

// New builds a client for the API rooted at rootURL, e.g.
// "http://localhost:8570". The /api/v1 prefix is appended.
func New(rootURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(rootURL, "/") + APIPrefix,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     logger.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.interceptors = append(c.interceptors, c.logRequest)
	c.observers = append([]ErrorObserver{c.logError}, c.observers...)

	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) ListUsers(ctx context.Context, params domain.PaginationParams) (*domain.UserListResponse, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(params.Page))
	q.Set("size", strconv.Itoa(params.Size))

	var res domain.UserListResponse
	if err := c.do(ctx, http.MethodGet, "/users", q, nil, &res); err != nil {
		return nil, err
	}

	return &res, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, userPath(id), nil, nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) CreateUser(ctx context.Context, data domain.UserCreate) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/users", nil, data, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, data domain.UserUpdate) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPut, userPath(id), nil, data, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, userPath(id), nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	err := c.roundTrip(ctx, method, path, query, payload, out)
	if err != nil {
		for _, observe := range c.observers {
			observe(err)
		}
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for _, intercept := range c.interceptors {
		if err := intercept(req); err != nil {
			return err
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return &HTTPError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   raw,
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}

	return nil
}

func (c *Client) logRequest(req *http.Request) error {
	c.log.Info("api: request", "method", req.Method, "path", req.URL.Path)
	return nil
}

func (c *Client) logError(err error) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		c.log.Error("api: error", "status", httpErr.Status, "body", string(httpErr.Body))
		return
	}
	c.log.Error("api: error", "error", err.Error())
}

func userPath(id string) string {
	return "/users/" + url.PathEscape(id)
}

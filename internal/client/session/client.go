package session

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

	"github.com/jhoicas/b2b-portal-api/internal/application/dto"
)

// APIError respuesta no-2xx de la API. Error() devuelve el detail del servidor tal cual.
type APIError struct {
	Status int
	Detail string
	Code   string
}

func (e *APIError) Error() string { return e.Detail }

// APIClient cliente HTTP de la API del portal. No reintenta.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption configura el APIClient.
type ClientOption func(*APIClient)

// WithHTTPClient reemplaza el http.Client (tests, proxies).
func WithHTTPClient(c *http.Client) ClientOption {
	return func(a *APIClient) { a.httpClient = c }
}

// NewAPIClient construye el cliente contra baseURL (sin "/" final).
func NewAPIClient(baseURL string, opts ...ClientOption) *APIClient {
	c := &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register POST /api/auth/register.
func (c *APIClient) Register(ctx context.Context, in dto.RegisterRequest) (*dto.TokenResponse, error) {
	var out dto.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login POST /api/auth/login.
func (c *APIClient) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	var out dto.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me GET /api/auth/me.
func (c *APIClient) Me(ctx context.Context, token string) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats GET /api/dashboard/stats.
func (c *APIClient) Stats(ctx context.Context, token string) (*dto.DashboardStatsDTO, error) {
	var out dto.DashboardStatsDTO
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Users GET /api/users.
func (c *APIClient) Users(ctx context.Context, token string, page dto.PageRequest) (*dto.UserListResponse, error) {
	q := url.Values{}
	if page.Limit > 0 {
		q.Set("limit", strconv.Itoa(page.Limit))
	}
	if page.Offset > 0 {
		q.Set("offset", strconv.Itoa(page.Offset))
	}
	path := "/api/users"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out dto.UserListResponse
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do envía la petición; token vacío significa petición sin autenticar.
func (c *APIClient) do(ctx context.Context, method, path, token string, body, target any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("serializar petición: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("crear petición: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseError(resp)
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decodificar respuesta: %w", err)
	}
	return nil
}

func parseError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{Status: resp.StatusCode}
	var body dto.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != "" {
		apiErr.Detail = body.Detail
		apiErr.Code = body.Code
		return apiErr
	}
	apiErr.Detail = http.StatusText(resp.StatusCode)
	if apiErr.Detail == "" {
		apiErr.Detail = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return apiErr
}

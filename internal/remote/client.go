// Package remote is the HTTP client for the booking API. Responses are
// decoded into tagged types at this boundary: a refusal becomes *APIError,
// anything else a transport error, so callers never branch on optional
// payload fields.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *zap.Logger
}

// NewClient builds a client with its own cookie jar, so each wizard session
// carries its own remote login cookie.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout, Jar: jar},
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        log,
	}, nil
}

// Me resolves the current identity. A nil user means no remote session exists.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/me", nil, &out); err != nil {
		return nil, fmt.Errorf("get identity: %w", err)
	}
	return out.User, nil
}

// AuthStart requests a one-time code for phone.
func (c *Client) AuthStart(ctx context.Context, phone string) error {
	body := map[string]string{"phone": phone}
	var out struct {
		OK      bool   `json:"ok"`
		Message string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/start", body, &out); err != nil {
		return fmt.Errorf("auth start: %w", err)
	}
	if !out.OK {
		return &APIError{Message: out.Message}
	}
	return nil
}

// AuthVerify checks the one-time code and optionally sets the name in the
// same call. On success the session cookie lands in the jar.
func (c *Client) AuthVerify(ctx context.Context, phone, code, name string) (*User, error) {
	body := map[string]string{"phone": phone, "code": code, "name": name}
	var out struct {
		OK      bool   `json:"ok"`
		Message string `json:"message"`
		User    *User  `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/verify", body, &out); err != nil {
		return nil, fmt.Errorf("auth verify: %w", err)
	}
	if !out.OK || out.User == nil {
		return nil, &APIError{Message: out.Message}
	}
	return out.User, nil
}

// UpdateProfile stores the user's name.
func (c *Client) UpdateProfile(ctx context.Context, name string) error {
	body := map[string]string{"name": name}
	var out struct {
		OK      bool   `json:"ok"`
		Message string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/profile", body, &out); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if !out.OK {
		return &APIError{Message: out.Message}
	}
	return nil
}

// Logout ends the remote session.
func (c *Client) Logout(ctx context.Context) error {
	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/logout", nil, &out); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if !out.Success {
		return &APIError{Message: out.Message}
	}
	return nil
}

// GetCatalog fetches the service list and the working-day set.
func (c *Client) GetCatalog(ctx context.Context) (*Catalog, error) {
	var out Catalog
	if err := c.doJSON(ctx, http.MethodGet, "/api/services", nil, &out); err != nil {
		return nil, fmt.Errorf("get catalog: %w", err)
	}
	return &out, nil
}

// DaySlots lists the available start times for a date and service duration.
func (c *Client) DaySlots(ctx context.Context, date string, durationMinutes int) ([]string, error) {
	q := url.Values{}
	q.Set("date", date)
	q.Set("duration", strconv.Itoa(durationMinutes))

	var out struct {
		Slots []string `json:"slots"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/day-slots?"+q.Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("get day slots: %w", err)
	}
	return out.Slots, nil
}

// Book creates the appointment.
func (c *Client) Book(ctx context.Context, req BookingRequest) error {
	var out struct {
		OK      bool   `json:"ok"`
		Message string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/book", req, &out); err != nil {
		return fmt.Errorf("book: %w", err)
	}
	if !out.OK {
		return &APIError{Message: out.Message}
	}
	return nil
}

// CancelList lists the caller's cancellable appointments.
func (c *Client) CancelList(ctx context.Context) ([]Appointment, error) {
	var out struct {
		Appointments []Appointment `json:"appointments"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/cancel/list", nil, &out); err != nil {
		return nil, fmt.Errorf("get cancel list: %w", err)
	}
	return out.Appointments, nil
}

// Cancel cancels an appointment by id.
func (c *Client) Cancel(ctx context.Context, id int64) error {
	body := map[string]int64{"id": id}
	var out struct {
		OK      bool   `json:"ok"`
		Message string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/cancel", body, &out); err != nil {
		return fmt.Errorf("cancel: %w", err)
	}
	if !out.OK {
		return &APIError{Message: out.Message}
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	endpoint := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("booking API call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	// Refusals arrive as JSON bodies carrying a message, usually on 4xx.
	// Keep the message; callers surface it verbatim.
	if resp.StatusCode >= 400 {
		var envelope struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(raw, &envelope)
		if envelope.Message == "" {
			envelope.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: envelope.Message}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

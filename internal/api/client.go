package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"

	"schedctl/internal/models"
	"schedctl/internal/shared"
)

const defaultBaseURL = "http://localhost:8000"

// Client provides typed methods for every backend endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a backend client. The http.Client should carry the
// session transport from [NewHTTPClient]; a nil client falls back to
// [http.DefaultClient] (unauthenticated).
func NewClient(baseURL string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(10), 5),
	}
}

// SetRateLimit replaces the outbound request throttle.
func (c *Client) SetRateLimit(rps float64) {
	if rps > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 5)
	}
}

// statusError distinguishes a rejected request (non-2xx) from transport
// failures so auth flows can map specific statuses to user-visible errors.
type statusError struct {
	Code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%v: status %d", shared.ErrAPIRequest, e.Code)
}

func (e *statusError) Unwrap() error { return shared.ErrAPIRequest }

// StatusCode extracts the HTTP status from an error returned by Client
// methods, or 0 if the request never reached the server.
func StatusCode(err error) int {
	var se *statusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// do performs a request and decodes the JSON response body into result
// (skipped when result is nil). Non-2xx responses return a *statusError.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{Code: resp.StatusCode}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrBadPayload, err)
		}
	}

	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, result)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, result any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(data), result)
}

// NeedsInit probes whether the backend still has no administrator.
func (c *Client) NeedsInit(ctx context.Context) (bool, error) {
	var needs bool
	if err := c.getJSON(ctx, "/auth/needs_init", &needs); err != nil {
		return false, err
	}
	return needs, nil
}

// Login exchanges credentials for a bearer token. A 401 maps to
// [shared.ErrInvalidCredentials].
func (c *Client) Login(ctx context.Context, username, password string) (*models.Token, error) {
	var token models.Token
	err := c.postJSON(ctx, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &token)
	if err != nil {
		if StatusCode(err) == http.StatusUnauthorized {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}
	return &token, nil
}

// Register creates the first administrator. The backend permits this
// exactly once; a 403 maps to [shared.ErrRegisterClosed].
func (c *Client) Register(ctx context.Context, username, password string) (*models.Token, error) {
	var token models.Token
	err := c.postJSON(ctx, "/auth/register", map[string]string{
		"username": username,
		"password": password,
	}, &token)
	if err != nil {
		if StatusCode(err) == http.StatusForbidden {
			return nil, shared.ErrRegisterClosed
		}
		return nil, err
	}
	return &token, nil
}

// Health fetches the backend liveness payload.
func (c *Client) Health(ctx context.Context) (*models.Health, error) {
	var health models.Health
	if err := c.getJSON(ctx, "/api/health", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Logs fetches feed entries with id strictly greater than afterID,
// ordered by id ascending. The server never re-sends an id at or below
// the cursor.
func (c *Client) Logs(ctx context.Context, afterID int64) ([]models.FeedEntry, error) {
	var entries []models.FeedEntry
	path := "/api/logs/sql?after_id=" + strconv.FormatInt(afterID, 10)
	if err := c.getJSON(ctx, path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SchedulerOverview fetches the complete current scheduler state.
func (c *Client) SchedulerOverview(ctx context.Context) (*models.SchedulerOverview, error) {
	var overview models.SchedulerOverview
	if err := c.getJSON(ctx, "/api/scheduler/overview", &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// Timeline fetches the trailing sync-health window, oldest day first.
func (c *Client) Timeline(ctx context.Context, days int) ([]models.TimelineDay, error) {
	if days <= 0 {
		days = 30
	}
	var timeline []models.TimelineDay
	path := "/api/scheduler/timeline?days=" + strconv.Itoa(days)
	if err := c.getJSON(ctx, path, &timeline); err != nil {
		return nil, err
	}
	return timeline, nil
}

// StartScheduler starts the background scheduler with the given run
// interval in minutes (default 60).
func (c *Client) StartScheduler(ctx context.Context, intervalMinutes int) (*models.SchedulerAck, error) {
	if intervalMinutes <= 0 {
		intervalMinutes = 60
	}
	form := url.Values{"interval_minutes": {strconv.Itoa(intervalMinutes)}}

	var ack models.SchedulerAck
	err := c.do(ctx, http.MethodPost, "/api/scheduler/start",
		"application/x-www-form-urlencoded", bytes.NewBufferString(form.Encode()), &ack)
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// StopScheduler stops the background scheduler.
func (c *Client) StopScheduler(ctx context.Context) (*models.SchedulerAck, error) {
	var ack models.SchedulerAck
	if err := c.do(ctx, http.MethodPost, "/api/scheduler/stop", "", nil, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// SyncNow triggers a manual sync. The sync runs in the background on the
// server; the ack only confirms it started.
func (c *Client) SyncNow(ctx context.Context) (*models.SyncAck, error) {
	var ack models.SyncAck
	if err := c.do(ctx, http.MethodPost, "/api/sync", "", nil, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// Account fetches the current settings field map.
func (c *Client) Account(ctx context.Context) (*models.Account, error) {
	var account models.Account
	if err := c.getJSON(ctx, "/api/account", &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// accountForm builds the multipart payload shared by UpdateAccount and
// Setup. credentials may be nil.
func accountForm(account models.Account, credentials []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"username":          account.Username,
		"password":          account.Password,
		"user_mail_account": account.UserMailAccount,
		"parsing_intervals": account.ParsingIntervals,
		"calendar_name":     account.CalendarName,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	if credentials != nil {
		part, err := w.CreateFormFile("file", "credentials.json")
		if err != nil {
			return nil, "", fmt.Errorf("failed to attach credentials file: %w", err)
		}
		if _, err := part.Write(credentials); err != nil {
			return nil, "", fmt.Errorf("failed to write credentials file: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// UpdateAccount writes the settings field map. credentials optionally
// replaces the stored service-account file.
func (c *Client) UpdateAccount(ctx context.Context, account models.Account, credentials []byte) error {
	if err := models.ValidateIntervals(account.ParsingIntervals); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	body, contentType, err := accountForm(account, credentials)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/account", contentType, body, nil)
}

// Setup performs the first-run configuration. The credentials file is
// required here, unlike UpdateAccount.
func (c *Client) Setup(ctx context.Context, account models.Account, credentials []byte) error {
	if err := models.ValidateIntervals(account.ParsingIntervals); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	if len(credentials) == 0 {
		return fmt.Errorf("%w: credentials file is required for setup", shared.ErrMissingArgument)
	}

	body, contentType, err := accountForm(account, credentials)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/setup", contentType, body, nil)
}

// BotSettings fetches the companion bot toggle state.
func (c *Client) BotSettings(ctx context.Context) (*models.BotSettings, error) {
	var settings models.BotSettings
	if err := c.getJSON(ctx, "/api/bot/settings", &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// SetBotSettings enables or disables the companion bot.
func (c *Client) SetBotSettings(ctx context.Context, enabled bool) error {
	return c.postJSON(ctx, "/api/bot/settings", models.BotSettings{BotEnabled: enabled}, nil)
}

// BotConfig fetches the companion bot credentials.
func (c *Client) BotConfig(ctx context.Context) (*models.BotConfig, error) {
	var config models.BotConfig
	if err := c.getJSON(ctx, "/api/bot/config", &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// BotConfigPatch carries a partial bot config update; nil fields are left
// untouched by the backend.
type BotConfigPatch struct {
	BotToken *string `json:"bot_token,omitempty"`
	AdminIDs *string `json:"admin_ids,omitempty"`
}

// PatchBotConfig applies a partial bot config update.
func (c *Client) PatchBotConfig(ctx context.Context, patch BotConfigPatch) error {
	data, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPatch, "/api/bot/config", "application/json", bytes.NewReader(data), nil)
}

package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kitestore-next/internal/config"
)

// ErrRequestFailed marks a Bot API call the server rejected.
var ErrRequestFailed = errors.New("bot api request failed")

// Client is a minimal Bot API client covering the methods the dispatcher
// needs. All calls go through JSON POST requests against the configured
// API base.
type Client struct {
	token string
	base  string
	http  *http.Client

	// pollClient allows long-poll requests to outlive the regular call
	// timeout.
	pollClient *http.Client
}

// NewClient creates a Bot API client from the bot config section.
func NewClient(cfg config.BotConfig) *Client {
	base := strings.TrimRight(cfg.APIBaseURL, "/")
	if base == "" {
		base = "https://api.telegram.org"
	}
	pollTimeout := time.Duration(cfg.PollTimeoutSeconds) * time.Second
	if pollTimeout <= 0 {
		pollTimeout = 30 * time.Second
	}
	return &Client{
		token:      cfg.Token,
		base:       base,
		http:       &http.Client{Timeout: 15 * time.Second},
		pollClient: &http.Client{Timeout: pollTimeout + 10*time.Second},
	}
}

// call POSTs one API method and returns the raw result payload.
func (c *Client) call(ctx context.Context, httpClient *http.Client, method string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", method, err)
	}
	endpoint := fmt.Sprintf("%s/bot%s/%s", c.base, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRequestFailed, method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", method, err)
	}
	var envelope apiResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", method, err)
	}
	if !envelope.OK {
		return nil, fmt.Errorf("%w: %s: %s (code %d)", ErrRequestFailed, method, envelope.Description, envelope.ErrorCode)
	}
	return envelope.Result, nil
}

// GetUpdates long-polls for the next batch of updates after offset.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]Update, error) {
	payload := map[string]any{
		"offset":          offset,
		"timeout":         timeoutSeconds,
		"allowed_updates": []string{"message", "callback_query"},
	}
	result, err := c.call(ctx, c.pollClient, "getUpdates", payload)
	if err != nil {
		return nil, err
	}
	var updates []Update
	if err := json.Unmarshal(result, &updates); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}
	return updates, nil
}

// SendMessage sends a chat message.
func (c *Client) SendMessage(ctx context.Context, msg OutgoingMessage) error {
	_, err := c.call(ctx, c.http, "sendMessage", msg)
	return err
}

// EditMessageText rewrites an already sent message in place.
func (c *Client) EditMessageText(ctx context.Context, msg EditMessage) error {
	_, err := c.call(ctx, c.http, "editMessageText", msg)
	return err
}

// AnswerCallbackQuery acknowledges a button press so the client stops its
// loading spinner.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID string) error {
	_, err := c.call(ctx, c.http, "answerCallbackQuery", map[string]any{"callback_query_id": callbackID})
	return err
}

// Fetch resolves a file id into its raw bytes. This is the photo bytes
// provider the dialog machines consume.
func (c *Client) Fetch(ctx context.Context, fileID string) ([]byte, error) {
	result, err := c.call(ctx, c.http, "getFile", map[string]any{"file_id": fileID})
	if err != nil {
		return nil, err
	}
	var file File
	if err := json.Unmarshal(result, &file); err != nil {
		return nil, fmt.Errorf("decode file handle: %w", err)
	}
	if file.FilePath == "" {
		return nil, fmt.Errorf("%w: getFile returned no path", ErrRequestFailed)
	}

	endpoint := fmt.Sprintf("%s/file/bot%s/%s", c.base, c.token, file.FilePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: download: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: download status %d", ErrRequestFailed, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

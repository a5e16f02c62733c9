// Package sendbird implements the remote chat platform client against
// SendBird's platform API v3. The client is a stateless proxy: one
// blocking round trip per call, master-token auth, no retries — a non-2xx
// response or transport failure surfaces immediately as a typed error.
package sendbird

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

	"github.com/rs/zerolog"

	"github.com/campuslink/campus-chat-api/internal/api/metrics"
	"github.com/campuslink/campus-chat-api/internal/core/domain"
	"github.com/campuslink/campus-chat-api/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for the platform client. BaseURL is
// derived from AppID when empty.
type Config struct {
	AppID    string
	APIToken string
	BaseURL  string
	Timeout  time.Duration
}

// Client talks to the SendBird platform API. It holds no state beyond
// configuration and the underlying HTTP client.
type Client struct {
	baseURL  string
	apiToken string
	http     *http.Client
	logger   zerolog.Logger
}

// New builds a Client. The zero BaseURL resolves to the per-application
// SendBird endpoint.
func New(cfg Config, logger zerolog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://api-%s.sendbird.com/v3", cfg.AppID)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiToken: cfg.APIToken,
		http:     &http.Client{Timeout: timeout},
		logger:   logger.With().Str("component", "sendbird").Logger(),
	}
}

var _ ports.ChatPlatform = (*Client)(nil)

type createUserRequest struct {
	UserID     string `json:"user_id"`
	Nickname   string `json:"nickname"`
	ProfileURL string `json:"profile_url,omitempty"`
}

func (c *Client) CreateUser(ctx context.Context, in ports.CreateRemoteUserInput) (json.RawMessage, error) {
	return c.do(ctx, "create_user", http.MethodPost, "/users", nil, createUserRequest{
		UserID:     in.UserID,
		Nickname:   in.Nickname,
		ProfileURL: in.ProfileURL,
	})
}

func (c *Client) UpdateUser(ctx context.Context, userID string, in ports.UpdateRemoteUserInput) (json.RawMessage, error) {
	// Partial update: only the provided fields go on the wire.
	body := map[string]string{}
	if in.Nickname != "" {
		body["nickname"] = in.Nickname
	}
	if in.ProfileURL != "" {
		body["profile_url"] = in.ProfileURL
	}
	return c.do(ctx, "update_user", http.MethodPut, "/users/"+url.PathEscape(userID), nil, body)
}

func (c *Client) IssueSessionToken(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.do(ctx, "issue_session_token", http.MethodPost, "/users/"+url.PathEscape(userID)+"/token", nil, map[string]any{})
}

type createChannelRequest struct {
	UserIDs     []string          `json:"user_ids"`
	IsDistinct  bool              `json:"is_distinct"`
	OperatorIDs []string          `json:"operator_ids,omitempty"`
	Name        string            `json:"name"`
	ChannelURL  string            `json:"channel_url"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

func (c *Client) CreateChannel(ctx context.Context, in ports.CreateRemoteChannelInput) (json.RawMessage, error) {
	return c.do(ctx, "create_channel", http.MethodPost, "/group_channels", nil, createChannelRequest{
		UserIDs:     in.UserIDs,
		IsDistinct:  in.IsDistinct,
		OperatorIDs: in.OperatorIDs,
		Name:        in.Name,
		ChannelURL:  in.ChannelURL,
		Metadata:    in.Metadata,
	})
}

type sendMessageRequest struct {
	MessageType string `json:"message_type"`
	UserID      string `json:"user_id"`
	Message     string `json:"message"`
}

func (c *Client) SendMessage(ctx context.Context, channelURL, senderID, message string) (json.RawMessage, error) {
	path := "/group_channels/" + url.PathEscape(channelURL) + "/messages"
	return c.do(ctx, "send_message", http.MethodPost, path, nil, sendMessageRequest{
		MessageType: "MESG",
		UserID:      senderID,
		Message:     message,
	})
}

func (c *Client) ListMessages(ctx context.Context, channelURL string, messageTS int64) (json.RawMessage, error) {
	query := url.Values{"include_metadata": {"true"}}
	if messageTS > 0 {
		query.Set("message_ts", strconv.FormatInt(messageTS, 10))
	}
	path := "/group_channels/" + url.PathEscape(channelURL) + "/messages"
	return c.do(ctx, "list_messages", http.MethodGet, path, query, nil)
}

func (c *Client) ListUserChannels(ctx context.Context, userID, channelTypeFilter string) (json.RawMessage, error) {
	query := url.Values{"include_metadata": {"true"}}
	if channelTypeFilter != "" {
		query.Set("metadata_key", domain.MetadataKeyChannelType)
		query.Set("metadata_values", channelTypeFilter)
	}
	path := "/users/" + url.PathEscape(userID) + "/my_group_channels"
	return c.do(ctx, "list_user_channels", http.MethodGet, path, query, nil)
}

// Ping checks platform reachability with the cheapest read the API
// offers. Used by the readiness probe only.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, "ping", http.MethodGet, "/users", url.Values{"limit": {"1"}}, nil)
	return err
}

// do performs one request/response round trip and returns the raw
// response body. All client methods funnel through here so auth,
// metrics, and error mapping live in one place.
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal request: %w", operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", operation, err)
	}
	req.Header.Set("Api-Token", c.apiToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.PlatformRequestDuration.WithLabelValues(operation, "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%s: %w: %s", operation, domain.ErrRemoteService, err.Error())
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn().Err(err).Str("operation", operation).Msg("close response body failed")
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.PlatformRequestDuration.WithLabelValues(operation, "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%s: read response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.PlatformRequestDuration.WithLabelValues(operation, "error").Observe(time.Since(start).Seconds())
		c.logger.Error().
			Str("operation", operation).
			Int("status", resp.StatusCode).
			Msg("platform request failed")
		return nil, &APIError{Operation: operation, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	metrics.PlatformRequestDuration.WithLabelValues(operation, "ok").Observe(time.Since(start).Seconds())
	return raw, nil
}

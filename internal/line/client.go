package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/nattapongw/calendar-api/pkg/logger"
)

const (
	defaultBaseURL = "https://api.line.me"

	// MaxTextLen is the LINE per-message text limit.
	MaxTextLen = 4000
)

// Client is a thin wrapper over the LINE Messaging API push endpoint.
// Delivery is fire-and-forget from the caller's perspective: an error is
// returned for the caller to count or log, never retried here.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	profiles   *cache.Cache
	logger     *logger.Logger
}

type Config struct {
	Token           string
	BaseURL         string
	Timeout         time.Duration
	ProfileCacheTTL time.Duration
	ProfileCleanup  time.Duration
}

type Profile struct {
	DisplayName string `json:"displayName"`
	UserID      string `json:"userId"`
}

type TextMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewTextMessage builds a text message, truncated to the platform limit.
func NewTextMessage(text string) TextMessage {
	runes := []rune(text)
	if len(runes) > MaxTextLen {
		runes = runes[:MaxTextLen]
	}
	return TextMessage{Type: "text", Text: string(runes)}
}

// FlexMessage wraps flex contents in a push-ready message envelope.
func FlexMessage(altText string, contents map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"type":     "flex",
		"altText":  altText,
		"contents": contents,
	}
}

func NewClient(cfg Config, logger *logger.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ttl := cfg.ProfileCacheTTL
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	cleanup := cfg.ProfileCleanup
	if cleanup == 0 {
		cleanup = time.Hour
	}

	return &Client{
		token:      cfg.Token,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		profiles:   cache.New(ttl, cleanup),
		logger:     logger,
	}
}

// Enabled reports whether a channel token is configured. Without a token the
// client silently drops messages, matching dev-mode behavior.
func (c *Client) Enabled() bool {
	return c.token != ""
}

// Push sends one or more messages to a single recipient.
func (c *Client) Push(ctx context.Context, to string, messages ...interface{}) error {
	if !c.Enabled() {
		return nil
	}

	body, err := json.Marshal(map[string]interface{}{
		"to":       to,
		"messages": messages,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/bot/message/push", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("push rejected: status %d: %s", resp.StatusCode, detail)
	}
	return nil
}

// PushText sends a single text message.
func (c *Client) PushText(ctx context.Context, to, text string) error {
	return c.Push(ctx, to, NewTextMessage(text))
}

// GetProfile fetches a user's display profile, with a TTL cache in front of
// the API to keep console role updates cheap.
func (c *Client) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	if cached, ok := c.profiles.Get(userID); ok {
		return cached.(*Profile), nil
	}

	if !c.Enabled() {
		return nil, fmt.Errorf("line client disabled: no channel token")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/bot/profile/"+userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile request rejected: status %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	c.profiles.SetDefault(userID, &profile)
	return &profile, nil
}

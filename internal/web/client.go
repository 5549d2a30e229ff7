// Package web is the REST collaborator boundary. The sync core calls
// it for exactly two things: obtaining the session snapshot plus
// transport URL at connect time, and submitting acknowledgment-free
// write actions that are not part of the real-time feed.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/launchsoft/slackmirror/internal/model"
	"go.uber.org/zap"
)

// Client talks to the workspace HTTP API.
type Client struct {
	base   string
	token  string
	http   *http.Client
	logger *zap.Logger
}

// New creates an API client for the given base URL and token.
func New(base, token string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &Client{
		base:   base,
		token:  token,
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// call POSTs a form-encoded API method and decodes the response into
// out. A response with ok=false is returned as a classified *APIError.
func (c *Client) call(ctx context.Context, method string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("token", c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+method,
		strings.NewReader(params.Encode()))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", method, err)
	}

	var status struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if !status.OK {
		return classify(status.Error)
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode %s payload: %w", method, err)
		}
	}
	return nil
}

// RTMStart performs the session handshake: it returns the bulk
// workspace snapshot and the real-time transport URL to connect to.
func (c *Client) RTMStart(ctx context.Context) (*model.Snapshot, error) {
	var snap model.Snapshot
	if err := c.call(ctx, "rtm.start", url.Values{"mpim_aware": {"1"}}, &snap); err != nil {
		return nil, fmt.Errorf("rtm.start: %w", err)
	}
	return &snap, nil
}

// AddReaction adds an emoji reaction to the message at channel/ts.
func (c *Client) AddReaction(ctx context.Context, name, channel, ts string) error {
	return c.call(ctx, "reactions.add", url.Values{
		"name": {name}, "channel": {channel}, "timestamp": {ts},
	}, nil)
}

// RemoveReaction removes an emoji reaction from the message at channel/ts.
func (c *Client) RemoveReaction(ctx context.Context, name, channel, ts string) error {
	return c.call(ctx, "reactions.remove", url.Values{
		"name": {name}, "channel": {channel}, "timestamp": {ts},
	}, nil)
}

// UpdateMessage edits the text of an existing message.
func (c *Client) UpdateMessage(ctx context.Context, channel, ts, text string) error {
	return c.call(ctx, "chat.update", url.Values{
		"channel": {channel}, "ts": {ts}, "text": {text},
	}, nil)
}

// DeleteMessage deletes the message at channel/ts.
func (c *Client) DeleteMessage(ctx context.Context, channel, ts string) error {
	return c.call(ctx, "chat.delete", url.Values{
		"channel": {channel}, "ts": {ts},
	}, nil)
}

// MarkChannel moves the channel's last-read marker.
func (c *Client) MarkChannel(ctx context.Context, channel, ts string) error {
	return c.call(ctx, "channels.mark", url.Values{
		"channel": {channel}, "ts": {ts},
	}, nil)
}

// SetPresence sets the authenticated user's presence ("auto" or "away").
func (c *Client) SetPresence(ctx context.Context, presence string) error {
	return c.call(ctx, "users.setPresence", url.Values{
		"presence": {presence},
	}, nil)
}

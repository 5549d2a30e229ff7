// Package rtm owns the real-time transport: the connection supervisor
// with its heartbeat loop, the inbound read loop feeding the event
// dispatcher, and the outbound message correlator.
package rtm

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/launchsoft/slackmirror/internal/bus"
	"github.com/launchsoft/slackmirror/internal/event"
	"github.com/launchsoft/slackmirror/internal/mirror"
	"github.com/launchsoft/slackmirror/internal/model"
	"github.com/launchsoft/slackmirror/internal/status"
	"go.uber.org/zap"
)

// Handshaker performs the session handshake that yields the bulk
// snapshot and the transport URL.
type Handshaker interface {
	RTMStart(ctx context.Context) (*model.Snapshot, error)
}

// Config holds the supervisor policy. A zero PingInterval disables the
// heartbeat loop entirely; a zero PongTimeout sends probes but never
// fails the liveness check.
type Config struct {
	PingInterval time.Duration
	PongTimeout  time.Duration
	Reconnect    bool
}

// Client supervises one real-time connection and the mirror behind it.
type Client struct {
	cfg     Config
	api     Handshaker
	mirror  *mirror.Mirror
	machine *status.Machine
	bus     *bus.Bus
	logger  *zap.Logger

	dispatcher *mirror.Dispatcher
	hb         heartbeat

	mu     sync.Mutex
	conn   *websocket.Conn
	cancel context.CancelFunc
	connID string

	writeMu sync.Mutex

	idMu   sync.Mutex
	lastID int64
}

// New creates a supervisor. The dispatcher table is fixed here; hello
// and pong frames route back into the supervisor, everything else into
// the mirror.
func New(cfg Config, api Handshaker, m *mirror.Mirror, machine *status.Machine, b *bus.Bus, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		cfg:     cfg,
		api:     api,
		mirror:  m,
		machine: machine,
		bus:     b,
		logger:  logger,
	}
	c.dispatcher = mirror.NewDispatcher(m, c.handleHello, c.handlePong)
	return c
}

// Connect performs the handshake, loads the snapshot into the mirror,
// dials the transport and starts the read and heartbeat loops. A
// handshake or dial failure is reported once and not retried.
func (c *Client) Connect(ctx context.Context) error {
	if err := c.machine.Transition(status.Connecting); err != nil {
		return err
	}

	snap, err := c.api.RTMStart(ctx)
	if err != nil {
		c.connectFailed(err)
		return fmt.Errorf("session handshake: %w", err)
	}
	c.mirror.LoadSnapshot(snap)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, snap.URL, nil)
	if err != nil {
		c.connectFailed(err)
		return fmt.Errorf("dial %s: %w", snap.URL, err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	connID := uuid.NewString()

	c.mu.Lock()
	c.conn = conn
	c.cancel = cancel
	c.connID = connID
	c.mu.Unlock()
	c.hb.reset()

	_ = c.machine.Transition(status.Connected)
	c.publish("session.connected", nil)
	c.logger.Info("connected", zap.String("conn_id", connID))

	go c.readLoop(conn)
	if c.cfg.PingInterval > 0 {
		go c.heartbeatLoop(runCtx)
	}
	return nil
}

// Close tears the transport down unconditionally. The read loop's exit
// drives the disconnect path, including any reconnect policy.
func (c *Client) Close() {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}
}

// Connected reports whether the supervisor holds a live transport.
func (c *Client) Connected() bool {
	return c.machine.Current() == status.Connected
}

func (c *Client) connectFailed(err error) {
	_ = c.machine.Transition(status.Disconnected)
	c.logger.Error("connect failed", zap.Error(err))
	c.publish("session.connect_failed", err)
}

// readLoop is the single delivery goroutine: every inbound frame is
// decoded and dispatched from here, so no two mutators ever run
// concurrently against the mirror. Malformed frames are dropped without
// touching connection state.
func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.handleDisconnect(conn)
			return
		}
		env, err := event.Decode(data)
		if err != nil {
			c.logger.Debug("dropping malformed frame", zap.Error(err))
			continue
		}
		c.dispatcher.Dispatch(env)
	}
}

// handleDisconnect runs once per connection generation. It clears the
// authenticated session from the mirror, stops the heartbeat loop and,
// if the reconnect policy is on, re-invokes Connect with the same
// configuration. Entity caches persist; they are refreshed by the next
// snapshot, not invalidated.
func (c *Client) handleDisconnect(conn *websocket.Conn) {
	c.mu.Lock()
	if c.conn != conn {
		c.mu.Unlock()
		return
	}
	c.conn = nil
	cancel := c.cancel
	c.cancel = nil
	connID := c.connID
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	_ = conn.Close()

	c.mirror.ClearSelf()
	_ = c.machine.Transition(status.Disconnected)
	c.publish("session.disconnected", nil)
	c.logger.Warn("disconnected", zap.String("conn_id", connID))

	if c.cfg.Reconnect {
		go func() {
			if err := c.Connect(context.Background()); err != nil {
				c.logger.Error("reconnect failed", zap.Error(err))
			}
		}()
	}
}

// heartbeatLoop probes the transport on a fixed interval. Liveness is
// evaluated before each probe; a failed check forces a close, which
// then follows the normal disconnect path.
func (c *Client) heartbeatLoop(ctx context.Context) {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !c.Connected() || !c.hb.alive(c.cfg.PongTimeout) {
				c.logger.Warn("liveness check failed, closing transport")
				c.Close()
				return
			}
			c.sendPing()
		}
	}
}

type pingFrame struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

func (c *Client) sendPing() {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return
	}

	id := c.nextCorrelationID()
	c.hb.recordProbe(id, time.Now())
	if err := c.writeJSON(conn, pingFrame{ID: id, Type: "ping"}); err != nil {
		c.logger.Debug("ping write failed", zap.Error(err))
	}
}

func (c *Client) handlePong(env *event.Envelope) {
	if env.ReplyTo == nil {
		return
	}
	c.hb.recordReply(*env.ReplyTo, time.Now())
}

func (c *Client) handleHello(env *event.Envelope) {
	c.publish("session.hello", nil)
}

type messageFrame struct {
	ID      int64  `json:"id"`
	Type    string `json:"type"`
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

// SendMessage submits a message over the real-time transport. The send
// is fire-and-forget: a provisional entry keyed by the correlation id
// is tracked in the mirror and reconciled when the server acknowledges
// with the same id. Submitting while disconnected is a silent no-op.
func (c *Client) SendMessage(channelID, text string) {
	if !c.Connected() {
		return
	}
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return
	}

	id := c.nextCorrelationID()
	ts := strconv.FormatInt(id, 10)
	escaped := escapeText(text)

	msg := &model.Message{
		Ts:      ts,
		Type:    "message",
		Channel: channelID,
		Text:    escaped,
	}
	if self := c.mirror.Self(); self != nil {
		msg.User = self.ID
	}
	c.mirror.TrackSent(ts, msg)

	frame := messageFrame{ID: id, Type: "message", Channel: channelID, Text: escaped}
	if err := c.writeJSON(conn, frame); err != nil {
		c.logger.Debug("message write failed", zap.Error(err), zap.Int64("id", id))
	}
}

func (c *Client) writeJSON(conn *websocket.Conn, v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return conn.WriteJSON(v)
}

// nextCorrelationID derives a monotonically distinct numeric id from
// wall-clock milliseconds. Calls within the same millisecond still get
// distinct ids.
func (c *Client) nextCorrelationID() int64 {
	c.idMu.Lock()
	defer c.idMu.Unlock()
	id := time.Now().UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}

func (c *Client) publish(kind string, payload any) {
	if c.bus == nil {
		return
	}
	c.bus.Publish(bus.Event{Kind: kind, Timestamp: time.Now(), Payload: payload})
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeText applies the wire format's control-character escaping to
// outbound message text.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}

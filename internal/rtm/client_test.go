package rtm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/launchsoft/slackmirror/internal/bus"
	"github.com/launchsoft/slackmirror/internal/mirror"
	"github.com/launchsoft/slackmirror/internal/model"
	"github.com/launchsoft/slackmirror/internal/status"
)

func TestNextCorrelationIDMonotonic(t *testing.T) {
	c := &Client{}
	prev := c.nextCorrelationID()
	for i := 0; i < 1000; i++ {
		id := c.nextCorrelationID()
		if id <= prev {
			t.Fatalf("id %d not greater than previous %d", id, prev)
		}
		prev = id
	}
}

func TestEscapeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a < b", "a &lt; b"},
		{"a > b", "a &gt; b"},
		{"you & me", "you &amp; me"},
		{"<&>", "&lt;&amp;&gt;"},
	}
	for _, tt := range tests {
		if got := escapeText(tt.in); got != tt.want {
			t.Errorf("escapeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// fakeAPI hands out a canned snapshot pointing at a test transport.
type fakeAPI struct {
	snap *model.Snapshot
	err  error
}

func (f *fakeAPI) RTMStart(ctx context.Context) (*model.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

// testTransport runs a websocket endpoint whose accepted connections
// land on the returned channel.
func testTransport(t *testing.T) (*httptest.Server, <-chan *websocket.Conn) {
	t.Helper()
	conns := make(chan *websocket.Conn, 4)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- conn
	}))
	t.Cleanup(srv.Close)
	return srv, conns
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func newTestClient(t *testing.T, cfg Config, api Handshaker) (*Client, *mirror.Mirror, *status.Machine, <-chan bus.Event) {
	t.Helper()
	b := bus.New()
	events, unsub := b.Subscribe("session.", 64)
	t.Cleanup(unsub)
	m := mirror.New(b, nil)
	machine := status.NewMachine(b)
	return New(cfg, api, m, machine, b, nil), m, machine, events
}

func waitForSession(t *testing.T, events <-chan bus.Event, kind string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-events:
			if evt.Kind == kind {
				return
			}
		case <-deadline:
			t.Fatalf("timeout waiting for %q", kind)
		}
	}
}

func TestConnectLoadsSnapshotAndDelivers(t *testing.T) {
	srv, conns := testTransport(t)
	api := &fakeAPI{snap: &model.Snapshot{
		OK:       true,
		URL:      wsURL(srv),
		Self:     &model.User{ID: "U0"},
		Channels: []*model.Channel{{ID: "C1", Name: "general"}},
	}}
	c, m, machine, events := newTestClient(t, Config{}, api)
	defer c.Close()

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	waitForSession(t, events, "session.connected")
	if machine.Current() != status.Connected {
		t.Errorf("state = %s, want CONNECTED", machine.Current())
	}
	if m.Channel("C1") == nil {
		t.Error("snapshot not loaded into mirror")
	}

	server := <-conns
	defer server.Close()
	if err := server.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"message","channel":"C1","message":{"ts":"1.0","text":"hi"}}`)); err != nil {
		t.Fatalf("server write: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for m.Message("C1", "1.0") == nil {
		select {
		case <-deadline:
			t.Fatal("inbound frame never reached the mirror")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestConnectHandshakeFailure(t *testing.T) {
	api := &fakeAPI{err: context.DeadlineExceeded}
	c, _, machine, events := newTestClient(t, Config{}, api)

	if err := c.Connect(context.Background()); err == nil {
		t.Fatal("Connect() should fail when the handshake fails")
	}
	waitForSession(t, events, "session.connect_failed")
	if machine.Current() != status.Disconnected {
		t.Errorf("state = %s, want DISCONNECTED", machine.Current())
	}
}

func TestDisconnectClearsSelf(t *testing.T) {
	srv, conns := testTransport(t)
	api := &fakeAPI{snap: &model.Snapshot{
		OK:   true,
		URL:  wsURL(srv),
		Self: &model.User{ID: "U0"},
	}}
	c, m, machine, events := newTestClient(t, Config{}, api)

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	waitForSession(t, events, "session.connected")

	server := <-conns
	server.Close()

	waitForSession(t, events, "session.disconnected")
	if machine.Current() != status.Disconnected {
		t.Errorf("state = %s, want DISCONNECTED", machine.Current())
	}
	deadline := time.After(2 * time.Second)
	for m.Self() != nil {
		select {
		case <-deadline:
			t.Fatal("self not cleared after disconnect")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestSendMessageTracksAndReconciles(t *testing.T) {
	srv, conns := testTransport(t)
	api := &fakeAPI{snap: &model.Snapshot{
		OK:       true,
		URL:      wsURL(srv),
		Self:     &model.User{ID: "U0"},
		Channels: []*model.Channel{{ID: "C1"}},
	}}
	c, m, _, events := newTestClient(t, Config{}, api)
	defer c.Close()

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	waitForSession(t, events, "session.connected")
	server := <-conns
	defer server.Close()

	c.SendMessage("C1", "deploy < now >")

	_, data, err := server.ReadMessage()
	if err != nil {
		t.Fatalf("server read: %v", err)
	}
	var frame struct {
		ID      int64  `json:"id"`
		Type    string `json:"type"`
		Channel string `json:"channel"`
		Text    string `json:"text"`
	}
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("decode outbound frame: %v", err)
	}
	if frame.Type != "message" || frame.Channel != "C1" {
		t.Errorf("frame = %+v", frame)
	}
	if frame.Text != "deploy &lt; now &gt;" {
		t.Errorf("text = %q, want escaped", frame.Text)
	}

	// The provisional entry is filed under the correlation id.
	pendingID := strconv.FormatInt(frame.ID, 10)
	if m.PendingSent(pendingID) == nil {
		t.Fatal("provisional entry not tracked")
	}

	ack := map[string]any{"ok": true, "reply_to": frame.ID, "ts": "42.1", "text": frame.Text}
	if err := server.WriteJSON(ack); err != nil {
		t.Fatalf("server ack: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for m.Message("C1", "42.1") == nil {
		select {
		case <-deadline:
			t.Fatal("ack never reconciled")
		case <-time.After(10 * time.Millisecond):
		}
	}
	if m.PendingSent(pendingID) != nil {
		t.Error("pending entry should be cleared after the ack")
	}
}

func TestSendMessageWhileDisconnectedIsNoop(t *testing.T) {
	c, m, _, _ := newTestClient(t, Config{}, &fakeAPI{})

	c.SendMessage("C1", "into the void")

	if m.Message("C1", "") != nil {
		t.Error("disconnected send must not touch the mirror")
	}
}

func TestHeartbeatProbesTransport(t *testing.T) {
	srv, conns := testTransport(t)
	api := &fakeAPI{snap: &model.Snapshot{OK: true, URL: wsURL(srv), Self: &model.User{ID: "U0"}}}
	c, _, _, events := newTestClient(t, Config{PingInterval: 20 * time.Millisecond}, api)
	defer c.Close()

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	waitForSession(t, events, "session.connected")
	server := <-conns
	defer server.Close()

	_, data, err := server.ReadMessage()
	if err != nil {
		t.Fatalf("server read: %v", err)
	}
	var frame struct {
		ID   int64  `json:"id"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("decode probe: %v", err)
	}
	if frame.Type != "ping" || frame.ID == 0 {
		t.Errorf("probe frame = %+v, want ping with id", frame)
	}
}

func TestReconnectAfterDrop(t *testing.T) {
	srv, conns := testTransport(t)
	api := &fakeAPI{snap: &model.Snapshot{OK: true, URL: wsURL(srv), Self: &model.User{ID: "U0"}}}
	c, _, machine, events := newTestClient(t, Config{Reconnect: true}, api)
	defer c.Close()

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	waitForSession(t, events, "session.connected")

	first := <-conns
	first.Close()
	waitForSession(t, events, "session.disconnected")

	// The supervisor dials again on its own.
	waitForSession(t, events, "session.connected")
	if machine.Current() != status.Connected {
		t.Errorf("state = %s, want CONNECTED after reconnect", machine.Current())
	}
	second := <-conns
	second.Close()
}

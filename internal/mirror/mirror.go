// Package mirror maintains the canonical in-memory copy of workspace
// entities, mutated one real-time event at a time. All mutation goes
// through entity-specific rules keyed by event kind; after each applied
// change the post-mutation entity is published on the bus. Events whose
// payloads lack the fields needed to locate their target are dropped
// silently, never surfaced as errors.
package mirror

import (
	"sync"
	"time"

	"github.com/launchsoft/slackmirror/internal/bus"
	"github.com/launchsoft/slackmirror/internal/model"
	"go.uber.org/zap"
)

const defaultTypingTTL = 5 * time.Second

// Mirror is the authoritative local copy of workspace state.
type Mirror struct {
	mu sync.Mutex

	team *model.Team
	self *model.User

	channels map[string]*model.Channel
	users    map[string]*model.User
	groups   map[string]*model.UserGroup
	bots     map[string]*model.Bot
	files    map[string]*model.File

	// Provisional outbound messages keyed by the string form of their
	// correlation id, awaiting the server acknowledgment.
	sent map[string]*model.Message

	typingTTL    time.Duration
	typingTimers map[string]map[string]*time.Timer

	bus    *bus.Bus
	logger *zap.Logger
}

// New creates an empty mirror. The bus receives a notification after
// every applied mutation; logger may be nil.
func New(b *bus.Bus, logger *zap.Logger) *Mirror {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mirror{
		channels:     make(map[string]*model.Channel),
		users:        make(map[string]*model.User),
		groups:       make(map[string]*model.UserGroup),
		bots:         make(map[string]*model.Bot),
		files:        make(map[string]*model.File),
		sent:         make(map[string]*model.Message),
		typingTTL:    defaultTypingTTL,
		typingTimers: make(map[string]map[string]*time.Timer),
		bus:          b,
		logger:       logger,
	}
}

// SetTypingTTL overrides the typing-indicator expiry window.
func (m *Mirror) SetTypingTTL(ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.typingTTL = ttl
}

// LoadSnapshot populates the mirror in bulk from the session handshake
// payload. Caches survive reconnects: entities already present are
// refreshed, not invalidated.
func (m *Mirror) LoadSnapshot(snap *model.Snapshot) {
	if snap == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if snap.Team != nil {
		m.team = snap.Team
	}
	if snap.Self != nil {
		m.self = snap.Self
		m.self.DoNotDisturb = snap.DND
	}
	for _, u := range snap.Users {
		if u != nil && u.ID != "" {
			m.users[u.ID] = u
		}
	}
	for _, list := range [][]*model.Channel{snap.Channels, snap.Groups, snap.MPIMs, snap.IMs} {
		for _, ch := range list {
			if ch != nil && ch.ID != "" {
				m.putChannel(ch)
			}
		}
	}
	for _, b := range snap.Bots {
		if b != nil && b.ID != "" {
			m.bots[b.ID] = b
		}
	}
	for _, g := range snap.Subteams.All {
		if g != nil && g.ID != "" {
			m.groups[g.ID] = g
		}
	}
	if m.self != nil && len(snap.Subteams.Self) > 0 {
		if m.self.Subteams == nil {
			m.self.Subteams = make(map[string]string)
		}
		for _, id := range snap.Subteams.Self {
			m.self.Subteams[id] = id
		}
	}
}

// ClearSelf drops the authenticated-session entity. Called on
// disconnect; every other cache persists until the next snapshot.
func (m *Mirror) ClearSelf() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.self = nil
}

// putChannel stores a channel, preserving nothing from a previous entry
// and initializing its runtime caches. Callers hold m.mu.
func (m *Mirror) putChannel(ch *model.Channel) {
	if ch.Messages == nil {
		ch.Messages = make(map[string]*model.Message)
	}
	m.channels[ch.ID] = ch
}

// publish emits a fanout notification. Callers invoke it only after the
// mutation has been applied, so observers never see pre-mutation state.
func (m *Mirror) publish(kind string, payload any) {
	if m.bus == nil {
		return
	}
	m.bus.Publish(bus.Event{Kind: kind, Timestamp: time.Now(), Payload: payload})
}

// Team returns the workspace singleton, or nil before the handshake.
func (m *Mirror) Team() *model.Team {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.team
}

// Self returns the authenticated user, or nil when disconnected.
func (m *Mirror) Self() *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.self
}

// Channel returns the channel with the given id, or nil.
func (m *Mirror) Channel(id string) *model.Channel {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.channels[id]
}

// User returns the user with the given id, or nil.
func (m *Mirror) User(id string) *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id]
}

// File returns the file with the given id, or nil.
func (m *Mirror) File(id string) *model.File {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.files[id]
}

// Bot returns the bot with the given id, or nil.
func (m *Mirror) Bot(id string) *model.Bot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bots[id]
}

// Subteam returns the user group with the given id, or nil.
func (m *Mirror) Subteam(id string) *model.UserGroup {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.groups[id]
}

// Message returns the message stored at channel/ts, or nil.
func (m *Mirror) Message(channelID, ts string) *model.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := m.channels[channelID]
	if ch == nil {
		return nil
	}
	return ch.Messages[ts]
}

// PendingSent returns the provisional outbound message tracked under
// the given correlation id, or nil.
func (m *Mirror) PendingSent(id string) *model.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[id]
}

// UsersTyping returns a copy of the typing set for a channel.
func (m *Mirror) UsersTyping(channelID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := m.channels[channelID]
	if ch == nil {
		return nil
	}
	out := make([]string, len(ch.UsersTyping))
	copy(out, ch.UsersTyping)
	return out
}

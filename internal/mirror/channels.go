package mirror

import (
	"slices"

	"github.com/launchsoft/slackmirror/internal/event"
	"github.com/launchsoft/slackmirror/internal/model"
)

// ChannelMark pairs a channel with a last-read timestamp for fanout.
type ChannelMark struct {
	Channel *model.Channel
	Ts      string
}

func (m *Mirror) channelMarked(env *event.Envelope) {
	id := env.ChannelID()
	if id == "" || env.Ts == "" {
		return
	}

	m.mu.Lock()
	ch := m.channels[id]
	if ch == nil {
		m.mu.Unlock()
		return
	}
	ch.LastRead = env.Ts
	m.mu.Unlock()

	m.publish("channel.marked", ChannelMark{Channel: ch, Ts: env.Ts})
}

func (m *Mirror) channelCreated(env *event.Envelope) {
	if env.Channel == nil || env.Channel.ID == "" {
		return
	}
	ch := &env.Channel.Channel

	m.mu.Lock()
	m.putChannel(ch)
	m.mu.Unlock()

	m.publish("channel.created", ch)
}

func (m *Mirror) channelJoined(env *event.Envelope) {
	if env.Channel == nil || env.Channel.ID == "" {
		return
	}
	ch := &env.Channel.Channel

	m.mu.Lock()
	m.putChannel(ch)
	m.mu.Unlock()

	m.publish("channel.joined", ch)
}

// channelLeft additionally removes the authenticated user from the
// channel's membership list; the channel itself stays cached.
func (m *Mirror) channelLeft(env *event.Envelope) {
	id := env.ChannelID()
	if id == "" {
		return
	}

	m.mu.Lock()
	ch := m.channels[id]
	if ch != nil && m.self != nil {
		if i := slices.Index(ch.Members, m.self.ID); i >= 0 {
			ch.Members = slices.Delete(ch.Members, i, i+1)
		}
	}
	m.mu.Unlock()
	if ch == nil {
		return
	}

	m.publish("channel.left", ch)
}

func (m *Mirror) channelDeleted(env *event.Envelope) {
	id := env.ChannelID()
	if id == "" {
		return
	}

	m.mu.Lock()
	ch := m.channels[id]
	delete(m.channels, id)
	delete(m.typingTimers, id)
	m.mu.Unlock()
	if ch == nil {
		return
	}

	m.publish("channel.deleted", ch)
}

func (m *Mirror) channelRenamed(env *event.Envelope) {
	if env.Channel == nil || env.Channel.ID == "" {
		return
	}

	m.mu.Lock()
	ch := m.channels[env.Channel.ID]
	if ch == nil {
		m.mu.Unlock()
		return
	}
	ch.Name = env.Channel.Name
	m.mu.Unlock()

	m.publish("channel.renamed", ch)
}

func (m *Mirror) channelArchived(archived bool) func(*event.Envelope) {
	return func(env *event.Envelope) {
		id := env.ChannelID()
		if id == "" {
			return
		}

		m.mu.Lock()
		ch := m.channels[id]
		if ch == nil {
			m.mu.Unlock()
			return
		}
		ch.IsArchived = archived
		m.mu.Unlock()

		if archived {
			m.publish("channel.archived", ch)
		} else {
			m.publish("channel.unarchived", ch)
		}
	}
}

// channelOpen flips the open flag for IM and group open/close events.
func (m *Mirror) channelOpen(open bool) func(*event.Envelope) {
	return func(env *event.Envelope) {
		id := env.ChannelID()
		if id == "" {
			return
		}

		m.mu.Lock()
		ch := m.channels[id]
		if ch == nil {
			m.mu.Unlock()
			return
		}
		ch.IsOpen = open
		m.mu.Unlock()

		if open {
			m.publish("channel.opened", ch)
		} else {
			m.publish("channel.closed", ch)
		}
	}
}

// channelHistoryChanged only notifies; the history cache is reconciled
// by the next snapshot, not by replay.
func (m *Mirror) channelHistoryChanged(env *event.Envelope) {
	if env.Channel == nil {
		return
	}
	m.publish("channel.history_changed", &env.Channel.Channel)
}

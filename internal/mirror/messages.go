package mirror

import (
	"strconv"

	"github.com/launchsoft/slackmirror/internal/event"
	"github.com/launchsoft/slackmirror/internal/model"
)

// messageReceived inserts an inbound message at its channel's ts slot.
func (m *Mirror) messageReceived(env *event.Envelope) {
	id := env.ChannelID()
	msg := env.Message
	if id == "" || msg == nil || msg.Ts == "" {
		return
	}

	m.mu.Lock()
	ch := m.channels[id]
	if ch == nil {
		m.mu.Unlock()
		return
	}
	ch.Messages[msg.Ts] = msg
	m.mu.Unlock()

	m.publish("message.received", msg)
}

// messageChanged replaces the stored message at the nested (post-edit)
// message's timestamp; the envelope's own ts names the edit event, not
// the message.
func (m *Mirror) messageChanged(env *event.Envelope) {
	id := env.ChannelID()
	nested := env.Message
	if id == "" || nested == nil || nested.Ts == "" {
		return
	}

	m.mu.Lock()
	ch := m.channels[id]
	if ch == nil {
		m.mu.Unlock()
		return
	}
	ch.Messages[nested.Ts] = nested
	m.mu.Unlock()

	m.publish("message.changed", nested)
}

// messageDeleted removes the message named by the deleted-message
// timestamp, not the envelope timestamp.
func (m *Mirror) messageDeleted(env *event.Envelope) {
	id := env.ChannelID()
	if id == "" || env.Message == nil || env.Message.DeletedTs == "" {
		return
	}
	key := env.Message.DeletedTs

	m.mu.Lock()
	ch := m.channels[id]
	if ch == nil {
		m.mu.Unlock()
		return
	}
	deleted, ok := ch.Messages[key]
	if !ok {
		m.mu.Unlock()
		return
	}
	delete(ch.Messages, key)
	m.mu.Unlock()

	m.publish("message.deleted", deleted)
}

// TrackSent files a provisional outbound message under its correlation
// id, both in the pending table and in the owning channel's mapping, so
// the eventual acknowledgment reconciles in place.
func (m *Mirror) TrackSent(id string, msg *model.Message) {
	if id == "" || msg == nil {
		return
	}
	m.mu.Lock()
	m.sent[id] = msg
	if ch := m.channels[msg.Channel]; ch != nil {
		ch.Messages[msg.Ts] = msg
	}
	m.mu.Unlock()
}

// messageSent reconciles a server acknowledgment with the provisional
// entry tracked under its reply_to id: the same entry is mutated to the
// server-confirmed ts and text and re-keyed in the channel mapping.
// Acks for unknown ids are dropped.
func (m *Mirror) messageSent(env *event.Envelope) {
	if env.ReplyTo == nil {
		return
	}
	id := strconv.FormatInt(*env.ReplyTo, 10)

	m.mu.Lock()
	msg, ok := m.sent[id]
	if !ok || env.Ts == "" {
		m.mu.Unlock()
		return
	}
	oldTs := msg.Ts
	msg.Ts = env.Ts
	if env.Text != "" {
		msg.Text = env.Text
	}
	if ch := m.channels[msg.Channel]; ch != nil {
		delete(ch.Messages, oldTs)
		ch.Messages[msg.Ts] = msg
	}
	delete(m.sent, id)
	m.mu.Unlock()

	m.publish("message.sent", msg)
}

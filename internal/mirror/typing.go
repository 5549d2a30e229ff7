package mirror

import (
	"slices"
	"time"

	"github.com/launchsoft/slackmirror/internal/event"
	"github.com/launchsoft/slackmirror/internal/model"
)

// TypingNotice identifies who is typing where.
type TypingNotice struct {
	Channel *model.Channel
	User    *model.User
}

// userTyping adds the user to the channel's typing set if absent and
// (re)arms the expiry timer. The set never holds a duplicate id; a
// repeat event is a set no-op that still pushes the expiry out.
func (m *Mirror) userTyping(env *event.Envelope) {
	channelID := env.ChannelID()
	userID := env.UserID()
	if channelID == "" || userID == "" {
		return
	}

	m.mu.Lock()
	ch := m.channels[channelID]
	if ch == nil {
		m.mu.Unlock()
		return
	}

	added := false
	if !slices.Contains(ch.UsersTyping, userID) {
		ch.UsersTyping = append(ch.UsersTyping, userID)
		added = true
	}

	timers := m.typingTimers[channelID]
	if timers == nil {
		timers = make(map[string]*time.Timer)
		m.typingTimers[channelID] = timers
	}
	if t, ok := timers[userID]; ok {
		t.Reset(m.typingTTL)
	} else {
		timers[userID] = time.AfterFunc(m.typingTTL, func() {
			m.expireTyping(channelID, userID)
		})
	}
	m.mu.Unlock()

	if added {
		m.publish("channel.typing", TypingNotice{Channel: ch, User: &env.User.User})
	}
}

// expireTyping removes a typing entry once its window lapses. Firing
// after the user or channel is gone is harmless.
func (m *Mirror) expireTyping(channelID, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if timers := m.typingTimers[channelID]; timers != nil {
		delete(timers, userID)
	}
	ch := m.channels[channelID]
	if ch == nil {
		return
	}
	if i := slices.Index(ch.UsersTyping, userID); i >= 0 {
		ch.UsersTyping = slices.Delete(ch.UsersTyping, i, i+1)
	}
}

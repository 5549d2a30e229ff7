package mirror

import (
	"github.com/launchsoft/slackmirror/internal/event"
	"github.com/launchsoft/slackmirror/internal/model"
)

// PinNotice pairs a pinned or unpinned item with its channel.
type PinNotice struct {
	Item    *model.Item
	Channel *model.Channel
}

func (m *Mirror) pinAdded(env *event.Envelope) {
	id := env.ChannelID()
	if id == "" || env.Item == nil {
		return
	}

	m.mu.Lock()
	ch := m.channels[id]
	if ch == nil {
		m.mu.Unlock()
		return
	}
	ch.PinnedItems = append(ch.PinnedItems, *env.Item)
	m.mu.Unlock()

	m.publish("pin.added", PinNotice{Item: env.Item, Channel: ch})
}

// pinRemoved filters the pinned list by structural equality across the
// item's type, channel, file, comment and message fields.
func (m *Mirror) pinRemoved(env *event.Envelope) {
	id := env.ChannelID()
	if id == "" || env.Item == nil {
		return
	}

	m.mu.Lock()
	ch := m.channels[id]
	if ch == nil {
		m.mu.Unlock()
		return
	}
	kept := ch.PinnedItems[:0]
	for _, it := range ch.PinnedItems {
		if !it.Equal(*env.Item) {
			kept = append(kept, it)
		}
	}
	ch.PinnedItems = kept
	m.mu.Unlock()

	m.publish("pin.removed", PinNotice{Item: env.Item, Channel: ch})
}

package mirror

import (
	"github.com/launchsoft/slackmirror/internal/event"
	"github.com/launchsoft/slackmirror/internal/model"
)

// StarNotice carries a starred or unstarred item for fanout.
type StarNotice struct {
	Item    *model.Item
	Starred bool
}

// itemStarred routes a star event by the item's kind tag. Messages only
// flip their flag; files flip the flag and move the star counter,
// clamped at zero; comments are re-stored without a dedicated flag.
func (m *Mirror) itemStarred(star bool) func(*event.Envelope) {
	return func(env *event.Envelope) {
		if env.Item == nil || env.Item.Type == "" {
			return
		}
		switch env.Item.Type {
		case model.ItemTypeMessage:
			m.starMessage(env.Item, star)
		case model.ItemTypeFile:
			m.starFile(env.Item, star)
		case model.ItemTypeFileComment:
			m.starComment(env.Item)
		default:
			return
		}

		if star {
			m.publish("star.added", StarNotice{Item: env.Item, Starred: star})
		} else {
			m.publish("star.removed", StarNotice{Item: env.Item, Starred: star})
		}
	}
}

func (m *Mirror) starMessage(item *model.Item, star bool) {
	if item.Message == nil || item.Message.Ts == "" || item.Channel == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	ch := m.channels[item.Channel]
	if ch == nil {
		return
	}
	msg := ch.Messages[item.Message.Ts]
	if msg == nil {
		return
	}
	msg.IsStarred = star
}

func (m *Mirror) starFile(item *model.Item, star bool) {
	if item.File == nil || item.File.ID == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	f := m.files[item.File.ID]
	if f == nil {
		return
	}
	f.IsStarred = star
	if star {
		f.Stars++
	} else if f.Stars > 0 {
		f.Stars--
	}
}

// starComment re-stores the comment carried by the item; comments have
// no dedicated starred flag on this path.
func (m *Mirror) starComment(item *model.Item) {
	if item.File == nil || item.File.ID == "" || item.Comment == nil || item.Comment.ID == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	f := m.files[item.File.ID]
	if f == nil {
		return
	}
	if f.Comments == nil {
		f.Comments = make(map[string]*model.Comment)
	}
	f.Comments[item.Comment.ID] = item.Comment
}

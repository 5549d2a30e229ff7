package mirror

import (
	"github.com/launchsoft/slackmirror/internal/event"
	"github.com/launchsoft/slackmirror/internal/model"
)

// ReactionNotice carries a reaction event and the user who reacted.
type ReactionNotice struct {
	Name     string
	Item     *model.Item
	ItemUser string
	User     *model.User
}

// reactionAdded appends a (name, user) pair to the target's reaction
// list. Adds are not deduplicated; repeated adds accumulate.
func (m *Mirror) reactionAdded(env *event.Envelope) {
	if env.Item == nil || env.Item.Type == "" || env.Reaction == "" ||
		env.UserID() == "" || env.ItemUser == "" {
		return
	}
	r := model.Reaction{Name: env.Reaction, User: env.UserID()}

	m.mu.Lock()
	ok := false
	switch env.Item.Type {
	case model.ItemTypeMessage:
		if msg := m.lookupItemMessage(env.Item); msg != nil {
			msg.Reactions = append(msg.Reactions, r)
			ok = true
		}
	case model.ItemTypeFile:
		if f := m.lookupItemFile(env.Item); f != nil {
			f.Reactions = append(f.Reactions, r)
			ok = true
		}
	case model.ItemTypeFileComment:
		if c := m.lookupItemComment(env.Item); c != nil {
			c.Reactions = append(c.Reactions, r)
			ok = true
		}
	}
	m.mu.Unlock()
	if !ok {
		return
	}

	m.publish("reaction.added", ReactionNotice{
		Name:     env.Reaction,
		Item:     env.Item,
		ItemUser: env.ItemUser,
		User:     &env.User.User,
	})
}

// reactionRemoved filters the target's reaction list with the literal
// predicate keep = (name differs AND user differs). An entry is
// excluded only when it matches the removal's name and user on neither
// axis. This mirrors the reviewed upstream behavior; see DESIGN.md
// before changing the predicate.
func (m *Mirror) reactionRemoved(env *event.Envelope) {
	if env.Item == nil || env.Item.Type == "" || env.Reaction == "" ||
		env.UserID() == "" || env.ItemUser == "" {
		return
	}
	name, user := env.Reaction, env.UserID()

	keep := func(list model.ReactionList) model.ReactionList {
		kept := list[:0]
		for _, r := range list {
			if r.Name != name && r.User != user {
				kept = append(kept, r)
			}
		}
		return kept
	}

	m.mu.Lock()
	ok := false
	switch env.Item.Type {
	case model.ItemTypeMessage:
		if msg := m.lookupItemMessage(env.Item); msg != nil {
			msg.Reactions = keep(msg.Reactions)
			ok = true
		}
	case model.ItemTypeFile:
		if f := m.lookupItemFile(env.Item); f != nil {
			f.Reactions = keep(f.Reactions)
			ok = true
		}
	case model.ItemTypeFileComment:
		if c := m.lookupItemComment(env.Item); c != nil {
			c.Reactions = keep(c.Reactions)
			ok = true
		}
	}
	m.mu.Unlock()
	if !ok {
		return
	}

	m.publish("reaction.removed", ReactionNotice{
		Name:     env.Reaction,
		Item:     env.Item,
		ItemUser: env.ItemUser,
		User:     &env.User.User,
	})
}

// Item target lookups. Callers hold m.mu.

func (m *Mirror) lookupItemMessage(item *model.Item) *model.Message {
	if item.Channel == "" || item.Ts == "" {
		return nil
	}
	ch := m.channels[item.Channel]
	if ch == nil {
		return nil
	}
	return ch.Messages[item.Ts]
}

func (m *Mirror) lookupItemFile(item *model.Item) *model.File {
	if item.File == nil || item.File.ID == "" {
		return nil
	}
	return m.files[item.File.ID]
}

func (m *Mirror) lookupItemComment(item *model.Item) *model.Comment {
	f := m.lookupItemFile(item)
	if f == nil || item.FileCommentID == "" {
		return nil
	}
	return f.Comments[item.FileCommentID]
}

package mirror

import (
	"github.com/launchsoft/slackmirror/internal/event"
	"github.com/launchsoft/slackmirror/internal/model"
)

// FileComment pairs a file with one of its comments for fanout.
type FileComment struct {
	File    *model.File
	Comment *model.Comment
}

// processFile upserts a file, carrying over the existing comment cache.
// An embedded initial comment is merged first-write-wins: it never
// overwrites a comment id that is already known.
func (m *Mirror) processFile(env *event.Envelope) {
	if env.File == nil || env.File.ID == "" {
		return
	}
	f := &env.File.File

	m.mu.Lock()
	if old := m.files[f.ID]; old != nil {
		f.Comments = old.Comments
	}
	if f.Comments == nil {
		f.Comments = make(map[string]*model.Comment)
	}
	if c := f.InitialComment; c != nil && c.ID != "" {
		if _, known := f.Comments[c.ID]; !known {
			f.Comments[c.ID] = c
		}
	}
	m.files[f.ID] = f
	m.mu.Unlock()

	m.publish("file.processed", f)
}

func (m *Mirror) filePrivate(env *event.Envelope) {
	if env.File == nil || env.File.ID == "" {
		return
	}

	m.mu.Lock()
	f := m.files[env.File.ID]
	if f != nil {
		f.IsPublic = false
	}
	m.mu.Unlock()

	m.publish("file.private", &env.File.File)
}

func (m *Mirror) fileDeleted(env *event.Envelope) {
	if env.File == nil || env.File.ID == "" {
		return
	}

	m.mu.Lock()
	delete(m.files, env.File.ID)
	m.mu.Unlock()

	m.publish("file.deleted", &env.File.File)
}

func (m *Mirror) fileCommentAdded(env *event.Envelope) {
	if env.File == nil || env.File.ID == "" || env.Comment == nil || env.Comment.ID == "" {
		return
	}
	c := &env.Comment.Comment

	m.mu.Lock()
	f := m.files[env.File.ID]
	if f == nil {
		m.mu.Unlock()
		return
	}
	if f.Comments == nil {
		f.Comments = make(map[string]*model.Comment)
	}
	f.Comments[c.ID] = c
	m.mu.Unlock()

	m.publish("file.comment_added", FileComment{File: f, Comment: c})
}

// fileCommentEdited overwrites only the comment body of an already
// known comment.
func (m *Mirror) fileCommentEdited(env *event.Envelope) {
	if env.File == nil || env.File.ID == "" || env.Comment == nil || env.Comment.ID == "" {
		return
	}

	m.mu.Lock()
	f := m.files[env.File.ID]
	if f == nil {
		m.mu.Unlock()
		return
	}
	c := f.Comments[env.Comment.ID]
	if c == nil {
		m.mu.Unlock()
		return
	}
	c.Comment = env.Comment.Comment.Comment
	m.mu.Unlock()

	m.publish("file.comment_edited", FileComment{File: f, Comment: c})
}

func (m *Mirror) fileCommentDeleted(env *event.Envelope) {
	if env.File == nil || env.File.ID == "" || env.Comment == nil || env.Comment.ID == "" {
		return
	}

	m.mu.Lock()
	f := m.files[env.File.ID]
	if f == nil {
		m.mu.Unlock()
		return
	}
	delete(f.Comments, env.Comment.ID)
	m.mu.Unlock()

	m.publish("file.comment_deleted", FileComment{File: f, Comment: &env.Comment.Comment})
}

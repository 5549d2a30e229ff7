package mirror

import (
	"testing"

	"github.com/launchsoft/slackmirror/internal/model"
)

func TestReactionAddedToMessage(t *testing.T) {
	m, ch := newTestMirror(t)
	m.LoadSnapshot(snapshot())
	m.messageReceived(decode(t, `{"type":"message","channel":"C1","message":{"ts":"100.1","text":"hi"}}`))

	m.reactionAdded(decode(t, `{"type":"reaction_added","user":"U1","reaction":"thumbsup","item_user":"U2","item":{"type":"message","channel":"C1","message":{"ts":"100.1"}}}`))

	msg := m.Message("C1", "100.1")
	if len(msg.Reactions) != 1 || msg.Reactions[0] != (model.Reaction{Name: "thumbsup", User: "U1"}) {
		t.Errorf("Reactions = %+v, want single thumbsup/U1", msg.Reactions)
	}
	evt := expectEvent(t, ch, "reaction.added")
	notice := evt.Payload.(ReactionNotice)
	if notice.Name != "thumbsup" || notice.ItemUser != "U2" {
		t.Errorf("notice = %+v", notice)
	}
}

func TestReactionAddsAccumulate(t *testing.T) {
	m, _ := newTestMirror(t)
	m.LoadSnapshot(snapshot())
	m.messageReceived(decode(t, `{"type":"message","channel":"C1","message":{"ts":"100.1"}}`))

	frame := `{"type":"reaction_added","user":"U1","reaction":"eyes","item_user":"U2","item":{"type":"message","channel":"C1","message":{"ts":"100.1"}}}`
	m.reactionAdded(decode(t, frame))
	m.reactionAdded(decode(t, frame))

	if got := len(m.Message("C1", "100.1").Reactions); got != 2 {
		t.Errorf("got %d reactions, want 2 (adds are not deduplicated)", got)
	}
}

// Removal keeps an entry only when both the name and the user differ
// from the removal event. Entries sharing either axis are dropped.
func TestReactionRemovedPredicate(t *testing.T) {
	m, ch := newTestMirror(t)
	m.LoadSnapshot(snapshot())
	m.messageReceived(decode(t, `{"type":"message","channel":"C1","message":{"ts":"100.1"}}`))

	add := func(name, user string) {
		m.reactionAdded(decode(t, `{"type":"reaction_added","user":"`+user+`","reaction":"`+name+`","item_user":"U2","item":{"type":"message","channel":"C1","message":{"ts":"100.1"}}}`))
	}
	add("thumbsup", "U1") // exact match: dropped
	add("thumbsup", "U3") // same name, other user: dropped
	add("eyes", "U1")     // other name, same user: dropped
	add("eyes", "U3")     // differs on both axes: kept

	m.reactionRemoved(decode(t, `{"type":"reaction_removed","user":"U1","reaction":"thumbsup","item_user":"U2","item":{"type":"message","channel":"C1","message":{"ts":"100.1"}}}`))

	got := m.Message("C1", "100.1").Reactions
	if len(got) != 1 || got[0] != (model.Reaction{Name: "eyes", User: "U3"}) {
		t.Errorf("Reactions = %+v, want only eyes/U3 kept", got)
	}
	expectEvent(t, ch, "reaction.removed")
}

func TestReactionOnFile(t *testing.T) {
	m, _ := newTestMirror(t)
	m.LoadSnapshot(snapshot())
	m.processFile(decode(t, `{"type":"file_created","file":{"id":"F1","name":"a.txt"}}`))

	m.reactionAdded(decode(t, `{"type":"reaction_added","user":"U1","reaction":"rocket","item_user":"U2","item":{"type":"file","file":"F1"}}`))

	f := m.File("F1")
	if len(f.Reactions) != 1 || f.Reactions[0].Name != "rocket" {
		t.Errorf("file Reactions = %+v", f.Reactions)
	}
}

func TestReactionOnFileComment(t *testing.T) {
	m, _ := newTestMirror(t)
	m.LoadSnapshot(snapshot())
	m.processFile(decode(t, `{"type":"file_created","file":{"id":"F1"}}`))
	m.fileCommentAdded(decode(t, `{"type":"file_comment_added","file":"F1","comment":{"id":"FC1","comment":"nice"}}`))

	m.reactionAdded(decode(t, `{"type":"reaction_added","user":"U1","reaction":"tada","item_user":"U2","item":{"type":"file_comment","file":"F1","file_comment":"FC1"}}`))

	c := m.File("F1").Comments["FC1"]
	if len(c.Reactions) != 1 || c.Reactions[0].Name != "tada" {
		t.Errorf("comment Reactions = %+v", c.Reactions)
	}
}

func TestReactionIncompletePayloadIgnored(t *testing.T) {
	m, ch := newTestMirror(t)
	m.LoadSnapshot(snapshot())
	m.messageReceived(decode(t, `{"type":"message","channel":"C1","message":{"ts":"100.1"}}`))

	// Missing item_user.
	m.reactionAdded(decode(t, `{"type":"reaction_added","user":"U1","reaction":"x","item":{"type":"message","channel":"C1","message":{"ts":"100.1"}}}`))
	// Missing reaction name.
	m.reactionRemoved(decode(t, `{"type":"reaction_removed","user":"U1","item_user":"U2","item":{"type":"message","channel":"C1","message":{"ts":"100.1"}}}`))
	// Unknown target.
	m.reactionAdded(decode(t, `{"type":"reaction_added","user":"U1","reaction":"x","item_user":"U2","item":{"type":"message","channel":"C1","message":{"ts":"404.0"}}}`))

	expectNoEvent(t, ch)
}

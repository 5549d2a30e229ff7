package model

import (
	"encoding/json"
	"testing"
)

func TestReactionListFlattensGroupedUsers(t *testing.T) {
	raw := `[{"name":"thumbsup","users":["U1","U2","U3"]},{"name":"eyes","users":["U2"]}]`

	var list ReactionList
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := ReactionList{
		{Name: "thumbsup", User: "U1"},
		{Name: "thumbsup", User: "U2"},
		{Name: "thumbsup", User: "U3"},
		{Name: "eyes", User: "U2"},
	}
	if len(list) != len(want) {
		t.Fatalf("got %d reactions, want %d", len(list), len(want))
	}
	for i := range want {
		if list[i] != want[i] {
			t.Errorf("reaction[%d] = %+v, want %+v", i, list[i], want[i])
		}
	}
}

func TestReactionListSingleUserForm(t *testing.T) {
	raw := `[{"name":"wave","user":"U9"}]`

	var list ReactionList
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(list) != 1 || list[0] != (Reaction{Name: "wave", User: "U9"}) {
		t.Errorf("list = %+v, want single wave/U9", list)
	}
}

package model

import "encoding/json"

// Reaction is a single (emoji name, user) pair attached to a message,
// file or comment.
type Reaction struct {
	Name string `json:"name"`
	User string `json:"user"`
}

// ReactionList decodes the wire form of a reactions array. The server
// groups reactions as {name, users: [...]}; the list is flattened to
// one Reaction per (name, user) pair.
type ReactionList []Reaction

type wireReaction struct {
	Name  string   `json:"name"`
	User  string   `json:"user"`
	Users []string `json:"users"`
}

func (l *ReactionList) UnmarshalJSON(data []byte) error {
	var raw []wireReaction
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(ReactionList, 0, len(raw))
	for _, r := range raw {
		if len(r.Users) > 0 {
			for _, u := range r.Users {
				out = append(out, Reaction{Name: r.Name, User: u})
			}
			continue
		}
		out = append(out, Reaction{Name: r.Name, User: r.User})
	}
	*l = out
	return nil
}

package model

// Edited marks a message as an edit of an earlier message.
type Edited struct {
	User string `json:"user"`
	Ts   string `json:"ts"`
}

// Message is one message in a channel. Ts doubles as the message's
// identity within its channel and as the sort key.
type Message struct {
	Ts        string       `json:"ts"`
	Type      string       `json:"type"`
	SubType   string       `json:"subtype"`
	Channel   string       `json:"channel"`
	User      string       `json:"user"`
	Text      string       `json:"text"`
	DeletedTs string       `json:"deleted_ts"`
	IsStarred bool         `json:"is_starred"`
	Edited    *Edited      `json:"edited"`
	Reactions ReactionList `json:"reactions"`
}

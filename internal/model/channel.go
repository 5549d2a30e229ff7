package model

import "encoding/json"

// Property is a named channel property such as the topic or purpose.
type Property struct {
	Value   string `json:"value"`
	Creator string `json:"creator"`
	LastSet int64  `json:"last_set"`
}

// Channel covers public channels, private groups, direct and multi-party
// IMs uniformly. Messages is the channel's message history cache, keyed
// by message ts; it is runtime state and never part of the wire shape.
type Channel struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Created    int64    `json:"created"`
	Creator    string   `json:"creator"`
	IsChannel  bool     `json:"is_channel"`
	IsGroup    bool     `json:"is_group"`
	IsIM       bool     `json:"is_im"`
	IsMPIM     bool     `json:"is_mpim"`
	IsGeneral  bool     `json:"is_general"`
	IsArchived bool     `json:"is_archived"`
	IsOpen     bool     `json:"is_open"`
	IsMember   bool     `json:"is_member"`
	Members    []string `json:"members"`
	Topic      Property `json:"topic"`
	Purpose    Property `json:"purpose"`
	LastRead   string   `json:"last_read"`

	UsersTyping []string            `json:"-"`
	PinnedItems []Item              `json:"-"`
	Messages    map[string]*Message `json:"-"`
}

// ChannelRef decodes a channel reference that arrives either as a bare
// id string or as a full channel object.
type ChannelRef struct {
	Channel
}

func (r *ChannelRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		r.Channel = Channel{ID: id}
		return nil
	}
	return json.Unmarshal(data, &r.Channel)
}

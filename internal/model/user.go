package model

import "encoding/json"

// User is a workspace member. DoNotDisturb and Subteams are runtime
// state; Subteams is populated only for the authenticated user.
type User struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	RealName string         `json:"real_name"`
	Color    string         `json:"color"`
	Deleted  bool           `json:"deleted"`
	IsAdmin  bool           `json:"is_admin"`
	IsBot    bool           `json:"is_bot"`
	Presence string         `json:"presence"`
	Profile  *Profile       `json:"profile"`
	Prefs    map[string]any `json:"prefs"`

	DoNotDisturb *DoNotDisturbStatus `json:"-"`
	Subteams     map[string]string   `json:"-"`
}

// UserRef decodes a user reference that arrives either as a bare id
// string or as a full user object.
type UserRef struct {
	User
}

func (r *UserRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		r.User = User{ID: id}
		return nil
	}
	return json.Unmarshal(data, &r.User)
}

// Bot is a bot integration, stored by identity.
type Bot struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	AppID   string            `json:"app_id"`
	Deleted bool              `json:"deleted"`
	Icons   map[string]string `json:"icons"`
}

// UserGroup is a named, opt-in group of users (a subteam), distinct
// from a channel.
type UserGroup struct {
	ID          string `json:"id"`
	TeamID      string `json:"team_id"`
	IsUserGroup bool   `json:"is_usergroup"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Handle      string `json:"handle"`
	AutoType    string `json:"auto_type"`
	CreatedBy   string `json:"created_by"`
	UserCount   int    `json:"user_count"`
}

// DoNotDisturbStatus mirrors a user's do-not-disturb schedule and
// snooze state.
type DoNotDisturbStatus struct {
	Enabled       bool  `json:"dnd_enabled"`
	NextStart     int64 `json:"next_dnd_start_ts"`
	NextEnd       int64 `json:"next_dnd_end_ts"`
	SnoozeEnabled bool  `json:"snooze_enabled"`
	SnoozeEndtime int64 `json:"snooze_endtime"`
}

// Package event defines the inbound real-time envelope: one decoded
// frame from the transport, a type tag plus a tag-specific payload.
// Payload shapes are not guaranteed complete by the upstream system, so
// every field besides Type is optional.
package event

import (
	"encoding/json"

	"github.com/launchsoft/slackmirror/internal/model"
)

// Envelope is one decoded inbound real-time event.
type Envelope struct {
	Type    string `json:"type"`
	SubType string `json:"subtype"`

	Channel   *model.ChannelRef `json:"channel"`
	ChanID    string            `json:"channel_id"`
	User      *model.UserRef    `json:"user"`
	Ts        string            `json:"ts"`
	Text      string            `json:"text"`
	Message   *model.Message    `json:"message"`
	File      *model.FileRef    `json:"file"`
	Comment   *model.CommentRef `json:"comment"`
	Item      *model.Item       `json:"item"`
	ItemUser  string            `json:"item_user"`
	Reaction  string            `json:"reaction"`
	Presence  string            `json:"presence"`
	Name      string            `json:"name"`
	Value     any               `json:"value"`
	Plan      string            `json:"plan"`
	Domain    string            `json:"domain"`
	EmailDom  string            `json:"email_domain"`
	Bot       *model.Bot        `json:"bot"`
	Subteam   *model.UserGroup  `json:"subteam"`
	SubteamID string            `json:"subteam_id"`
	Profile   *model.CustomProfile `json:"profile"`
	DNDStatus *model.DoNotDisturbStatus `json:"dnd_status"`

	// Reply correlation for send acks and heartbeat pongs.
	OK      *bool  `json:"ok"`
	ReplyTo *int64 `json:"reply_to"`
	Error   *Error `json:"error"`
}

// Error is the error block attached to a failed send acknowledgment.
type Error struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// Decode unmarshals one raw frame into an envelope.
func Decode(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// ChannelID returns the channel id carried by the envelope, whether it
// arrived as a bare id, a full object, or the channel_id field some
// event kinds use instead.
func (e *Envelope) ChannelID() string {
	if e.Channel != nil && e.Channel.ID != "" {
		return e.Channel.ID
	}
	return e.ChanID
}

// UserID returns the user id carried by the envelope.
func (e *Envelope) UserID() string {
	if e.User == nil {
		return ""
	}
	return e.User.ID
}

// Kind returns the routing tag: the subtype for message frames that
// carry one, the type otherwise.
func (e *Envelope) Kind() string {
	if e.Type == TypeMessage && e.SubType != "" {
		return e.SubType
	}
	return e.Type
}

// IsSendAck reports whether the envelope is the acknowledgment of a
// locally submitted frame: no type tag, a reply_to correlation id.
func (e *Envelope) IsSendAck() bool {
	return e.Type == "" && e.ReplyTo != nil
}

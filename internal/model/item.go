package model

import "encoding/json"

// Item is a polymorphic reference to the thing that was pinned, starred
// or reacted to: a message, a file or a file comment. File and Comment
// may arrive as bare id strings.
type Item struct {
	Type          string   `json:"type"`
	Channel       string   `json:"channel"`
	Ts            string   `json:"ts"`
	Message       *Message `json:"message"`
	File          *File    `json:"-"`
	Comment       *Comment `json:"-"`
	FileCommentID string   `json:"file_comment"`
}

// Item kind tags carried in the type field.
const (
	ItemTypeMessage     = "message"
	ItemTypeFile        = "file"
	ItemTypeFileComment = "file_comment"
)

func (i *Item) UnmarshalJSON(data []byte) error {
	type alias Item
	aux := struct {
		*alias
		File    *FileRef    `json:"file"`
		Comment *CommentRef `json:"comment"`
	}{alias: (*alias)(i)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.File != nil {
		i.File = &aux.File.File
	}
	if aux.Comment != nil {
		i.Comment = &aux.Comment.Comment
	}
	return nil
}

// Equal reports structural equality used by pin removal: type, channel,
// file id, comment id and message ts must all match.
func (i Item) Equal(o Item) bool {
	return i.Type == o.Type &&
		i.Channel == o.Channel &&
		fileID(i.File) == fileID(o.File) &&
		commentID(i.Comment) == commentID(o.Comment) &&
		messageTs(i.Message) == messageTs(o.Message)
}

func fileID(f *File) string {
	if f == nil {
		return ""
	}
	return f.ID
}

func commentID(c *Comment) string {
	if c == nil {
		return ""
	}
	return c.ID
}

func messageTs(m *Message) string {
	if m == nil {
		return ""
	}
	return m.Ts
}

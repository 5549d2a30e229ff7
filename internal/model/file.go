package model

import "encoding/json"

// Comment is a comment on a file.
type Comment struct {
	ID        string       `json:"id"`
	Created   int64        `json:"created"`
	User      string       `json:"user"`
	Comment   string       `json:"comment"`
	IsStarred bool         `json:"is_starred"`
	Stars     int          `json:"num_stars"`
	Reactions ReactionList `json:"reactions"`
}

// File is an uploaded file. Comments is the comment cache keyed by
// comment id, maintained from events rather than the wire shape.
type File struct {
	ID             string       `json:"id"`
	Created        int64        `json:"created"`
	Name           string       `json:"name"`
	User           string       `json:"user"`
	IsPublic       bool         `json:"is_public"`
	IsStarred      bool         `json:"is_starred"`
	Stars          int          `json:"num_stars"`
	InitialComment *Comment     `json:"initial_comment"`
	Reactions      ReactionList `json:"reactions"`

	Comments map[string]*Comment `json:"-"`
}

// FileRef decodes a file reference that arrives either as a bare id
// string or as a full file object.
type FileRef struct {
	File
}

func (r *FileRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		r.File = File{ID: id}
		return nil
	}
	return json.Unmarshal(data, &r.File)
}

// CommentRef decodes a comment reference that arrives either as a bare
// id string or as a full comment object.
type CommentRef struct {
	Comment
}

func (r *CommentRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		r.Comment = Comment{ID: id}
		return nil
	}
	return json.Unmarshal(data, &r.Comment)
}

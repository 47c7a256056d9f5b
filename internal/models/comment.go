package models

import "time"

// Comment represents a comment on a post. Comments are created and deleted,
// never edited. BlogID is a back-reference to the owning post.
type Comment struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
	BlogID    int64     `json:"blogId"`
}

package models

// Post represents a blog post in the Inkwell application.
//
// Date is the creation date (YYYY-MM-DD) and never changes on edit.
// LikedBy is the set of user ids that currently like the post; Likes moves
// in lockstep with LikedBy membership on every toggle.
type Post struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Category string    `json:"category,omitempty"`
	Image    string    `json:"image,omitempty"`
	Author   string    `json:"author"`
	AuthorID string    `json:"authorId,omitempty"`
	Date     string    `json:"date"`
	Likes    int       `json:"likes"`
	LikedBy  []string  `json:"likedBy"`
	Comments []Comment `json:"comments"`
}

// LikedByUser reports whether the given user currently likes the post.
func (p *Post) LikedByUser(userID string) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the post. Store reads hand out clones so
// callers hold display snapshots, never references into store state.
func (p Post) Clone() Post {
	out := p
	out.LikedBy = append([]string(nil), p.LikedBy...)
	out.Comments = append([]Comment(nil), p.Comments...)
	return out
}

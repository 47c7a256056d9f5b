package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/storage"
)

// IdentityResolver maps an authenticated user id to its author identity.
// Content writes take only the user id from the verified session; the
// display name snapshot is resolved here, never read from the request.
type IdentityResolver interface {
	Resolve(ctx context.Context, userID string) (models.Identity, error)
}

// AddPostInput carries the caller-validated fields of a new post.
type AddPostInput struct {
	Title    string
	Content  string
	Category string
	Image    string
}

// EditPostInput is a partial update; nil fields keep their current value.
// Id, date, likes, likedBy and comments are never touched by an edit.
type EditPostInput struct {
	Title    *string
	Content  *string
	Category *string
	Image    *string
}

// ContentStore owns the ordered post sequence, newest first. Every mutation
// runs to completion under the store mutex — in-memory change plus snapshot
// persist — before the next one is admitted, mirroring the synchronous
// event-at-a-time model of the original design.
type ContentStore struct {
	mu  sync.Mutex
	ns  storage.Namespace
	ids IdentityResolver
	log *slog.Logger

	posts []models.Post
	gen   int64
}

// NewContentStore builds a content store bound to ns, rehydrating the post
// sequence from it. Absent or malformed data falls back to seed; the seed
// slice is deep-copied so the caller's copy stays pristine.
func NewContentStore(ctx context.Context, ns storage.Namespace, ids IdentityResolver, seed []models.Post, log *slog.Logger) (*ContentStore, error) {
	s := &ContentStore{ns: ns, ids: ids, log: log}

	raw, err := ns.Get(ctx, storage.KeyBlogs)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(raw, &s.posts); jsonErr != nil {
			log.WarnContext(ctx, "malformed post snapshot, falling back to seed",
				slog.String("error", jsonErr.Error()))
			observability.SeedFallbacks.WithLabelValues(storage.KeyBlogs, "malformed").Inc()
			s.posts = clonePosts(seed)
		}
	case err == storage.ErrKeyNotFound:
		observability.SeedFallbacks.WithLabelValues(storage.KeyBlogs, "absent").Inc()
		s.posts = clonePosts(seed)
	default:
		return nil, err
	}
	s.normalize()
	s.gen, _ = ns.Generation(ctx, storage.KeyBlogs)

	return s, nil
}

// normalize repairs nil collections on rehydrated posts so older snapshots
// (written before likedBy/comments existed) behave like empty sets.
func (s *ContentStore) normalize() {
	for i := range s.posts {
		if s.posts[i].LikedBy == nil {
			s.posts[i].LikedBy = []string{}
		}
		if s.posts[i].Comments == nil {
			s.posts[i].Comments = []models.Comment{}
		}
	}
}

// AddPost creates a post authored by the given user and prepends it to the
// sequence. The author identity is resolved from the user id.
func (s *ContentStore) AddPost(ctx context.Context, userID string, in AddPostInput) (*models.Post, error) {
	author, err := s.ids.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post := models.Post{
		ID:       nextID(),
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
		Image:    in.Image,
		Author:   author.Username,
		AuthorID: author.ID,
		Date:     time.Now().UTC().Format("2006-01-02"),
		Likes:    0,
		LikedBy:  []string{},
		Comments: []models.Comment{},
	}
	s.posts = append([]models.Post{post}, s.posts...)
	if err := s.persist(ctx); err != nil {
		s.posts = s.posts[1:]
		return nil, err
	}

	observability.StoreMutations.WithLabelValues("content", "add_post").Inc()
	out := post.Clone()
	return &out, nil
}

// EditPost merges the supplied fields into the post. Only the post's author
// may edit it. Editing a vanished post is a silent no-op: (nil, nil).
func (s *ContentStore) EditPost(ctx context.Context, userID string, postID int64, in EditPostInput) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(postID)
	if idx < 0 {
		return nil, nil
	}
	post := &s.posts[idx]
	if post.AuthorID != userID {
		return nil, models.NewUnauthorizedError("You can only edit your own posts")
	}

	prev := *post
	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.Category != nil {
		post.Category = *in.Category
	}
	if in.Image != nil {
		post.Image = *in.Image
	}
	if err := s.persist(ctx); err != nil {
		*post = prev
		return nil, err
	}

	observability.StoreMutations.WithLabelValues("content", "edit_post").Inc()
	out := post.Clone()
	return &out, nil
}

// DeletePost removes the post with the given id. Only the post's author may
// delete it. Deleting a vanished post is a no-op, making the operation
// idempotent.
func (s *ContentStore) DeletePost(ctx context.Context, userID string, postID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(postID)
	if idx < 0 {
		return nil
	}
	if s.posts[idx].AuthorID != userID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}

	removed := s.posts[idx]
	s.posts = append(s.posts[:idx], s.posts[idx+1:]...)
	if err := s.persist(ctx); err != nil {
		s.posts = append(s.posts[:idx], append([]models.Post{removed}, s.posts[idx:]...)...)
		return err
	}

	observability.StoreMutations.WithLabelValues("content", "delete_post").Inc()
	return nil
}

// ToggleLike flips the (post, user) like state: present in likedBy removes
// the id and decrements likes (floored at zero), absent adds it and
// increments. Returns the updated post, or (nil, nil) when the post is gone.
func (s *ContentStore) ToggleLike(ctx context.Context, userID string, postID int64) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(postID)
	if idx < 0 {
		return nil, nil
	}
	post := &s.posts[idx]

	prevLikedBy := append([]string(nil), post.LikedBy...)
	prevLikes := post.Likes

	likeIdx := -1
	for i, id := range post.LikedBy {
		if id == userID {
			likeIdx = i
			break
		}
	}
	if likeIdx < 0 {
		post.LikedBy = append(post.LikedBy, userID)
		post.Likes++
	} else {
		post.LikedBy = append(post.LikedBy[:likeIdx], post.LikedBy[likeIdx+1:]...)
		if post.Likes > 0 {
			post.Likes--
		}
	}

	if err := s.persist(ctx); err != nil {
		post.LikedBy = prevLikedBy
		post.Likes = prevLikes
		return nil, err
	}

	observability.StoreMutations.WithLabelValues("content", "toggle_like").Inc()
	out := post.Clone()
	return &out, nil
}

// AddComment appends a comment to the post, with identity resolved from the
// user id and a fresh id and timestamp. Commenting on a vanished post is a
// silent no-op: (nil, nil). Text is validated by the caller.
func (s *ContentStore) AddComment(ctx context.Context, userID string, postID int64, text string) (*models.Comment, error) {
	author, err := s.ids.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(postID)
	if idx < 0 {
		return nil, nil
	}
	post := &s.posts[idx]

	comment := models.Comment{
		ID:        nextID(),
		Text:      text,
		Author:    author.Username,
		UserID:    author.ID,
		Timestamp: time.Now().UTC(),
		BlogID:    postID,
	}
	post.Comments = append(post.Comments, comment)
	if err := s.persist(ctx); err != nil {
		post.Comments = post.Comments[:len(post.Comments)-1]
		return nil, err
	}

	observability.StoreMutations.WithLabelValues("content", "add_comment").Inc()
	out := comment
	return &out, nil
}

// DeleteComment removes the comment from the post. Allowed for the comment's
// author and for the owning post's author. A vanished post or comment is a
// no-op.
func (s *ContentStore) DeleteComment(ctx context.Context, userID string, postID, commentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(postID)
	if idx < 0 {
		return nil
	}
	post := &s.posts[idx]

	cIdx := -1
	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			cIdx = i
			break
		}
	}
	if cIdx < 0 {
		return nil
	}
	if post.Comments[cIdx].UserID != userID && post.AuthorID != userID {
		return models.NewUnauthorizedError("You can only delete your own comments")
	}

	removed := post.Comments[cIdx]
	post.Comments = append(post.Comments[:cIdx], post.Comments[cIdx+1:]...)
	if err := s.persist(ctx); err != nil {
		post.Comments = append(post.Comments[:cIdx], append([]models.Comment{removed}, post.Comments[cIdx:]...)...)
		return err
	}

	observability.StoreMutations.WithLabelValues("content", "delete_comment").Inc()
	return nil
}

// Post returns a snapshot of the post with the given id.
func (s *ContentStore) Post(postID int64) (*models.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(postID)
	if idx < 0 {
		return nil, false
	}
	out := s.posts[idx].Clone()
	return &out, true
}

// indexOf locates a post by id. Callers hold s.mu.
func (s *ContentStore) indexOf(postID int64) int {
	for i := range s.posts {
		if s.posts[i].ID == postID {
			return i
		}
	}
	return -1
}

// persist writes the whole sequence under the blogs key. Callers hold s.mu.
func (s *ContentStore) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.posts)
	if err != nil {
		return models.NewInternalError(err)
	}
	if gen, genErr := s.ns.Generation(ctx, storage.KeyBlogs); genErr == nil && gen != s.gen {
		// Another process wrote this key since we loaded it. Last write
		// wins, same as the original design; we only make the overlap
		// visible.
		s.log.WarnContext(ctx, "stale snapshot overwritten",
			slog.String("key", storage.KeyBlogs),
			slog.Int64("expected_generation", s.gen),
			slog.Int64("found_generation", gen))
	}
	if err := s.ns.Set(ctx, storage.KeyBlogs, raw); err != nil {
		return err
	}
	s.gen, _ = s.ns.Generation(ctx, storage.KeyBlogs)
	observability.SnapshotWrites.WithLabelValues(storage.KeyBlogs).Inc()
	return nil
}

func clonePosts(posts []models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	for i := range posts {
		out[i] = posts[i].Clone()
	}
	return out
}

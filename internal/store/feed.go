package store

import (
	"sort"
	"strings"

	"inkwell/internal/models"
)

// Sort orders accepted by FeedQuery.
const (
	SortNewest     = "newest"
	SortOldest     = "oldest"
	SortPopularity = "popularity"
)

// FeedQuery selects and orders posts. All fields are optional; the zero
// value returns the full sequence in its stored (newest-first) order.
type FeedQuery struct {
	// Search is a case-insensitive substring match over title, content
	// and author display name.
	Search string
	// Category filters on exact category.
	Category string
	// AuthorID keeps only posts authored by the given user.
	AuthorID string
	// LikedByID keeps only posts the given user currently likes.
	LikedByID string
	// Sort is one of SortNewest (default), SortOldest, SortPopularity.
	Sort string
}

// Posts computes the feed projection for q. It is a pure, stateless read:
// nothing is cached, and the returned posts are snapshots.
func (s *ContentStore) Posts(q FeedQuery) []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]models.Post, 0, len(s.posts))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for i := range s.posts {
		p := &s.posts[i]
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Content), search) &&
			!strings.Contains(strings.ToLower(p.Author), search) {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.AuthorID != "" && p.AuthorID != q.AuthorID {
			continue
		}
		if q.LikedByID != "" && !p.LikedByUser(q.LikedByID) {
			continue
		}
		filtered = append(filtered, p.Clone())
	}

	// The stored sequence is already newest-first by insertion; the stable
	// sort keeps that order for equal dates.
	switch q.Sort {
	case SortOldest:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Date < filtered[j].Date
		})
	case SortPopularity:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Likes > filtered[j].Likes
		})
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Date > filtered[j].Date
		})
	}

	return filtered
}

// Categories returns the distinct non-empty post categories, trimmed, in
// first-seen order over the stored sequence.
func (s *ContentStore) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	var out []string
	for i := range s.posts {
		c := strings.TrimSpace(s.posts[i].Category)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

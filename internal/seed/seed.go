// Package seed provides the deterministic built-in content used when no
// persisted data exists, plus gofakeit factories for demo data.
package seed

import "inkwell/internal/models"

// Posts returns the built-in sample posts the content store falls back to
// when its namespace key is absent or malformed. The set is fixed: same
// ids, same like counts, empty likedBy and comments, no owning author (so
// nobody can edit or delete them).
//
// The like counts predate per-user like tracking, so they intentionally do
// not match the (empty) likedBy sets; toggles still move the count in
// lockstep from this baseline.
func Posts() []models.Post {
	return []models.Post{
		{
			ID:       1,
			Title:    "Getting Started with Go Modules",
			Content:  "Go modules are the standard way to manage dependencies in Go projects. They let you declare requirements explicitly, reproduce builds, and version your own libraries. In this post we walk through creating a module, adding dependencies, and understanding the go.mod and go.sum files. Modules also make multi-version upgrades predictable and keep builds hermetic without a global workspace.",
			Author:   "John Doe",
			Date:     "2026-01-15",
			Likes:    12,
			Image:    "https://images.unsplash.com/photo-1633356122544-f134324a6cee?w=800&h=600&fit=crop&crop=entropy&auto=format&fm=jpg&q=60",
			Category: "Programming",
			LikedBy:  []string{},
			Comments: []models.Comment{},
		},
		{
			ID:       2,
			Title:    "Understanding State Management",
			Content:  "Centralized state management keeps application data predictable: a single source of truth, explicit mutations, and derived views computed from current state. This post covers how stores, actions, and selectors fit together, and when write-through persistence is enough versus when you need caching and invalidation. The same principles apply whether your store lives in a browser or behind an API.",
			Author:   "Jane Smith",
			Date:     "2026-01-20",
			Likes:    8,
			Image:    "https://images.unsplash.com/photo-1555949963-aa79dcee981c?w=800&h=600&fit=crop&crop=entropy&auto=format&fm=jpg&q=60",
			Category: "Architecture",
			LikedBy:  []string{},
			Comments: []models.Comment{},
		},
		{
			ID:       3,
			Title:    "Designing Clean JSON APIs",
			Content:  "A clean JSON API is consistent, self-describing, and hard to misuse. This post collects practical conventions: stable field naming, explicit error shapes with machine-readable codes, idempotent deletes, and pagination that does not lie. It also covers the trade-offs of partial updates and why your API should never trust caller-supplied identity.",
			Author:   "Mike Johnson",
			Date:     "2026-01-25",
			Likes:    15,
			Image:    "https://images.unsplash.com/photo-1561736778-92e52a7769ef?w=800&h=600&fit=crop&crop=entropy&auto=format&fm=jpg&q=60",
			Category: "API Design",
			LikedBy:  []string{},
			Comments: []models.Comment{},
		},
	}
}

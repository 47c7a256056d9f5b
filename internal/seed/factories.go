package seed

import (
	"context"
	"fmt"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/store"

	"github.com/brianvoe/gofakeit/v6"
)

// FactoryOptions configure demo data generation.
type FactoryOptions struct {
	NumUsers        int
	PostsPerUser    int
	CommentsPerPost int
	LikeChance      float32
	Password        string
}

// DefaultFactoryOptions returns a small but lively demo data set.
func DefaultFactoryOptions() FactoryOptions {
	return FactoryOptions{
		NumUsers:        5,
		PostsPerUser:    3,
		CommentsPerPost: 2,
		LikeChance:      0.4,
		Password:        "password123",
	}
}

var demoCategories = []string{
	"Programming", "Architecture", "API Design", "Databases",
	"Testing", "DevOps", "Career", "Tooling",
}

// Factory builds demo users, posts, comments and likes through the real
// store operations, so everything it writes obeys the same invariants and
// ends up snapshotted in the namespace. Development and testing only.
type Factory struct {
	identity *store.IdentityStore
	content  *store.ContentStore
	opts     FactoryOptions
}

// NewFactory creates a Factory bound to the given stores. Pass a fixed seed
// for reproducible demo data, or 0 to randomize.
func NewFactory(identity *store.IdentityStore, content *store.ContentStore, opts FactoryOptions, seed int64) *Factory {
	if seed != 0 {
		gofakeit.Seed(seed)
	} else {
		gofakeit.Seed(0)
	}
	return &Factory{identity: identity, content: content, opts: opts}
}

// Run generates the demo data set and returns the created users.
func (f *Factory) Run(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0, f.opts.NumUsers)
	for i := 0; i < f.opts.NumUsers; i++ {
		username := fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), gofakeit.Number(10, 99))
		email := fmt.Sprintf("%s@%s", username, gofakeit.DomainName())
		user, err := f.identity.Signup(ctx, username, email, f.opts.Password)
		if err != nil {
			if models.HasCode(err, models.CodeDuplicateEmail) || models.HasCode(err, models.CodeDuplicateUsername) {
				continue
			}
			return nil, fmt.Errorf("seed user %d: %w", i, err)
		}
		users = append(users, *user)
	}

	var postIDs []int64
	for _, u := range users {
		for i := 0; i < f.opts.PostsPerUser; i++ {
			post, err := f.content.AddPost(ctx, u.ID, store.AddPostInput{
				Title:    gofakeit.Sentence(gofakeit.Number(3, 7)),
				Content:  gofakeit.Paragraph(2, 4, 12, "\n\n"),
				Category: demoCategories[gofakeit.Number(0, len(demoCategories)-1)],
			})
			if err != nil {
				return nil, fmt.Errorf("seed post for %s: %w", u.Username, err)
			}
			postIDs = append(postIDs, post.ID)
		}
	}

	for _, id := range postIDs {
		for _, u := range users {
			if gofakeit.Float32Range(0, 1) < f.opts.LikeChance {
				if _, err := f.content.ToggleLike(ctx, u.ID, id); err != nil {
					return nil, fmt.Errorf("seed like: %w", err)
				}
			}
		}
		for i := 0; i < f.opts.CommentsPerPost; i++ {
			commenter := users[gofakeit.Number(0, len(users)-1)]
			if _, err := f.content.AddComment(ctx, commenter.ID, id, gofakeit.Sentence(gofakeit.Number(4, 12))); err != nil {
				return nil, fmt.Errorf("seed comment: %w", err)
			}
		}
	}

	// Signup auto-logs each demo user in; don't leave the last one holding
	// the persisted session.
	if err := f.identity.Logout(ctx); err != nil {
		return nil, fmt.Errorf("seed logout: %w", err)
	}

	return users, nil
}

// Command seed fills a store with demo users, posts, comments and likes.
// It writes through the real store operations, so the generated data obeys
// the same invariants as data created through the API.
package main

import (
	"context"
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/middleware"
	"inkwell/internal/seed"
	"inkwell/internal/storage"
	"inkwell/internal/store"
)

func main() {
	numUsers := flag.Int("users", 5, "number of demo users to create")
	postsPerUser := flag.Int("posts", 3, "posts per user")
	commentsPerPost := flag.Int("comments", 2, "comments per post")
	randSeed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.StorePath == "" {
		log.Fatal("STORE_PATH must point at a file; seeding an in-memory store is pointless")
	}

	logger := middleware.NewLogger(cfg.Env)

	ns, err := storage.OpenSQLite(cfg.StorePath, logger)
	if err != nil {
		log.Fatalf("Failed to open store at %s: %v", cfg.StorePath, err)
	}
	defer ns.Close()

	ctx := context.Background()
	identity, err := store.NewIdentityStore(ctx, ns, logger)
	if err != nil {
		log.Fatalf("Failed to build identity store: %v", err)
	}
	content, err := store.NewContentStore(ctx, ns, identity, seed.Posts(), logger)
	if err != nil {
		log.Fatalf("Failed to build content store: %v", err)
	}

	opts := seed.DefaultFactoryOptions()
	opts.NumUsers = *numUsers
	opts.PostsPerUser = *postsPerUser
	opts.CommentsPerPost = *commentsPerPost

	users, err := seed.NewFactory(identity, content, opts, *randSeed).Run(ctx)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users (password %q) into %s", len(users), opts.Password, cfg.StorePath)
}

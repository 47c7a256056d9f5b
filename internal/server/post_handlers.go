package server

import (
	"inkwell/internal/models"
	"inkwell/internal/store"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts. Query parameters select and order the
// feed: search, category, sort (newest|oldest|popularity), author, likedBy.
// The projection is computed fresh on every call.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	sort := c.Query("sort", store.SortNewest)
	switch sort {
	case store.SortNewest, store.SortOldest, store.SortPopularity:
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("sort must be one of newest, oldest, popularity"))
	}

	posts := s.content.Posts(store.FeedQuery{
		Search:    c.Query("search"),
		Category:  c.Query("category"),
		AuthorID:  c.Query("author"),
		LikedByID: c.Query("likedBy"),
		Sort:      sort,
	})

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, ok := s.content.Post(postID)
	if !ok {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", postID))
	}
	return c.JSON(post)
}

// GetCategories handles GET /api/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories := s.content.Categories()
	if categories == nil {
		categories = []string{}
	}
	return c.JSON(categories)
}

// CreatePost handles POST /api/posts. The author is resolved from the
// authenticated session; any author fields in the body are ignored.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category string `json:"category"`
		Image    string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidatePostFields(req.Title, req.Content, req.Category); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	post, err := s.content.AddPost(c.UserContext(), currentUserID(c), store.AddPostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Image:    req.Image,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id. Absent body fields keep their
// current values; id, date, likes and comments are never editable.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		Category *string `json:"category"`
		Image    *string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Title != nil || req.Content != nil || req.Category != nil {
		title, content, category := s.mergedFields(postID, req.Title, req.Content, req.Category)
		if err := validation.ValidatePostFields(title, content, category); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
	}

	post, err := s.content.EditPost(c.UserContext(), currentUserID(c), postID, store.EditPostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Image:    req.Image,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	if post == nil {
		// The store treats a vanished target as a silent no-op; the API
		// surfaces it.
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", postID))
	}

	return c.JSON(post)
}

// mergedFields previews what an edit would leave in place, so validation
// runs against the post-merge values rather than the sparse request.
func (s *Server) mergedFields(postID int64, title, content, category *string) (string, string, string) {
	mergedTitle, mergedContent, mergedCategory := "", "", ""
	if existing, ok := s.content.Post(postID); ok {
		mergedTitle, mergedContent, mergedCategory = existing.Title, existing.Content, existing.Category
	}
	if title != nil {
		mergedTitle = *title
	}
	if content != nil {
		mergedContent = *content
	}
	if category != nil {
		mergedCategory = *category
	}
	return mergedTitle, mergedContent, mergedCategory
}

// DeletePost handles DELETE /api/posts/:id. Deletion is idempotent: a
// vanished post still yields 204.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.content.DeletePost(c.UserContext(), currentUserID(c), postID); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike handles POST /api/posts/:id/like. The endpoint toggles the like
// state for the (post, user) pair and returns the updated post.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.content.ToggleLike(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	if post == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", postID))
	}

	return c.JSON(post)
}

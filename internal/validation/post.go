package validation

import (
	"fmt"
	"strings"
)

const (
	maxTitleLen    = 300
	maxContentLen  = 50000
	maxCategoryLen = 50
	// MaxCommentLen bounds comment text after trimming.
	MaxCommentLen = 500
)

// ValidatePostFields checks the caller-supplied fields of a new post.
func ValidatePostFields(title, content, category string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > maxTitleLen {
		return fmt.Errorf("title too long (max %d characters)", maxTitleLen)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content is required")
	}
	if len(content) > maxContentLen {
		return fmt.Errorf("content too long (max %d characters)", maxContentLen)
	}
	if len(category) > maxCategoryLen {
		return fmt.Errorf("category too long (max %d characters)", maxCategoryLen)
	}
	return nil
}

// ValidateCommentText trims the text and checks its bounds, returning the
// trimmed value the store should receive.
func ValidateCommentText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", fmt.Errorf("comment text is required")
	}
	if len(trimmed) > MaxCommentLen {
		return "", fmt.Errorf("comment too long (max %d characters)", MaxCommentLen)
	}
	return trimmed, nil
}

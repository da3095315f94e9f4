package laravel

import (
	"context"

	"github.com/maxwelladwale/coltech/internal/domain/content"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
)

var _ content.BlogService = BlogService{}

// BlogService is a placeholder until the Laravel API exposes posts
type BlogService struct{}

func (BlogService) GetPosts(context.Context, content.PostFilter) ([]content.BlogPost, error) {
	return []content.BlogPost{}, nil
}

func (BlogService) GetPostBySlug(context.Context, string) (*content.BlogPost, error) {
	return nil, shared.ErrNotFound
}

func (BlogService) GetRecentPosts(context.Context, int) ([]content.BlogPost, error) {
	return []content.BlogPost{}, nil
}

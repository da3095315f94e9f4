package mock

import (
	"context"
	"sort"
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/content"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
)

// DefaultRecentPosts is used when GetRecentPosts is called without a limit
const DefaultRecentPosts = 3

// BlogService serves seeded posts, newest first
type BlogService struct {
	posts []content.BlogPost
}

var _ content.BlogService = (*BlogService)(nil)

// NewBlogService creates a BlogService
func NewBlogService() *BlogService {
	posts := seedPosts(time.Now())
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
	return &BlogService{posts: posts}
}

// GetPosts lists posts with an optional tag filter and limit
func (s *BlogService) GetPosts(_ context.Context, filter content.PostFilter) ([]content.BlogPost, error) {
	result := make([]content.BlogPost, 0, len(s.posts))
	for i := range s.posts {
		if filter.Tag != "" && !s.posts[i].HasTag(filter.Tag) {
			continue
		}
		result = append(result, s.posts[i])
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
	}
	return result, nil
}

// GetPostBySlug returns a post or shared.ErrNotFound
func (s *BlogService) GetPostBySlug(_ context.Context, slug string) (*content.BlogPost, error) {
	for _, p := range s.posts {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, shared.ErrNotFound
}

// GetRecentPosts returns the newest posts
func (s *BlogService) GetRecentPosts(ctx context.Context, limit int) ([]content.BlogPost, error) {
	if limit <= 0 {
		limit = DefaultRecentPosts
	}
	return s.GetPosts(ctx, content.PostFilter{Limit: limit})
}

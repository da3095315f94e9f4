package content

import (
	"context"
	"strings"
	"time"
)

// BlogPost is a published article
type BlogPost struct {
	ID            string
	Title         string
	Slug          string
	Excerpt       string
	Content       string
	FeaturedImage string
	Author        string
	PublishedAt   time.Time
	Tags          []string
}

// HasTag reports whether the post carries tag (case-insensitive)
func (p *BlogPost) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// PostFilter narrows the post listing
type PostFilter struct {
	Tag   string
	Limit int
}

// BlogService is the backend contract for blog content
type BlogService interface {
	GetPosts(ctx context.Context, filter PostFilter) ([]BlogPost, error)
	GetPostBySlug(ctx context.Context, slug string) (*BlogPost, error)
	GetRecentPosts(ctx context.Context, limit int) ([]BlogPost, error)
}

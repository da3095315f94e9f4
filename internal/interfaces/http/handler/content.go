package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxwelladwale/coltech/internal/application/contact"
	"github.com/maxwelladwale/coltech/internal/domain/content"
	"github.com/maxwelladwale/coltech/internal/interfaces/http/dto"
)

const defaultRecentPosts = 3

// PostsQuery filters the blog listing
type PostsQuery struct {
	Tag   string `form:"tag" binding:"omitempty,max=50"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=50"`
}

// RecentPostsQuery limits the recent posts listing
type RecentPostsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=20"`
}

// PostResponse represents a blog post in API responses
type PostResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content,omitempty"`
	FeaturedImage string    `json:"featured_image,omitempty"`
	Author        string    `json:"author"`
	PublishedAt   time.Time `json:"published_at"`
	Tags          []string  `json:"tags"`
}

func toPostResponse(p *content.BlogPost, withBody bool) PostResponse {
	resp := PostResponse{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		FeaturedImage: p.FeaturedImage,
		Author:        p.Author,
		PublishedAt:   p.PublishedAt,
		Tags:          p.Tags,
	}
	if withBody {
		resp.Content = p.Content
	}
	return resp
}

func toPostResponses(posts []content.BlogPost) []PostResponse {
	out := make([]PostResponse, len(posts))
	for i := range posts {
		out[i] = toPostResponse(&posts[i], false)
	}
	return out
}

// ContentHandler serves the blog and the contact form
type ContentHandler struct {
	BaseHandler
	blog    content.BlogService
	contact *contact.Service
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(blog content.BlogService, contactService *contact.Service) *ContentHandler {
	return &ContentHandler{blog: blog, contact: contactService}
}

// ListPosts godoc
// @Summary      List blog posts
// @Tags         content
// @Produce      json
// @Param        tag   query string false "Tag"
// @Param        limit query int    false "Maximum posts"
// @Success      200 {object} dto.Response{data=[]PostResponse}
// @Router       /blog/posts [get]
func (h *ContentHandler) ListPosts(c *gin.Context) {
	var query PostsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	posts, err := h.blog.GetPosts(c.Request.Context(), content.PostFilter{Tag: query.Tag, Limit: query.Limit})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toPostResponses(posts))
}

// RecentPosts lists the newest posts
func (h *ContentHandler) RecentPosts(c *gin.Context) {
	var query RecentPostsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}
	if query.Limit == 0 {
		query.Limit = defaultRecentPosts
	}

	posts, err := h.blog.GetRecentPosts(c.Request.Context(), query.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toPostResponses(posts))
}

// GetPost returns one post with its body
func (h *ContentHandler) GetPost(c *gin.Context) {
	post, err := h.blog.GetPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toPostResponse(post, true))
}

// SubmitContact godoc
// @Summary      Send a message to the sales team
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        request body contact.SubmitRequest true "Contact form"
// @Success      202 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /contact [post]
func (h *ContentHandler) SubmitContact(c *gin.Context) {
	var req contact.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.contact.Submit(c.Request.Context(), req.ToMessage()); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(gin.H{"message": "Thanks, we will get back to you shortly"}))
}

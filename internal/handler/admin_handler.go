package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ngektech/patangenotes.in/internal/service"
)

// postDraft carries the editable fields of a post. Updates resend the
// whole draft; fields left out fall back to their zero values.
type postDraft struct {
	Title         string   `json:"title"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	FeaturedImage string   `json:"featured_image"`
	Sources       []string `json:"sources"`
	IsFeatured    bool     `json:"is_featured"`
}

func (a *API) draftToInput(c *gin.Context, draft postDraft) service.PostInput {
	input := service.PostInput{
		Title:         draft.Title,
		Excerpt:       draft.Excerpt,
		Content:       draft.Content,
		Category:      draft.Category,
		Tags:          draft.Tags,
		FeaturedImage: draft.FeaturedImage,
		Sources:       draft.Sources,
		IsFeatured:    draft.IsFeatured,
	}
	if identity, ok := identityFromContext(c); ok {
		input.Author = identity.Email
	}
	return input
}

// CreatePost creates a new post from a full draft.
func (a *API) CreatePost(c *gin.Context) {
	var draft postDraft
	if !bindJSON(c, &draft, "invalid post payload") {
		return
	}

	post, err := a.posts.Create(a.draftToInput(c, draft))
	if err != nil {
		if errors.Is(err, service.ErrDraftIncomplete) || errors.Is(err, service.ErrUnknownCategory) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to create post")
		return
	}

	c.JSON(http.StatusOK, post)
}

// UpdatePost replaces the editable fields of an existing post.
func (a *API) UpdatePost(c *gin.Context) {
	var draft postDraft
	if !bindJSON(c, &draft, "invalid post payload") {
		return
	}

	post, err := a.posts.Update(c.Param("id"), a.draftToInput(c, draft))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			respondError(c, http.StatusNotFound, "post not found")
		case errors.Is(err, service.ErrDraftIncomplete), errors.Is(err, service.ErrUnknownCategory):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "failed to update post")
		}
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost removes a post. A second delete of the same id is not found.
func (a *API) DeletePost(c *gin.Context) {
	if err := a.posts.Delete(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete post")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAdminPosts lists every post, unfiltered, newest first.
func (a *API) GetAdminPosts(c *gin.Context) {
	posts, err := a.posts.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "total": len(posts)})
}

// GetStats aggregates counters for the admin overview. The category count
// covers categories in use, not the full allowed set.
func (a *API) GetStats(c *gin.Context) {
	totalPosts, err := a.posts.Count()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load stats")
		return
	}

	totalSubscribers, err := a.subscribers.Count()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load stats")
		return
	}

	categories, err := a.posts.Categories()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_posts":       totalPosts,
		"total_subscribers": totalSubscribers,
		"total_categories":  len(categories),
	})
}

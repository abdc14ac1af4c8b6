package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ngektech/patangenotes.in/internal/service"
)

// Health reports service liveness.
func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "PatangeNotes API",
	})
}

// GetPosts lists posts for public readers. All filters are optional and
// conjunctive; unknown category or tag values simply match nothing.
func (a *API) GetPosts(c *gin.Context) {
	filter := service.PostFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Tag:      strings.TrimSpace(c.Query("tag")),
		Search:   strings.TrimSpace(c.Query("search")),
		Featured: parseBoolQuery(c, "featured"),
		Limit:    parseIntQuery(c, "limit", 20),
		Skip:     parseIntQuery(c, "skip", 0),
	}

	result, err := a.posts.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": result.Posts, "total": result.Total})
}

// GetPost fetches a single post by id.
func (a *API) GetPost(c *gin.Context) {
	post, err := a.posts.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load post")
		return
	}

	c.JSON(http.StatusOK, post)
}

// GetCategories returns the categories currently used by at least one
// post, sorted ascending.
func (a *API) GetCategories(c *gin.Context) {
	categories, err := a.posts.Categories()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetTags returns the tags currently used across all posts, sorted
// ascending.
func (a *API) GetTags(c *gin.Context) {
	tags, err := a.posts.TagNames()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load tags")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

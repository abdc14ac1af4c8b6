package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ngektech/patangenotes.in/internal/service"
)

type subscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

// SubscribeNewsletter records a newsletter signup. Subscribing twice with
// the same address, in any casing, succeeds without a second row.
func (a *API) SubscribeNewsletter(c *gin.Context) {
	var req subscribeRequest
	if !bindJSON(c, &req, "email is required") {
		return
	}

	_, created, err := a.subscribers.Subscribe(req.Email)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			respondError(c, http.StatusBadRequest, "email address is not valid")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to subscribe")
		return
	}

	message := "Successfully subscribed"
	if !created {
		message = "Already subscribed"
	}

	c.JSON(http.StatusOK, gin.H{"message": message, "subscribed": true})
}

// GetSubscribers lists every newsletter subscriber for the admin surface.
func (a *API) GetSubscribers(c *gin.Context) {
	subscribers, err := a.subscribers.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list subscribers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscribers": subscribers, "total": len(subscribers)})
}

package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies the admin credential and returns a bearer token. Unknown
// email and wrong password produce the same response.
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, "email and password are required") {
		return
	}

	identity, err := a.auth.VerifyCredentials(req.Email, req.Password)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := a.auth.IssueToken(*identity)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// VerifyAuth confirms that the presented token is still valid. The gate
// has already verified it by the time this runs.
func (a *API) VerifyAuth(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"email":         identity.Email,
	})
}

// AuthRequired guards admin-only routes. Every failure mode (missing
// header, malformed header, bad signature, expired token) collapses into
// one uniform unauthorized response, on which clients are expected to
// drop their cached token and re-authenticate.
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			respondError(c, http.StatusUnauthorized, "unauthorized")
			c.Abort()
			return
		}

		identity, err := a.auth.VerifyToken(strings.TrimSpace(token))
		if err != nil {
			respondError(c, http.StatusUnauthorized, "unauthorized")
			c.Abort()
			return
		}

		c.Set(identityContextKey, *identity)
		c.Next()
	}
}

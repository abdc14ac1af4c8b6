package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ngektech/patangenotes.in/internal/config"
	"github.com/ngektech/patangenotes.in/internal/service"
	"gorm.io/gorm"
)

const identityContextKey = "__admin_identity"

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db          *gorm.DB
	posts       *service.PostService
	subscribers *service.SubscriberService
	auth        *service.AuthService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, cfg config.AppConfig) *API {
	return &API{
		db:          gdb,
		posts:       service.NewPostService(gdb, cfg.AuthorName),
		subscribers: service.NewSubscriberService(gdb),
		auth:        service.NewAuthService(gdb, cfg.JWTSecret, cfg.TokenTTL),
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

func identityFromContext(c *gin.Context) (service.AdminIdentity, bool) {
	value, exists := c.Get(identityContextKey)
	if !exists {
		return service.AdminIdentity{}, false
	}
	identity, ok := value.(service.AdminIdentity)
	return identity, ok
}

package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ngektech/patangenotes.in/internal/config"
	"github.com/ngektech/patangenotes.in/internal/handler"
)

// SetupRouter configures the Gin engine and the API route table.
func SetupRouter(api *handler.API, cfg config.AppConfig) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", api.Health)

		// Public reads
		apiGroup.GET("/posts", api.GetPosts)
		apiGroup.GET("/posts/:id", api.GetPost)
		apiGroup.GET("/categories", api.GetCategories)
		apiGroup.GET("/tags", api.GetTags)

		// Newsletter signup
		apiGroup.POST("/newsletter/subscribe", api.SubscribeNewsletter)

		// Auth
		apiGroup.POST("/auth/login", api.Login)

		// Admin routes behind the bearer-token gate
		auth := apiGroup.Group("")
		auth.Use(api.AuthRequired())
		{
			auth.GET("/auth/verify", api.VerifyAuth)

			admin := auth.Group("/admin")
			{
				admin.GET("/posts", api.GetAdminPosts)
				admin.POST("/posts", api.CreatePost)
				admin.PUT("/posts/:id", api.UpdatePost)
				admin.DELETE("/posts/:id", api.DeletePost)
				admin.GET("/stats", api.GetStats)
				admin.GET("/newsletter/subscribers", api.GetSubscribers)
			}
		}
	}

	return r
}

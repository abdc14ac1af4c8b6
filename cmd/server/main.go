package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/ngektech/patangenotes.in/internal/config"
	"github.com/ngektech/patangenotes.in/internal/db"
	"github.com/ngektech/patangenotes.in/internal/handler"
	"github.com/ngektech/patangenotes.in/internal/router"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if err := db.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to ensure admin account: %v", err)
	}

	api := handler.NewAPI(db.DB, cfg)
	r := router.SetupRouter(api, cfg)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

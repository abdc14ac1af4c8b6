package service

import (
	"fmt"
	"testing"

	"github.com/ngektech/patangenotes.in/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Admin{}, &db.Post{}, &db.Subscriber{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return gdb
}

func validDraft() PostInput {
	return PostInput{
		Title:    "On Attention",
		Excerpt:  "Why attention is the scarcest resource.",
		Content:  "Attention is the substrate of every deliberate act.",
		Category: "Meditation",
		Tags:     []string{"focus", "mind"},
		Sources:  []string{"https://example.com/paper"},
	}
}

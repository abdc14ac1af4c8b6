package db

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&Admin{}, &Post{}, &Subscriber{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	DB = gdb
	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
		DB = nil
	})
}

func TestEnsureAdminCreatesHashedAccount(t *testing.T) {
	setupTestDB(t)

	if err := EnsureAdmin("Author@PatangeNotes.in", "s3cret"); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}

	var admin Admin
	if err := DB.First(&admin).Error; err != nil {
		t.Fatalf("failed to load admin: %v", err)
	}

	if admin.Email != "author@patangenotes.in" {
		t.Fatalf("expected normalized email, got %q", admin.Email)
	}

	if admin.Password == "s3cret" {
		t.Fatal("password stored in plaintext")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	setupTestDB(t)

	if err := EnsureAdmin("author@patangenotes.in", "s3cret"); err != nil {
		t.Fatalf("first EnsureAdmin failed: %v", err)
	}
	if err := EnsureAdmin("author@patangenotes.in", "different"); err != nil {
		t.Fatalf("second EnsureAdmin failed: %v", err)
	}

	var count int64
	DB.Model(&Admin{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 admin, got %d", count)
	}

	var admin Admin
	DB.First(&admin)
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("s3cret")); err != nil {
		t.Fatal("existing credential was overwritten")
	}
}

func TestEnsureAdminSkipsBlankValues(t *testing.T) {
	setupTestDB(t)

	if err := EnsureAdmin("", ""); err != nil {
		t.Fatalf("EnsureAdmin with blank values failed: %v", err)
	}

	var count int64
	DB.Model(&Admin{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no admin, got %d", count)
	}
}

package repository

import (
	"testing"

	"commune/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Member{},
		&models.Friendship{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func createTestMember(t *testing.T, db *gorm.DB, email string) *models.Member {
	t.Helper()
	m := &models.Member{
		Email:     email,
		Password:  "hashed-password",
		FirstName: "Test",
		LastName:  "Member",
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("create member %s: %v", email, err)
	}
	return m
}

func createTestPost(t *testing.T, db *gorm.DB, authorID uint, content string) *models.Post {
	t.Helper()
	p := &models.Post{AuthorID: authorID, Content: content}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}

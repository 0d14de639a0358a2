// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents authored content owned by exactly one member.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Author   Member `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`

	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the requesting member liked this post (computed)
	Liked bool `gorm:"->" json:"is_liked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Post) TableName() string {
	return "posts"
}

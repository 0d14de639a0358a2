// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Member represents a registered member of the network.
type Member struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null;size:254" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	FirstName string    `gorm:"not null;size:150" json:"first_name"`
	LastName  string    `gorm:"not null;size:150" json:"last_name"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Avatar    string    `gorm:"size:500" json:"avatar"`
	City      string    `gorm:"size:100" json:"city"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// FriendsCount is not persisted; computed at query time
	FriendsCount int `gorm:"->" json:"friends_count"`
	// IsFriend indicates whether the requesting member has added this member (computed)
	IsFriend bool `gorm:"->" json:"is_friend"`

	Posts []Post `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}

// TableName specifies the table name for GORM
func (Member) TableName() string {
	return "members"
}

// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Friendship is a directed edge recording that a member added a friend.
// No reciprocal edge is created; (member, friend) is unique as an ordered pair.
type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  uint      `gorm:"not null;uniqueIndex:idx_member_friend" json:"member_id"`
	FriendID  uint      `gorm:"not null;uniqueIndex:idx_member_friend;index" json:"friend_id"`
	CreatedAt time.Time `json:"created_at"`

	Member Member `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"member,omitempty"`
	Friend Member `gorm:"foreignKey:FriendID;constraint:OnDelete:CASCADE" json:"friend,omitempty"`
}

// TableName specifies the table name for GORM
func (Friendship) TableName() string {
	return "friendships"
}

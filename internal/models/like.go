package models

import (
	"time"
)

// Like represents a member's like on a post.
// The combination of MemberID and PostID must be unique; the composite
// index is what keeps concurrent like toggles race-free.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  uint      `gorm:"not null;uniqueIndex:idx_member_post" json:"member_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_member_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	Member Member `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"member,omitempty"`
	Post   Post   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post,omitempty"`
}

// TableName specifies the table name for GORM
func (Like) TableName() string {
	return "likes"
}

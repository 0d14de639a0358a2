// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"fmt"
	"time"

	"commune/internal/models"

	"gorm.io/gorm"
)

// Edge describes a relationship table: a directed link from an owner row
// to a target row with a composite unique index on the pair. Friendships
// and likes share this shape, so one repository serves both.
type Edge struct {
	Table     string
	OwnerCol  string
	TargetCol string
}

var (
	// FriendshipEdge is the directed member-to-member follow link.
	FriendshipEdge = Edge{Table: "friendships", OwnerCol: "member_id", TargetCol: "friend_id"}
	// LikeEdge is the member-to-post like link.
	LikeEdge = Edge{Table: "likes", OwnerCol: "member_id", TargetCol: "post_id"}
)

// RelationRepository defines persistence operations for toggleable edges.
type RelationRepository interface {
	Exists(ctx context.Context, e Edge, ownerID, targetID uint) (bool, error)
	// Insert adds the edge if absent. Returns false when a concurrent
	// request already created it; the edge is present either way.
	Insert(ctx context.Context, e Edge, ownerID, targetID uint) (bool, error)
	// Delete removes the edge if present. Returns false when a concurrent
	// request already removed it; the edge is absent either way.
	Delete(ctx context.Context, e Edge, ownerID, targetID uint) (bool, error)
	// CountForTarget counts edges pointing at the target row.
	CountForTarget(ctx context.Context, e Edge, targetID uint) (int64, error)
}

type relationRepository struct {
	db *gorm.DB
}

// NewRelationRepository returns a new RelationRepository implementation.
func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

func (r *relationRepository) Exists(ctx context.Context, e Edge, ownerID, targetID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table(e.Table).
		Where(fmt.Sprintf("%s = ? AND %s = ?", e.OwnerCol, e.TargetCol), ownerID, targetID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *relationRepository) Insert(ctx context.Context, e Edge, ownerID, targetID uint) (bool, error) {
	// INSERT ... ON CONFLICT DO NOTHING makes concurrent toggles race-safe:
	// the unique index arbitrates and the loser sees zero rows affected
	// instead of a duplicate key error.
	result := r.db.WithContext(ctx).Exec(
		fmt.Sprintf(
			`INSERT INTO %s (%s, %s, created_at)
			 VALUES (?, ?, ?)
			 ON CONFLICT (%s, %s) DO NOTHING`,
			e.Table, e.OwnerCol, e.TargetCol, e.OwnerCol, e.TargetCol,
		),
		ownerID, targetID, time.Now(),
	)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *relationRepository) Delete(ctx context.Context, e Edge, ownerID, targetID uint) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		fmt.Sprintf(`DELETE FROM %s WHERE %s = ? AND %s = ?`, e.Table, e.OwnerCol, e.TargetCol),
		ownerID, targetID,
	)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *relationRepository) CountForTarget(ctx context.Context, e Edge, targetID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table(e.Table).
		Where(fmt.Sprintf("%s = ?", e.TargetCol), targetID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

package repository

import (
	"context"
	"errors"
	"strings"

	"commune/internal/cache"
	"commune/internal/models"

	"gorm.io/gorm"
)

// MemberRepository defines persistence operations for members.
type MemberRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Member, error)
	// GetProfile loads a member with friends_count and is_friend computed
	// relative to the viewer. Never served from cache: is_friend is
	// viewer-specific.
	GetProfile(ctx context.Context, id uint, viewerID uint) (*models.Member, error)
	GetByEmail(ctx context.Context, email string) (*models.Member, error)
	Create(ctx context.Context, member *models.Member) error
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, search string, limit, offset int, viewerID uint) ([]models.Member, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository returns a new MemberRepository implementation.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// GetByID reads through the member cache. This is the session resolver's
// hot path: one call per authenticated request.
func (r *memberRepository) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	key := cache.MemberKey(id)

	err := cache.Aside(ctx, key, &member, cache.MemberTTL, func() error {
		if err := r.db.WithContext(ctx).First(&member, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Member", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) GetProfile(ctx context.Context, id uint, viewerID uint) (*models.Member, error) {
	var member models.Member
	if err := r.applyMemberDetails(r.db.WithContext(ctx), viewerID).
		First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Member", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &member, nil
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &member, nil
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("A member with this email already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// Update persists profile fields only. The member may have been read
// through the JSON cache, which never carries the password hash, so a
// full-row Save here would overwrite the stored hash with "".
func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	err := r.db.WithContext(ctx).
		Model(member).
		Select("first_name", "last_name", "bio", "avatar", "city", "updated_at").
		Updates(member).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateMember(ctx, member.ID)
	return nil
}

func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Member{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateMember(ctx, id)
	return nil
}

func (r *memberRepository) List(ctx context.Context, search string, limit, offset int, viewerID uint) ([]models.Member, error) {
	var members []models.Member
	query := r.applyMemberDetails(r.db.WithContext(ctx), viewerID)

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	if err := query.
		Order("members.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&members).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return members, nil
}

func (r *memberRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// applyMemberDetails adds subqueries to fetch friends_count and is_friend
// in a single query.
func (r *memberRepository) applyMemberDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "members.*, " +
		"(SELECT COUNT(*) FROM friendships WHERE friendships.member_id = members.id) as friends_count"

	if viewerID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM friendships WHERE friendships.member_id = ? AND friendships.friend_id = members.id) as is_friend", viewerID)
	}

	return db.Select(selectQuery + ", false as is_friend")
}

package repository

import (
	"context"
	"testing"

	"commune/internal/cache"
	"commune/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberRepository_CreateAndGet(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	member := &models.Member{
		Email:     "alice@example.com",
		Password:  "hashed",
		FirstName: "Alice",
		LastName:  "Anders",
		City:      "Amsterdam",
	}
	require.NoError(t, repo.Create(ctx, member))
	require.NotZero(t, member.ID)

	got, err := repo.GetByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "Alice", got.FirstName)
}

func TestMemberRepository_DuplicateEmail(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Member{
		Email: "dup@example.com", Password: "x", FirstName: "A", LastName: "B",
	}))

	err := repo.Create(ctx, &models.Member{
		Email: "dup@example.com", Password: "x", FirstName: "C", LastName: "D",
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestMemberRepository_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewMemberRepository(db)

	_, err := repo.GetByID(context.Background(), 999)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestMemberRepository_GetByEmail_MissingIsNil(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewMemberRepository(db)

	got, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemberRepository_GetProfile_Annotations(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewMemberRepository(db)
	relations := NewRelationRepository(db)
	ctx := context.Background()

	alice := createTestMember(t, db, "alice@example.com")
	bob := createTestMember(t, db, "bob@example.com")
	carol := createTestMember(t, db, "carol@example.com")

	// Bob added two friends; Alice added Bob.
	_, err := relations.Insert(ctx, FriendshipEdge, bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = relations.Insert(ctx, FriendshipEdge, bob.ID, carol.ID)
	require.NoError(t, err)
	_, err = relations.Insert(ctx, FriendshipEdge, alice.ID, bob.ID)
	require.NoError(t, err)

	profile, err := repo.GetProfile(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, profile.FriendsCount)
	assert.True(t, profile.IsFriend, "alice added bob")

	// Carol never added Bob, so from her side is_friend is false.
	profile, err = repo.GetProfile(ctx, bob.ID, carol.ID)
	require.NoError(t, err)
	assert.False(t, profile.IsFriend)
}

func TestMemberRepository_ListSearch(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	for _, m := range []*models.Member{
		{Email: "ada@example.com", Password: "x", FirstName: "Ada", LastName: "Lovelace"},
		{Email: "grace@example.com", Password: "x", FirstName: "Grace", LastName: "Hopper"},
		{Email: "linus@example.com", Password: "x", FirstName: "Linus", LastName: "Torvalds"},
	} {
		require.NoError(t, db.Create(m).Error)
	}

	results, err := repo.List(ctx, "lovelace", 20, 0, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Ada", results[0].FirstName)

	// Case-insensitive and matches email too.
	results, err = repo.List(ctx, "GRACE", 20, 0, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Hopper", results[0].LastName)

	results, err = repo.List(ctx, "", 20, 0, 0)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

// Not parallel: swaps the package-level cache client.
func TestMemberRepository_UpdateWithCacheActive(t *testing.T) {
	db := setupTestDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(rdb)
	t.Cleanup(func() {
		cache.SetClient(nil)
		rdb.Close()
	})

	repo := NewMemberRepository(db)
	ctx := context.Background()

	member := createTestMember(t, db, "alice@example.com")
	storedHash := member.Password

	// First read warms the cache, second is served from it. The cached
	// JSON never carries the password hash.
	_, err := repo.GetByID(ctx, member.ID)
	require.NoError(t, err)
	cached, err := repo.GetByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Empty(t, cached.Password)

	// Updating the cache-served copy must not touch the stored hash.
	cached.Bio = "gardener, occasional poet"
	require.NoError(t, repo.Update(ctx, cached))

	var fresh models.Member
	require.NoError(t, db.First(&fresh, member.ID).Error)
	assert.Equal(t, storedHash, fresh.Password)
	assert.Equal(t, "gardener, occasional poet", fresh.Bio)

	// The update invalidated the cached copy.
	assert.False(t, mr.Exists(cache.MemberKey(member.ID)))
}

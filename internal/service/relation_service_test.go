package service

import (
	"context"
	"testing"

	"commune/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationService_ToggleFriendship_SelfReference(t *testing.T) {
	t.Parallel()

	svc := NewRelationService(noopRelationRepo(), noopMemberRepo(), noopPostRepo())

	_, err := svc.ToggleFriendship(context.Background(), 7, 7)
	assertAppError(t, err, "INVALID_SELF_REFERENCE")
}

func TestRelationService_ToggleFriendship_TargetNotFound(t *testing.T) {
	t.Parallel()

	members := noopMemberRepo()
	members.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
	svc := NewRelationService(noopRelationRepo(), members, noopPostRepo())

	_, err := svc.ToggleFriendship(context.Background(), 1, 999)
	assertAppError(t, err, "NOT_FOUND")
}

func TestRelationService_ToggleLike_PostNotFound(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
	svc := NewRelationService(noopRelationRepo(), noopMemberRepo(), posts)

	_, _, err := svc.ToggleLike(context.Background(), 1, 999)
	assertAppError(t, err, "NOT_FOUND")
}

func TestRelationService_Toggle_AddThenRemove(t *testing.T) {
	t.Parallel()

	present := false
	relations := &relationRepoStub{
		existsFn: func(_ context.Context, _ repository.Edge, _, _ uint) (bool, error) {
			return present, nil
		},
		insertFn: func(_ context.Context, _ repository.Edge, _, _ uint) (bool, error) {
			present = true
			return true, nil
		},
		deleteFn: func(_ context.Context, _ repository.Edge, _, _ uint) (bool, error) {
			present = false
			return true, nil
		},
		countForTargetFn: func(_ context.Context, _ repository.Edge, _ uint) (int64, error) { return 0, nil },
	}
	svc := NewRelationService(relations, noopMemberRepo(), noopPostRepo())
	ctx := context.Background()

	isFriend, err := svc.ToggleFriendship(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, isFriend)

	isFriend, err = svc.ToggleFriendship(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, isFriend)

	isFriend, err = svc.ToggleFriendship(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, isFriend)
}

func TestRelationService_Toggle_InsertConflictStillPresent(t *testing.T) {
	t.Parallel()

	relations := noopRelationRepo()
	// A concurrent request won the insert; ours hit the unique index.
	relations.insertFn = func(_ context.Context, _ repository.Edge, _, _ uint) (bool, error) {
		return false, nil
	}
	svc := NewRelationService(relations, noopMemberRepo(), noopPostRepo())

	isFriend, err := svc.ToggleFriendship(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, isFriend, "edge is present even when another request created it")
}

func TestRelationService_Toggle_DeleteRaceStillAbsent(t *testing.T) {
	t.Parallel()

	relations := noopRelationRepo()
	relations.existsFn = func(_ context.Context, _ repository.Edge, _, _ uint) (bool, error) {
		return true, nil
	}
	// A concurrent request removed the edge between our check and delete.
	relations.deleteFn = func(_ context.Context, _ repository.Edge, _, _ uint) (bool, error) {
		return false, nil
	}
	svc := NewRelationService(relations, noopMemberRepo(), noopPostRepo())

	isFriend, err := svc.ToggleFriendship(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, isFriend, "edge is absent even when another request removed it")
}

func TestRelationService_ToggleLike_ReturnsCount(t *testing.T) {
	t.Parallel()

	relations := noopRelationRepo()
	relations.countForTargetFn = func(_ context.Context, e repository.Edge, targetID uint) (int64, error) {
		assert.Equal(t, repository.LikeEdge, e)
		assert.Equal(t, uint(5), targetID)
		return 3, nil
	}
	svc := NewRelationService(relations, noopMemberRepo(), noopPostRepo())

	liked, count, err := svc.ToggleLike(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(3), count)
}

func TestRelationService_SelfLikeIsAllowed(t *testing.T) {
	t.Parallel()

	// Liking your own post is fine; the self-reference rule only guards
	// member-to-member edges.
	svc := NewRelationService(noopRelationRepo(), noopMemberRepo(), noopPostRepo())

	liked, _, err := svc.ToggleLike(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.True(t, liked)
}

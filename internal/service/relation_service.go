package service

import (
	"context"
	"strconv"

	"commune/internal/middleware"
	"commune/internal/models"
	"commune/internal/repository"
)

// EdgeKind names a toggleable relationship.
type EdgeKind string

const (
	// EdgeFriendship is the directed member-to-member link. Adding someone
	// does not add you back.
	EdgeFriendship EdgeKind = "friendship"
	// EdgeLike is the member-to-post like link.
	EdgeLike EdgeKind = "like"
)

// ToggleInput identifies the edge to flip.
type ToggleInput struct {
	ActorID  uint
	TargetID uint
	Kind     EdgeKind
}

// ToggleResult reports the edge state after the flip.
type ToggleResult struct {
	Present bool
}

// RelationService flips relationship edges idempotently. Friendships and
// likes run through the same engine: check current state, then invert it.
// Concurrent flips of the same edge are arbitrated by the unique index,
// so two simultaneous "add" requests both land on present=true and two
// simultaneous "remove" requests both land on present=false.
type RelationService struct {
	relationRepo repository.RelationRepository
	memberRepo   repository.MemberRepository
	postRepo     repository.PostRepository
}

func NewRelationService(
	relationRepo repository.RelationRepository,
	memberRepo repository.MemberRepository,
	postRepo repository.PostRepository,
) *RelationService {
	return &RelationService{
		relationRepo: relationRepo,
		memberRepo:   memberRepo,
		postRepo:     postRepo,
	}
}

// Toggle flips the edge and returns its resulting state.
func (s *RelationService) Toggle(ctx context.Context, in ToggleInput) (*ToggleResult, error) {
	edge, err := s.validateTarget(ctx, in)
	if err != nil {
		return nil, err
	}

	exists, err := s.relationRepo.Exists(ctx, edge, in.ActorID, in.TargetID)
	if err != nil {
		return nil, err
	}

	var present bool
	if exists {
		// A concurrent toggle may have removed the edge already. Either
		// way it is absent now, which is what this request wanted.
		if _, err := s.relationRepo.Delete(ctx, edge, in.ActorID, in.TargetID); err != nil {
			return nil, err
		}
		present = false
	} else {
		// Insert reports false on conflict: another request created the
		// edge first. The edge is present either way.
		if _, err := s.relationRepo.Insert(ctx, edge, in.ActorID, in.TargetID); err != nil {
			return nil, err
		}
		present = true
	}

	middleware.RelationToggles.WithLabelValues(string(in.Kind), strconv.FormatBool(present)).Inc()
	return &ToggleResult{Present: present}, nil
}

// ToggleFriendship flips the actor's outgoing friendship edge and returns
// whether the target is now a friend.
func (s *RelationService) ToggleFriendship(ctx context.Context, actorID, targetID uint) (bool, error) {
	result, err := s.Toggle(ctx, ToggleInput{ActorID: actorID, TargetID: targetID, Kind: EdgeFriendship})
	if err != nil {
		return false, err
	}
	return result.Present, nil
}

// ToggleLike flips the actor's like on a post and returns the resulting
// liked state with the post's like count.
func (s *RelationService) ToggleLike(ctx context.Context, actorID, postID uint) (bool, int64, error) {
	result, err := s.Toggle(ctx, ToggleInput{ActorID: actorID, TargetID: postID, Kind: EdgeLike})
	if err != nil {
		return false, 0, err
	}

	count, err := s.relationRepo.CountForTarget(ctx, repository.LikeEdge, postID)
	if err != nil {
		return false, 0, err
	}
	return result.Present, count, nil
}

// validateTarget rejects self-referential member edges and verifies the
// target row exists before touching the edge table.
func (s *RelationService) validateTarget(ctx context.Context, in ToggleInput) (repository.Edge, error) {
	switch in.Kind {
	case EdgeFriendship:
		if in.ActorID == in.TargetID {
			return repository.Edge{}, models.NewSelfReferenceError("You cannot add yourself as a friend")
		}
		exists, err := s.memberRepo.Exists(ctx, in.TargetID)
		if err != nil {
			return repository.Edge{}, err
		}
		if !exists {
			return repository.Edge{}, models.NewNotFoundError("Member", in.TargetID)
		}
		return repository.FriendshipEdge, nil

	case EdgeLike:
		exists, err := s.postRepo.Exists(ctx, in.TargetID)
		if err != nil {
			return repository.Edge{}, err
		}
		if !exists {
			return repository.Edge{}, models.NewNotFoundError("Post", in.TargetID)
		}
		return repository.LikeEdge, nil

	default:
		return repository.Edge{}, models.NewValidationError("Unknown relationship kind")
	}
}

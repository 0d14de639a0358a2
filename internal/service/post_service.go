package service

import (
	"context"
	"strings"

	"commune/internal/models"
	"commune/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	AuthorID uint
	Content  string
}

type DeletePostInput struct {
	ActorID uint
	PostID  uint
}

type FeedInput struct {
	ViewerID uint
	Limit    int
	Offset   int
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	const maxContentLen = 10000

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 10000 characters)")
	}

	post := &models.Post{
		AuthorID: in.AuthorID,
		Content:  content,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Reload with counts and author so the response matches feed entries.
	return s.postRepo.GetByID(ctx, post.ID, in.AuthorID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, viewerID)
}

// Feed returns the viewer's timeline: their own posts and those of
// members they added as friends, newest first.
func (s *PostService) Feed(ctx context.Context, in FeedInput) ([]*models.Post, error) {
	return s.postRepo.Feed(ctx, in.ViewerID, in.Limit, in.Offset)
}

func (s *PostService) GetMemberPosts(ctx context.Context, authorID uint, limit, offset int, viewerID uint) ([]*models.Post, error) {
	return s.postRepo.GetByAuthorID(ctx, authorID, limit, offset, viewerID)
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.ActorID)
	if err != nil {
		return err
	}

	if post.AuthorID != in.ActorID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	return s.postRepo.Delete(ctx, in.PostID)
}

package service

import (
	"context"
	"errors"
	"testing"

	"commune/internal/models"
	"commune/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memberRepoStub is a stub for repository.MemberRepository.
type memberRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.Member, error)
	getProfileFn func(context.Context, uint, uint) (*models.Member, error)
	getByEmailFn func(context.Context, string) (*models.Member, error)
	createFn     func(context.Context, *models.Member) error
	updateFn     func(context.Context, *models.Member) error
	deleteFn     func(context.Context, uint) error
	listFn       func(context.Context, string, int, int, uint) ([]models.Member, error)
	existsFn     func(context.Context, uint) (bool, error)
}

func (s *memberRepoStub) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	return s.getByIDFn(ctx, id)
}
func (s *memberRepoStub) GetProfile(ctx context.Context, id, viewerID uint) (*models.Member, error) {
	return s.getProfileFn(ctx, id, viewerID)
}
func (s *memberRepoStub) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *memberRepoStub) Create(ctx context.Context, m *models.Member) error {
	return s.createFn(ctx, m)
}
func (s *memberRepoStub) Update(ctx context.Context, m *models.Member) error {
	return s.updateFn(ctx, m)
}
func (s *memberRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *memberRepoStub) List(ctx context.Context, search string, limit, offset int, viewerID uint) ([]models.Member, error) {
	return s.listFn(ctx, search, limit, offset, viewerID)
}
func (s *memberRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}

func noopMemberRepo() *memberRepoStub {
	return &memberRepoStub{
		getByIDFn:    func(_ context.Context, _ uint) (*models.Member, error) { return &models.Member{}, nil },
		getProfileFn: func(_ context.Context, _, _ uint) (*models.Member, error) { return &models.Member{}, nil },
		getByEmailFn: func(_ context.Context, _ string) (*models.Member, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.Member) error { return nil },
		updateFn:     func(_ context.Context, _ *models.Member) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		listFn:       func(_ context.Context, _ string, _, _ int, _ uint) ([]models.Member, error) { return nil, nil },
		existsFn:     func(_ context.Context, _ uint) (bool, error) { return true, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint, uint) (*models.Post, error)
	feedFn          func(context.Context, uint, int, int) ([]*models.Post, error)
	getByAuthorIDFn func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	deleteFn        func(context.Context, uint) error
	existsFn        func(context.Context, uint) (bool, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *postRepoStub) Feed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, error) {
	return s.feedFn(ctx, viewerID, limit, offset)
}
func (s *postRepoStub) GetByAuthorID(ctx context.Context, authorID uint, limit, offset int, viewerID uint) ([]*models.Post, error) {
	return s.getByAuthorIDFn(ctx, authorID, limit, offset, viewerID)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:        func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:       func(_ context.Context, _, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		feedFn:          func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) { return nil, nil },
		getByAuthorIDFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		existsFn:        func(_ context.Context, _ uint) (bool, error) { return true, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

// relationRepoStub is a stub for repository.RelationRepository.
type relationRepoStub struct {
	existsFn         func(context.Context, repository.Edge, uint, uint) (bool, error)
	insertFn         func(context.Context, repository.Edge, uint, uint) (bool, error)
	deleteFn         func(context.Context, repository.Edge, uint, uint) (bool, error)
	countForTargetFn func(context.Context, repository.Edge, uint) (int64, error)
}

func (s *relationRepoStub) Exists(ctx context.Context, e repository.Edge, ownerID, targetID uint) (bool, error) {
	return s.existsFn(ctx, e, ownerID, targetID)
}
func (s *relationRepoStub) Insert(ctx context.Context, e repository.Edge, ownerID, targetID uint) (bool, error) {
	return s.insertFn(ctx, e, ownerID, targetID)
}
func (s *relationRepoStub) Delete(ctx context.Context, e repository.Edge, ownerID, targetID uint) (bool, error) {
	return s.deleteFn(ctx, e, ownerID, targetID)
}
func (s *relationRepoStub) CountForTarget(ctx context.Context, e repository.Edge, targetID uint) (int64, error) {
	return s.countForTargetFn(ctx, e, targetID)
}

func noopRelationRepo() *relationRepoStub {
	return &relationRepoStub{
		existsFn:         func(_ context.Context, _ repository.Edge, _, _ uint) (bool, error) { return false, nil },
		insertFn:         func(_ context.Context, _ repository.Edge, _, _ uint) (bool, error) { return true, nil },
		deleteFn:         func(_ context.Context, _ repository.Edge, _, _ uint) (bool, error) { return true, nil },
		countForTargetFn: func(_ context.Context, _ repository.Edge, _ uint) (int64, error) { return 0, nil },
	}
}

// assertAppError asserts that err is an AppError with the given code.
func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

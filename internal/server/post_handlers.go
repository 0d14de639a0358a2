package server

import (
	"commune/internal/models"
	"commune/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/posts
// @Summary Member feed
// @Description Return the authenticated member's feed: their own posts and posts by members they added as friends, newest first
// @Tags posts
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Post
// @Failure 401 {object} models.ErrorResponse
// @Router /posts [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	feed, err := s.postService.Feed(c.Context(), service.FeedInput{
		ViewerID: currentMemberID(c),
		Limit:    p.Limit,
		Offset:   p.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}

// CreatePost handles POST /api/posts
// @Summary Create post
// @Description Publish a new post authored by the authenticated member
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{content=string} true "Post content"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID: currentMemberID(c),
		Content:  req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
// @Summary Post detail
// @Description Return a single post with its counts and the viewer's like status
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id, currentMemberID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete post
// @Description Delete the authenticated member's own post
// @Tags posts
// @Param id path int true "Post ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), service.DeletePostInput{
		ActorID: currentMemberID(c),
		PostID:  id,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike handles POST /api/posts/:id/like
// @Summary Toggle like
// @Description Like the post, or remove the like if already present
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} object{is_liked=bool,likes_count=int,message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/like [post]
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, count, err := s.relationService.ToggleLike(c.Context(), currentMemberID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	message := "Like removed"
	if liked {
		message = "Post liked"
	}
	return c.JSON(fiber.Map{
		"is_liked":    liked,
		"likes_count": count,
		"message":     message,
	})
}

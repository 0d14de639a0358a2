package server

import (
	"commune/internal/models"
	"commune/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMembers handles GET /api/members
// @Summary List members
// @Description List members, optionally filtered by a search term on name or email
// @Tags members
// @Produce json
// @Param search query string false "Search term"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Member
// @Router /members [get]
func (s *Server) GetMembers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	members, err := s.memberService.ListMembers(
		c.Context(), c.Query("search"), p.Limit, p.Offset, currentMemberID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(members)
}

// GetMember handles GET /api/members/:id
// @Summary Member profile
// @Description Return a member's profile with friend count and friendship status
// @Tags members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} models.Member
// @Failure 404 {object} models.ErrorResponse
// @Router /members/{id} [get]
func (s *Server) GetMember(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	member, err := s.memberService.GetProfile(c.Context(), id, currentMemberID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(member)
}

// UpdateMember handles PUT /api/members/:id
// @Summary Update profile
// @Description Update the authenticated member's own profile
// @Tags members
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Param request body object{first_name=string,last_name=string,bio=string,avatar=string,city=string} true "Profile fields"
// @Success 200 {object} models.Member
// @Failure 403 {object} models.ErrorResponse
// @Router /members/{id} [put]
func (s *Server) UpdateMember(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Bio       string `json:"bio"`
		Avatar    string `json:"avatar"`
		City      string `json:"city"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	member, err := s.memberService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		ActorID:   currentMemberID(c),
		MemberID:  id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Avatar:    req.Avatar,
		City:      req.City,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(member)
}

// ToggleFriend handles POST /api/members/:id/friend
// @Summary Toggle friendship
// @Description Add the member as a friend, or remove them if already added. The link is one-directional.
// @Tags members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} object{is_friend=bool,message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /members/{id}/friend [post]
func (s *Server) ToggleFriend(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	isFriend, err := s.relationService.ToggleFriendship(c.Context(), currentMemberID(c), targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	message := "Friend removed"
	if isFriend {
		message = "Friend added"
	}
	return c.JSON(fiber.Map{
		"is_friend": isFriend,
		"message":   message,
	})
}

// GetMemberPosts handles GET /api/members/:id/posts
// @Summary Member posts
// @Description List a member's posts, newest first
// @Tags members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {array} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /members/{id}/posts [get]
func (s *Server) GetMemberPosts(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	exists, err := s.memberRepo.Exists(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !exists {
		return respondServiceError(c, models.NewNotFoundError("Member", id))
	}

	p := parsePagination(c, 20)
	posts, err := s.postService.GetMemberPosts(c.Context(), id, p.Limit, p.Offset, currentMemberID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

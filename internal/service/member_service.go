package service

import (
	"context"
	"strings"

	"commune/internal/models"
	"commune/internal/repository"
	"commune/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type MemberService struct {
	memberRepo repository.MemberRepository
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Bio       string
	City      string
}

type UpdateProfileInput struct {
	ActorID   uint
	MemberID  uint
	FirstName string
	LastName  string
	Bio       string
	Avatar    string
	City      string
}

func NewMemberService(memberRepo repository.MemberRepository) *MemberService {
	return &MemberService{memberRepo: memberRepo}
}

// Register creates a new member account with a bcrypt-hashed password.
func (s *MemberService) Register(ctx context.Context, in RegisterInput) (*models.Member, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateName("first_name", in.FirstName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateName("last_name", in.LastName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.memberRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("A member with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	member := &models.Member{
		Email:     email,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Bio:       in.Bio,
		City:      in.City,
	}
	// The unique index backstops the pre-check under concurrent registration.
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Authenticate verifies email and password and returns the member.
// Unknown email and wrong password produce the same error: the response
// must not reveal which accounts exist.
func (s *MemberService) Authenticate(ctx context.Context, email, password string) (*models.Member, error) {
	member, err := s.memberRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return member, nil
}

func (s *MemberService) GetMember(ctx context.Context, id uint) (*models.Member, error) {
	return s.memberRepo.GetByID(ctx, id)
}

func (s *MemberService) GetProfile(ctx context.Context, id uint, viewerID uint) (*models.Member, error) {
	return s.memberRepo.GetProfile(ctx, id, viewerID)
}

func (s *MemberService) ListMembers(ctx context.Context, search string, limit, offset int, viewerID uint) ([]models.Member, error) {
	return s.memberRepo.List(ctx, search, limit, offset, viewerID)
}

func (s *MemberService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Member, error) {
	if in.ActorID != in.MemberID {
		return nil, models.NewForbiddenError("You can only update your own profile")
	}

	member, err := s.memberRepo.GetByID(ctx, in.MemberID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500

	if in.FirstName != "" {
		if err := validation.ValidateName("first_name", in.FirstName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		member.FirstName = strings.TrimSpace(in.FirstName)
	}
	if in.LastName != "" {
		if err := validation.ValidateName("last_name", in.LastName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		member.LastName = strings.TrimSpace(in.LastName)
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		member.Bio = in.Bio
	}
	if in.Avatar != "" {
		member.Avatar = in.Avatar
	}
	if in.City != "" {
		member.City = in.City
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

package session

import (
	"context"
	"errors"

	"commune/internal/models"
)

// State is the outcome of resolving an inbound cookie value.
type State int

const (
	// StateAnonymous means no cookie was presented. Not an error.
	StateAnonymous State = iota
	// StateAuthenticated means the token verified and the member exists.
	StateAuthenticated
	// StateRejected means a cookie was presented but could not be honored.
	StateRejected
)

// String returns the metrics label for the state.
func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateRejected:
		return "rejected"
	default:
		return "anonymous"
	}
}

// Resolution is the result of resolving a raw cookie value, attached to
// request-scoped state by the auth middleware.
type Resolution struct {
	State  State
	Member *models.Member
	// Reason is set only for StateRejected. It is for diagnostics: the
	// client-visible behavior is identical for every rejection reason.
	Reason error
}

// Authenticated reports whether the resolution carries a verified member.
func (r Resolution) Authenticated() bool {
	return r.State == StateAuthenticated && r.Member != nil
}

// MemberSource looks up members by ID for session resolution.
type MemberSource interface {
	GetByID(ctx context.Context, id uint) (*models.Member, error)
}

// Resolver turns an inbound cookie value into an authenticated identity
// or a typed failure. Resolution happens once per request.
type Resolver struct {
	codec   *Codec
	members MemberSource
}

// NewResolver returns a Resolver using the given codec and member source.
func NewResolver(codec *Codec, members MemberSource) *Resolver {
	return &Resolver{codec: codec, members: members}
}

// Resolve verifies the raw cookie value and loads the carried member.
// A missing cookie is Anonymous; a token that verifies but whose member
// no longer exists (deleted account) is Rejected with ErrMemberNotFound.
// A storage failure during the lookup is returned as an error: it says
// nothing about the credential and must not surface as "unauthenticated".
func (r *Resolver) Resolve(ctx context.Context, rawCookie string) (Resolution, error) {
	if rawCookie == "" {
		return Resolution{State: StateAnonymous}, nil
	}

	memberID, err := r.codec.Verify(rawCookie)
	if err != nil {
		return Resolution{State: StateRejected, Reason: err}, nil
	}

	member, err := r.members.GetByID(ctx, memberID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return Resolution{State: StateRejected, Reason: ErrMemberNotFound}, nil
		}
		return Resolution{}, err
	}

	return Resolution{State: StateAuthenticated, Member: member}, nil
}

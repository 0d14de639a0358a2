package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	MemberKeyPrefix = "member:%d"
)

// MemberTTL keeps cached member records short-lived: the session resolver
// reads through this cache on every authenticated request, and a stale
// entry delays profile updates but never resurrects a deleted member
// (deletes invalidate eagerly).
const MemberTTL = 5 * time.Minute

func MemberKey(memberID uint) string {
	return fmt.Sprintf(MemberKeyPrefix, memberID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateMember(ctx context.Context, memberID uint) {
	Invalidate(ctx, MemberKey(memberID))
}

package matching

import (
	"errors"
	"fmt"
	"strings"
)

var ErrReflexivePair = errors.New("pair members must be two distinct users")

// PairKey is the canonical identifier for an unordered pair of users. User1
// always sorts lexicographically before User2, so both members compute the
// same key regardless of who acts first. This is what guarantees at most one
// match record per pair.
type PairKey struct {
	User1 string
	User2 string
}

func NewPairKey(a, b string) (PairKey, error) {
	if a == "" || b == "" {
		return PairKey{}, ErrReflexivePair
	}
	if a == b {
		return PairKey{}, ErrReflexivePair
	}
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return PairKey{User1: a, User2: b}, nil
}

// ParsePairKey is the inverse of String.
func ParsePairKey(s string) (PairKey, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return PairKey{}, fmt.Errorf("malformed pair key %q", s)
	}
	return NewPairKey(parts[0], parts[1])
}

func (k PairKey) String() string {
	return k.User1 + ":" + k.User2
}

// ChatRoomID derives the stable conversation identifier for the pair. It is
// deterministic and collision-free because the pair key itself is unique.
func (k PairKey) ChatRoomID() string {
	return fmt.Sprintf("chat_%s_%s", k.User1, k.User2)
}

func (k PairKey) Contains(userID string) bool {
	return userID == k.User1 || userID == k.User2
}

// Other returns the opposite member of the pair, or "" if userID is not a
// member.
func (k PairKey) Other(userID string) string {
	switch userID {
	case k.User1:
		return k.User2
	case k.User2:
		return k.User1
	}
	return ""
}

package matching

import (
	"time"
)

// Match statuses. Blocked is reachable only through the moderation path,
// never through like/pass.
const (
	StatusPotential = "potential"
	StatusMutual    = "mutual"
	StatusDeclined  = "declined"
	StatusBlocked   = "blocked"
)

// Actions a pair member can take on the other.
const (
	ActionLike = "like"
	ActionPass = "pass"
)

// Breakdown holds the six per-category compatibility sub-scores, each 0-100.
type Breakdown struct {
	Personality        int `json:"personality"`
	LoveLanguages      int `json:"love_languages"`
	CommunicationStyle int `json:"communication_style"`
	Lifestyle          int `json:"lifestyle"`
	Values             int `json:"values"`
	Interests          int `json:"interests"`
}

// MatchRecord is the single mutable entity per unordered user pair. The
// compatibility fields are computed once at creation and never recomputed;
// the liked flags and status evolve with user actions. Records are never
// deleted: unmatching is a transition to declined.
type MatchRecord struct {
	ID                 int64      `json:"id" db:"id"`
	PairKey            string     `json:"pair_key" db:"pair_key"`
	User1ID            string     `json:"user1_id" db:"user1_id"`
	User2ID            string     `json:"user2_id" db:"user2_id"`
	CompatibilityScore int        `json:"compatibility_score" db:"compatibility_score"`
	Breakdown          Breakdown  `json:"compatibility_breakdown" db:"-"`
	Explanation        string     `json:"explanation" db:"explanation"`
	Status             string     `json:"status" db:"status"`
	User1Liked         bool       `json:"user1_liked" db:"user1_liked"`
	User2Liked         bool       `json:"user2_liked" db:"user2_liked"`
	User1LikedAt       *time.Time `json:"user1_liked_at,omitempty" db:"user1_liked_at"`
	User2LikedAt       *time.Time `json:"user2_liked_at,omitempty" db:"user2_liked_at"`
	ChatRoomID         *string    `json:"chat_room_id,omitempty" db:"chat_room_id"`
	IsHighQuality      bool       `json:"is_high_quality" db:"is_high_quality"`
	LastInteraction    time.Time  `json:"last_interaction" db:"last_interaction"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// Key rebuilds the canonical pair key from the stored ordered members.
func (m *MatchRecord) Key() PairKey {
	return PairKey{User1: m.User1ID, User2: m.User2ID}
}

// IsMember reports whether userID is one of the two pair members.
func (m *MatchRecord) IsMember(userID string) bool {
	return userID == m.User1ID || userID == m.User2ID
}

// SetLiked marks the acting member's liked flag. The flags are independent of
// which party acts first; canonical ordering only decides which column a user
// lands in.
func (m *MatchRecord) SetLiked(userID string, at time.Time) {
	switch userID {
	case m.User1ID:
		m.User1Liked = true
		m.User1LikedAt = &at
	case m.User2ID:
		m.User2Liked = true
		m.User2LikedAt = &at
	}
}

// BothLiked reports mutual interest.
func (m *MatchRecord) BothLiked() bool {
	return m.User1Liked && m.User2Liked
}

// MatchSummary is the per-pair view returned to one of its members.
type MatchSummary struct {
	MatchID            int64     `json:"match_id"`
	PairKey            string    `json:"pair_key"`
	OtherUserID        string    `json:"user_id"`
	ChatRoomID         string    `json:"chat_room_id,omitempty"`
	CompatibilityScore int       `json:"compatibility_score"`
	Explanation        string    `json:"explanation"`
	IsHighQuality      bool      `json:"is_high_quality"`
	MatchedAt          time.Time `json:"matched_at"`
}

// MatchStats aggregates a user's matching activity.
type MatchStats struct {
	TotalLikes         int64 `json:"total_likes"`
	MutualMatches      int64 `json:"mutual_matches"`
	HighQualityMatches int64 `json:"high_quality_matches"`
	MatchRate          int   `json:"match_rate"`
}

package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/loveos/loveos-backend/internal/profile"
)

var (
	ErrMatchNotFound     = errors.New("match not found")
	ErrSelfAction        = errors.New("cannot act on yourself")
	ErrInvalidAction     = errors.New("action must be like or pass")
	ErrInvalidPair       = errors.New("user is not a member of this pair")
	ErrProfileIncomplete = errors.New("personality quiz not completed")
	ErrAlreadyMatched    = errors.New("pair is already matched; use unmatch instead")
	ErrPairBlocked       = errors.New("pair is blocked")
)

// VectorSource supplies profile vector bundles for scoring. Satisfied by
// profile.Service.
type VectorSource interface {
	GetBundle(ctx context.Context, userID string) (*profile.VectorBundle, error)
	Candidates(ctx context.Context, excludeUserID string, limit, offset int) ([]*profile.VectorBundle, error)
}

// ActionResult is returned from a like action. IsMatch is true only on the
// call that completed the second liked flag.
type ActionResult struct {
	IsMatch            bool   `json:"is_match"`
	MatchID            int64  `json:"match_id"`
	ChatRoomID         string `json:"chat_room_id,omitempty"`
	CompatibilityScore int    `json:"compatibility_score"`
}

// DiscoverResult is one scored candidate in a discovery page.
type DiscoverResult struct {
	UserID        string    `json:"user_id"`
	Compatibility int       `json:"compatibility"`
	Breakdown     Breakdown `json:"compatibility_breakdown"`
	Explanation   string    `json:"explanation"`
	IsHighQuality bool      `json:"is_high_quality"`
	Interests     []string  `json:"interests"`
}

type Service interface {
	// Like records the acting user's interest in the target and reports
	// whether this completed a mutual match.
	Like(ctx context.Context, actingUser, targetUser string) (*ActionResult, error)

	// Pass declines the pairing.
	Pass(ctx context.Context, actingUser, targetUser string) error

	// GetCompatibility scores two users without creating or touching a
	// match record.
	GetCompatibility(ctx context.Context, userA, userB string) (*ScoreResult, error)

	GetMutualMatches(ctx context.Context, userID string) ([]*MatchSummary, error)
	GetMatch(ctx context.Context, actingUser string, matchID int64) (*MatchRecord, error)
	GetStats(ctx context.Context, userID string) (*MatchStats, error)

	// Discover scores visible quiz-completed candidates for the user and
	// returns them best first.
	Discover(ctx context.Context, userID string, limit, offset int) ([]*DiscoverResult, error)

	// Unmatch dissolves an existing pairing. Unlike pass, it is valid on a
	// mutual pair; the record transitions to declined and keeps its chat
	// room id.
	Unmatch(ctx context.Context, actingUser string, matchID int64) error

	// Block is the moderation-only path to the blocked status.
	Block(ctx context.Context, pairKey string) error
}

// ServiceConfig carries the optional collaborators.
type ServiceConfig struct {
	// Cache, when set, memoizes GetCompatibility results.
	Cache    *redis.Client
	CacheTTL time.Duration
}

type service struct {
	repo    Repository
	vectors VectorSource
	scorer  *Scorer
	events  EventPublisher

	cache    *redis.Client
	cacheTTL time.Duration

	// pairLocks serializes applies on the same pair key within this
	// process; the pair_key unique constraint covers creates across
	// processes. Striped so unrelated pairs rarely contend.
	pairLocks [64]sync.Mutex
}

func NewService(repo Repository, vectors VectorSource, scorer *Scorer, events EventPublisher, cfg *ServiceConfig) Service {
	s := &service{
		repo:    repo,
		vectors: vectors,
		scorer:  scorer,
		events:  events,
	}
	if cfg != nil {
		s.cache = cfg.Cache
		s.cacheTTL = cfg.CacheTTL
	}
	if s.cacheTTL <= 0 {
		s.cacheTTL = 10 * time.Minute
	}
	return s
}

func (s *service) Like(ctx context.Context, actingUser, targetUser string) (*ActionResult, error) {
	return s.apply(ctx, actingUser, targetUser, ActionLike)
}

func (s *service) Pass(ctx context.Context, actingUser, targetUser string) error {
	_, err := s.apply(ctx, actingUser, targetUser, ActionPass)
	return err
}

// apply runs the full lifecycle for one action: canonicalize the pair,
// fetch-or-create the record (scoring happens only at creation), apply the
// action, evaluate the mutual transition, and persist the whole record.
func (s *service) apply(ctx context.Context, actingUser, targetUser, action string) (*ActionResult, error) {
	if action != ActionLike && action != ActionPass {
		return nil, ErrInvalidAction
	}
	if actingUser != "" && actingUser == targetUser {
		return nil, ErrSelfAction
	}

	key, err := NewPairKey(actingUser, targetUser)
	if err != nil {
		return nil, ErrInvalidPair
	}

	lock := s.lockFor(key.String())
	lock.Lock()
	defer lock.Unlock()

	record, err := s.repo.FindByPairKey(ctx, key.String())
	if errors.Is(err, ErrMatchNotFound) {
		record, err = s.createRecord(ctx, key)
	}
	if err != nil {
		return nil, err
	}

	if !record.IsMember(actingUser) {
		return nil, ErrInvalidPair
	}
	if record.Status == StatusBlocked {
		return nil, ErrPairBlocked
	}

	now := time.Now().UTC()
	becameMutual := false

	switch action {
	case ActionLike:
		record.SetLiked(actingUser, now)
		becameMutual = s.evaluateTransition(record)
	case ActionPass:
		if record.Status == StatusMutual {
			return nil, ErrAlreadyMatched
		}
		record.Status = StatusDeclined
	}

	record.LastInteraction = now
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}

	RecordAction(action)

	if becameMutual {
		RecordMutualMatch()
		event := NewMutualMatchEvent(record.PairKey, *record.ChatRoomID, record.CompatibilityScore)
		if err := s.events.PublishMutualMatch(ctx, event); err != nil {
			// The match itself is committed; the transport can recover
			// missed events from the record.
			log.Printf("failed to publish mutual match event for %s: %v", record.PairKey, err)
		}
	}

	result := &ActionResult{
		IsMatch:            becameMutual,
		MatchID:            record.ID,
		CompatibilityScore: record.CompatibilityScore,
	}
	if becameMutual {
		result.ChatRoomID = *record.ChatRoomID
	}
	return result, nil
}

// createRecord scores the pair and inserts the record. The scorer runs
// exactly once per pair: if a concurrent create wins, the winner's record is
// returned and this computation is discarded.
func (s *service) createRecord(ctx context.Context, key PairKey) (*MatchRecord, error) {
	bundle1, err := s.vectors.GetBundle(ctx, key.User1)
	if err != nil {
		return nil, err
	}
	bundle2, err := s.vectors.GetBundle(ctx, key.User2)
	if err != nil {
		return nil, err
	}

	if !bundle1.HasAnyCategory() || !bundle2.HasAnyCategory() {
		return nil, ErrProfileIncomplete
	}

	scored := s.scorer.Score(bundle1, bundle2)

	record := &MatchRecord{
		PairKey:            key.String(),
		User1ID:            key.User1,
		User2ID:            key.User2,
		CompatibilityScore: scored.Overall,
		Breakdown:          scored.Breakdown,
		Explanation:        scored.Explanation,
		Status:             StatusPotential,
		IsHighQuality:      scored.IsHighQuality,
	}

	created, wasCreated, err := s.repo.CreateIfAbsent(ctx, record)
	if err != nil {
		return nil, err
	}
	if wasCreated {
		RecordCreated()
		RecordCompatibilityScore(scored.Overall)
	}
	return created, nil
}

// evaluateTransition performs the potential -> mutual transition when both
// liked flags are set. It is the only place the chat room id is assigned,
// and the assignment is idempotent: once present the id never changes.
// Returns whether this call performed the transition.
func (s *service) evaluateTransition(record *MatchRecord) bool {
	if !record.BothLiked() {
		return false
	}
	if record.Status != StatusPotential {
		return false
	}

	record.Status = StatusMutual
	if record.ChatRoomID == nil {
		roomID := record.Key().ChatRoomID()
		record.ChatRoomID = &roomID
	}
	return true
}

func (s *service) GetCompatibility(ctx context.Context, userA, userB string) (*ScoreResult, error) {
	if userA != "" && userA == userB {
		return nil, ErrSelfAction
	}

	key, err := NewPairKey(userA, userB)
	if err != nil {
		return nil, ErrInvalidPair
	}

	if cached := s.cachedScore(ctx, key); cached != nil {
		return cached, nil
	}

	bundle1, err := s.vectors.GetBundle(ctx, key.User1)
	if err != nil {
		return nil, err
	}
	bundle2, err := s.vectors.GetBundle(ctx, key.User2)
	if err != nil {
		return nil, err
	}

	result := s.scorer.Score(bundle1, bundle2)
	s.storeScore(ctx, key, result)
	return result, nil
}

func (s *service) GetMutualMatches(ctx context.Context, userID string) ([]*MatchSummary, error) {
	records, err := s.repo.GetMutualMatches(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*MatchSummary, 0, len(records))
	for _, record := range records {
		summary := &MatchSummary{
			MatchID:            record.ID,
			PairKey:            record.PairKey,
			OtherUserID:        record.Key().Other(userID),
			CompatibilityScore: record.CompatibilityScore,
			Explanation:        record.Explanation,
			IsHighQuality:      record.IsHighQuality,
			MatchedAt:          record.UpdatedAt,
		}
		if record.ChatRoomID != nil {
			summary.ChatRoomID = *record.ChatRoomID
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *service) GetMatch(ctx context.Context, actingUser string, matchID int64) (*MatchRecord, error) {
	record, err := s.repo.FindByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !record.IsMember(actingUser) {
		return nil, ErrInvalidPair
	}
	return record, nil
}

func (s *service) GetStats(ctx context.Context, userID string) (*MatchStats, error) {
	return s.repo.GetStats(ctx, userID)
}

func (s *service) Discover(ctx context.Context, userID string, limit, offset int) ([]*DiscoverResult, error) {
	me, err := s.vectors.GetBundle(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !me.QuizCompleted {
		return nil, ErrProfileIncomplete
	}

	candidates, err := s.vectors.Candidates(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	results := make([]*DiscoverResult, 0, len(candidates))
	for _, candidate := range candidates {
		scored := s.scorer.Score(me, candidate)
		results = append(results, &DiscoverResult{
			UserID:        candidate.UserID,
			Compatibility: scored.Overall,
			Breakdown:     scored.Breakdown,
			Explanation:   scored.Explanation,
			IsHighQuality: scored.IsHighQuality,
			Interests:     candidate.Interests,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Compatibility > results[j].Compatibility
	})
	return results, nil
}

func (s *service) Unmatch(ctx context.Context, actingUser string, matchID int64) error {
	record, err := s.repo.FindByID(ctx, matchID)
	if err != nil {
		return err
	}
	if !record.IsMember(actingUser) {
		return ErrInvalidPair
	}

	lock := s.lockFor(record.PairKey)
	lock.Lock()
	defer lock.Unlock()

	// Re-read under the lock so a concurrent action is not overwritten.
	record, err = s.repo.FindByID(ctx, matchID)
	if err != nil {
		return err
	}
	if record.Status == StatusBlocked {
		return ErrPairBlocked
	}

	// The chat room id survives the transition: once assigned it is
	// immutable, and the status alone gates the conversation.
	record.Status = StatusDeclined
	record.LastInteraction = time.Now().UTC()
	return s.repo.Update(ctx, record)
}

func (s *service) Block(ctx context.Context, pairKey string) error {
	key, err := ParsePairKey(pairKey)
	if err != nil {
		return ErrInvalidPair
	}

	lock := s.lockFor(key.String())
	lock.Lock()
	defer lock.Unlock()

	record, err := s.repo.FindByPairKey(ctx, key.String())
	if err != nil {
		return err
	}

	record.Status = StatusBlocked
	record.LastInteraction = time.Now().UTC()
	return s.repo.Update(ctx, record)
}

func (s *service) lockFor(pairKey string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(pairKey))
	return &s.pairLocks[h.Sum32()%uint32(len(s.pairLocks))]
}

func (s *service) cachedScore(ctx context.Context, key PairKey) *ScoreResult {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, compatCacheKey(key)).Bytes()
	if err != nil {
		return nil
	}

	var result ScoreResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return &result
}

func (s *service) storeScore(ctx context.Context, key PairKey, result *ScoreResult) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, compatCacheKey(key), data, s.cacheTTL).Err(); err != nil {
		log.Printf("failed to cache compatibility for %s: %v", key, err)
	}
}

func compatCacheKey(key PairKey) string {
	return fmt.Sprintf("loveos:compat:%s", key)
}

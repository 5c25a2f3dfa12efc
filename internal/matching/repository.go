package matching

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repository interface {
	// CreateIfAbsent inserts the record unless one already exists for its
	// pair key, in which case the existing record is returned. The second
	// return value reports whether this call created the row. Concurrent
	// first actions on the same pair are resolved by the unique constraint;
	// callers never observe the race.
	CreateIfAbsent(ctx context.Context, record *MatchRecord) (*MatchRecord, bool, error)

	FindByPairKey(ctx context.Context, pairKey string) (*MatchRecord, error)
	FindByID(ctx context.Context, id int64) (*MatchRecord, error)

	// Update persists all mutable fields of the record in one statement.
	Update(ctx context.Context, record *MatchRecord) error

	GetMutualMatches(ctx context.Context, userID string) ([]*MatchRecord, error)
	GetStats(ctx context.Context, userID string) (*MatchStats, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const matchColumns = `
	id, pair_key, user1_id, user2_id, compatibility_score,
	score_personality, score_love_languages, score_communication,
	score_lifestyle, score_values, score_interests,
	explanation, status, user1_liked, user2_liked,
	user1_liked_at, user2_liked_at, chat_room_id, is_high_quality,
	last_interaction, created_at, updated_at
`

func (r *postgresRepository) CreateIfAbsent(ctx context.Context, record *MatchRecord) (*MatchRecord, bool, error) {
	query := `
		INSERT INTO matches (
			pair_key, user1_id, user2_id, compatibility_score,
			score_personality, score_love_languages, score_communication,
			score_lifestyle, score_values, score_interests,
			explanation, status, is_high_quality, last_interaction
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, CURRENT_TIMESTAMP)
		ON CONFLICT (pair_key) DO NOTHING
		RETURNING ` + matchColumns

	row := r.db.QueryRowxContext(
		ctx, query,
		record.PairKey, record.User1ID, record.User2ID, record.CompatibilityScore,
		record.Breakdown.Personality, record.Breakdown.LoveLanguages,
		record.Breakdown.CommunicationStyle, record.Breakdown.Lifestyle,
		record.Breakdown.Values, record.Breakdown.Interests,
		record.Explanation, record.Status, record.IsHighQuality,
	)

	created, err := scanRecord(row)
	if err == nil {
		return created, true, nil
	}
	if err != sql.ErrNoRows && !isUniqueViolation(err) {
		return nil, false, fmt.Errorf("failed to create match record: %w", err)
	}

	// Lost the create race (or the row already existed): fetch the winner.
	existing, err := r.FindByPairKey(ctx, record.PairKey)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *postgresRepository) FindByPairKey(ctx context.Context, pairKey string) (*MatchRecord, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE pair_key = $1`
	record, err := scanRecord(r.db.QueryRowxContext(ctx, query, pairKey))
	if err == sql.ErrNoRows {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load match record: %w", err)
	}
	return record, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*MatchRecord, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	record, err := scanRecord(r.db.QueryRowxContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load match record: %w", err)
	}
	return record, nil
}

func (r *postgresRepository) Update(ctx context.Context, record *MatchRecord) error {
	query := `
		UPDATE matches
		SET status = $2,
		    user1_liked = $3, user2_liked = $4,
		    user1_liked_at = $5, user2_liked_at = $6,
		    chat_room_id = $7,
		    last_interaction = $8,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx, query,
		record.ID, record.Status,
		record.User1Liked, record.User2Liked,
		record.User1LikedAt, record.User2LikedAt,
		record.ChatRoomID, record.LastInteraction,
	)
	if err != nil {
		return fmt.Errorf("failed to update match record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return ErrMatchNotFound
	}
	return err
}

func (r *postgresRepository) GetMutualMatches(ctx context.Context, userID string) ([]*MatchRecord, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE (user1_id = $1 OR user2_id = $1) AND status = $2
		ORDER BY updated_at DESC
	`

	rows, err := r.db.QueryxContext(ctx, query, userID, StatusMutual)
	if err != nil {
		return nil, fmt.Errorf("failed to query mutual matches: %w", err)
	}
	defer rows.Close()

	var records []*MatchRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func (r *postgresRepository) GetStats(ctx context.Context, userID string) (*MatchStats, error) {
	stats := &MatchStats{}

	query := `
		SELECT
			COUNT(CASE WHEN user1_liked OR user2_liked THEN 1 END) as total_likes,
			COUNT(CASE WHEN status = 'mutual' THEN 1 END) as mutual,
			COUNT(CASE WHEN status = 'mutual' AND is_high_quality THEN 1 END) as high_quality
		FROM matches
		WHERE user1_id = $1 OR user2_id = $1
	`

	err := r.db.QueryRowxContext(ctx, query, userID).Scan(
		&stats.TotalLikes,
		&stats.MutualMatches,
		&stats.HighQualityMatches,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query match stats: %w", err)
	}

	if stats.TotalLikes > 0 {
		stats.MatchRate = int(float64(stats.MutualMatches) / float64(stats.TotalLikes) * 100)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*MatchRecord, error) {
	var record MatchRecord
	err := row.Scan(
		&record.ID, &record.PairKey, &record.User1ID, &record.User2ID,
		&record.CompatibilityScore,
		&record.Breakdown.Personality, &record.Breakdown.LoveLanguages,
		&record.Breakdown.CommunicationStyle, &record.Breakdown.Lifestyle,
		&record.Breakdown.Values, &record.Breakdown.Interests,
		&record.Explanation, &record.Status,
		&record.User1Liked, &record.User2Liked,
		&record.User1LikedAt, &record.User2LikedAt,
		&record.ChatRoomID, &record.IsHighQuality,
		&record.LastInteraction, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// isUniqueViolation reports whether err is the Postgres duplicate-key error.
// ON CONFLICT DO NOTHING swallows most of these, but a concurrent insert
// between the conflict check and the write can still surface 23505.
func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}

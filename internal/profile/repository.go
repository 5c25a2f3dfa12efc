package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrProfileNotFound = errors.New("profile not found")

type Repository interface {
	GetBundle(ctx context.Context, userID string) (*VectorBundle, error)
	UpsertVectors(ctx context.Context, bundle *VectorBundle) error
	FindCandidates(ctx context.Context, excludeUserID string, limit, offset int) ([]*VectorBundle, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// profileRow mirrors the profiles table. The four quiz categories are stored
// as JSONB so an incomplete quiz simply leaves the column NULL.
type profileRow struct {
	UserID             string          `db:"user_id"`
	Personality        []byte          `db:"personality"`
	LoveLanguages      []byte          `db:"love_languages"`
	CommunicationStyle []byte          `db:"communication_style"`
	Lifestyle          []byte          `db:"lifestyle"`
	Values             pq.StringArray  `db:"core_values"`
	Interests          pq.StringArray  `db:"interests"`
	QuizCompleted      bool            `db:"quiz_completed"`
	IsVisible          bool            `db:"is_visible"`
	UpdatedAt          sql.NullTime    `db:"updated_at"`
}

func (r *postgresRepository) GetBundle(ctx context.Context, userID string) (*VectorBundle, error) {
	var row profileRow
	query := `
		SELECT user_id, personality, love_languages, communication_style,
		       lifestyle, core_values, interests, quiz_completed, is_visible, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	err := r.db.GetContext(ctx, &row, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	return row.toBundle()
}

func (r *postgresRepository) UpsertVectors(ctx context.Context, bundle *VectorBundle) error {
	personality, err := marshalCategory(bundle.Personality)
	if err != nil {
		return err
	}
	loveLanguages, err := marshalCategory(bundle.LoveLanguages)
	if err != nil {
		return err
	}
	communication, err := marshalCategory(bundle.CommunicationStyle)
	if err != nil {
		return err
	}
	lifestyle, err := marshalCategory(bundle.Lifestyle)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (
			user_id, personality, love_languages, communication_style,
			lifestyle, core_values, interests, quiz_completed, is_visible
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id)
		DO UPDATE SET
			personality = EXCLUDED.personality,
			love_languages = EXCLUDED.love_languages,
			communication_style = EXCLUDED.communication_style,
			lifestyle = EXCLUDED.lifestyle,
			core_values = EXCLUDED.core_values,
			interests = EXCLUDED.interests,
			quiz_completed = EXCLUDED.quiz_completed,
			is_visible = EXCLUDED.is_visible,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err = r.db.ExecContext(
		ctx, query,
		bundle.UserID, personality, loveLanguages, communication, lifestyle,
		pq.StringArray(bundle.Values), pq.StringArray(bundle.Interests),
		bundle.QuizCompleted, bundle.IsVisible,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile vectors: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindCandidates(ctx context.Context, excludeUserID string, limit, offset int) ([]*VectorBundle, error) {
	query := `
		SELECT user_id, personality, love_languages, communication_style,
		       lifestyle, core_values, interests, quiz_completed, is_visible, updated_at
		FROM profiles
		WHERE user_id != $1 AND is_visible = TRUE AND quiz_completed = TRUE
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryxContext(ctx, query, excludeUserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var bundles []*VectorBundle
	for rows.Next() {
		var row profileRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		bundle, err := row.toBundle()
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, bundle)
	}

	return bundles, rows.Err()
}

func (row *profileRow) toBundle() (*VectorBundle, error) {
	bundle := &VectorBundle{
		UserID:        row.UserID,
		Values:        []string(row.Values),
		Interests:     []string(row.Interests),
		QuizCompleted: row.QuizCompleted,
		IsVisible:     row.IsVisible,
	}
	if row.UpdatedAt.Valid {
		bundle.UpdatedAt = row.UpdatedAt.Time
	}

	if err := unmarshalCategory(row.Personality, &bundle.Personality); err != nil {
		return nil, err
	}
	if err := unmarshalCategory(row.LoveLanguages, &bundle.LoveLanguages); err != nil {
		return nil, err
	}
	if err := unmarshalCategory(row.CommunicationStyle, &bundle.CommunicationStyle); err != nil {
		return nil, err
	}
	if err := unmarshalCategory(row.Lifestyle, &bundle.Lifestyle); err != nil {
		return nil, err
	}

	// Unanswered traits inside a present category decode as zero; restore
	// the per-trait fallbacks before the bundle reaches the scorer.
	bundle.Personality.applyDefaults()
	bundle.LoveLanguages.applyDefaults()
	bundle.CommunicationStyle.applyDefaults()
	bundle.Lifestyle.applyDefaults()

	return bundle, nil
}

func marshalCategory(v interface{}) ([]byte, error) {
	// Typed nil pointers must become SQL NULL, not the JSON literal "null".
	switch c := v.(type) {
	case *PersonalityTraits:
		if c == nil {
			return nil, nil
		}
	case *LoveLanguages:
		if c == nil {
			return nil, nil
		}
	case *CommunicationStyle:
		if c == nil {
			return nil, nil
		}
	case *Lifestyle:
		if c == nil {
			return nil, nil
		}
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile category: %w", err)
	}
	return data, nil
}

func unmarshalCategory(data []byte, target interface{}) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode profile category: %w", err)
	}
	return nil
}

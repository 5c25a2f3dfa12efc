package profile

import (
	"context"
)

type Service interface {
	// GetBundle returns the user's psychological profile vectors.
	GetBundle(ctx context.Context, userID string) (*VectorBundle, error)

	// SubmitQuizResults stores the vectors produced by the personality quiz
	// and marks the quiz completed.
	SubmitQuizResults(ctx context.Context, userID string, dto *SubmitQuizDTO) (*VectorBundle, error)

	// UpdateVectors applies a partial edit to the stored vectors without
	// touching quiz completion.
	UpdateVectors(ctx context.Context, userID string, dto *UpdateVectorsDTO) (*VectorBundle, error)

	// Candidates lists visible, quiz-completed profiles for discovery.
	Candidates(ctx context.Context, excludeUserID string, limit, offset int) ([]*VectorBundle, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetBundle(ctx context.Context, userID string) (*VectorBundle, error) {
	return s.repo.GetBundle(ctx, userID)
}

func (s *service) SubmitQuizResults(ctx context.Context, userID string, dto *SubmitQuizDTO) (*VectorBundle, error) {
	bundle := &VectorBundle{
		UserID:             userID,
		Personality:        dto.Personality,
		LoveLanguages:      dto.LoveLanguages,
		CommunicationStyle: dto.CommunicationStyle,
		Lifestyle:          dto.Lifestyle,
		Values:             dto.Values,
		Interests:          dto.Interests,
		QuizCompleted:      true,
		IsVisible:          true,
	}

	if err := s.repo.UpsertVectors(ctx, bundle); err != nil {
		return nil, err
	}
	return s.repo.GetBundle(ctx, userID)
}

func (s *service) UpdateVectors(ctx context.Context, userID string, dto *UpdateVectorsDTO) (*VectorBundle, error) {
	existing, err := s.repo.GetBundle(ctx, userID)
	if err != nil {
		return nil, err
	}

	if dto.Personality != nil {
		existing.Personality = dto.Personality
	}
	if dto.LoveLanguages != nil {
		existing.LoveLanguages = dto.LoveLanguages
	}
	if dto.CommunicationStyle != nil {
		existing.CommunicationStyle = dto.CommunicationStyle
	}
	if dto.Lifestyle != nil {
		existing.Lifestyle = dto.Lifestyle
	}
	if dto.Values != nil {
		existing.Values = dto.Values
	}
	if dto.Interests != nil {
		existing.Interests = dto.Interests
	}
	if dto.IsVisible != nil {
		existing.IsVisible = *dto.IsVisible
	}

	if err := s.repo.UpsertVectors(ctx, existing); err != nil {
		return nil, err
	}
	return s.repo.GetBundle(ctx, userID)
}

func (s *service) Candidates(ctx context.Context, excludeUserID string, limit, offset int) ([]*VectorBundle, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.FindCandidates(ctx, excludeUserID, limit, offset)
}

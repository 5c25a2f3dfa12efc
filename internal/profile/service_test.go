package profile

import (
	"context"
	"errors"
	"testing"
)

type fakeRepository struct {
	bundles map[string]*VectorBundle

	lastLimit  int
	lastOffset int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{bundles: make(map[string]*VectorBundle)}
}

func (r *fakeRepository) GetBundle(_ context.Context, userID string) (*VectorBundle, error) {
	bundle, ok := r.bundles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	copied := *bundle
	return &copied, nil
}

func (r *fakeRepository) UpsertVectors(_ context.Context, bundle *VectorBundle) error {
	copied := *bundle
	r.bundles[bundle.UserID] = &copied
	return nil
}

func (r *fakeRepository) FindCandidates(_ context.Context, excludeUserID string, limit, offset int) ([]*VectorBundle, error) {
	r.lastLimit = limit
	r.lastOffset = offset
	return nil, nil
}

func quizDTO() *SubmitQuizDTO {
	return &SubmitQuizDTO{
		Personality:        &PersonalityTraits{Openness: 70, Conscientiousness: 60, Extraversion: 50, Agreeableness: 80, Neuroticism: 40},
		LoveLanguages:      &LoveLanguages{QualityTime: 60, PhysicalTouch: 40},
		CommunicationStyle: &CommunicationStyle{Directness: 55, EmotionalExpression: 65, ConflictResolution: 60, Humor: 70},
		Lifestyle:          &Lifestyle{SocialActivity: 45, Adventure: 55, Routine: 60, WorkLifeBalance: 70},
		Values:             []string{"honesty", "kindness"},
		Interests:          []string{"reading", "yoga"},
	}
}

func TestSubmitQuizResults(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	bundle, err := svc.SubmitQuizResults(context.Background(), "alice", quizDTO())
	if err != nil {
		t.Fatalf("SubmitQuizResults returned error: %v", err)
	}

	if !bundle.QuizCompleted {
		t.Error("quiz submission must mark the quiz completed")
	}
	if !bundle.IsVisible {
		t.Error("new profiles should default to visible")
	}
	if !bundle.HasAnyCategory() {
		t.Error("submitted bundle reports no categories")
	}
}

func TestUpdateVectorsPartial(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.SubmitQuizResults(ctx, "alice", quizDTO()); err != nil {
		t.Fatal(err)
	}

	hidden := false
	updated, err := svc.UpdateVectors(ctx, "alice", &UpdateVectorsDTO{
		Interests: []string{"climbing"},
		IsVisible: &hidden,
	})
	if err != nil {
		t.Fatalf("UpdateVectors returned error: %v", err)
	}

	if len(updated.Interests) != 1 || updated.Interests[0] != "climbing" {
		t.Errorf("interests = %v, want [climbing]", updated.Interests)
	}
	if updated.IsVisible {
		t.Error("visibility update not applied")
	}
	// Untouched categories survive the partial update.
	if updated.Personality == nil || updated.Personality.Openness != 70 {
		t.Error("partial update clobbered personality")
	}
	if !updated.QuizCompleted {
		t.Error("partial update must not reset quiz completion")
	}
}

func TestUpdateVectorsMissingProfile(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.UpdateVectors(context.Background(), "ghost", &UpdateVectorsDTO{})
	if !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("error = %v, want ErrProfileNotFound", err)
	}
}

func TestCandidatesClampsPaging(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()

	cases := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, 10, 0},
		{-5, -3, 10, 0},
		{100, 2, 10, 2},
		{25, 5, 25, 5},
	}

	for _, tc := range cases {
		if _, err := svc.Candidates(ctx, "alice", tc.limit, tc.offset); err != nil {
			t.Fatalf("Candidates(%d, %d) returned error: %v", tc.limit, tc.offset, err)
		}
		if repo.lastLimit != tc.wantLimit || repo.lastOffset != tc.wantOffset {
			t.Errorf("Candidates(%d, %d) passed (%d, %d), want (%d, %d)",
				tc.limit, tc.offset, repo.lastLimit, repo.lastOffset, tc.wantLimit, tc.wantOffset)
		}
	}
}

func TestHasAnyCategory(t *testing.T) {
	var nilBundle *VectorBundle
	if nilBundle.HasAnyCategory() {
		t.Error("nil bundle reports categories")
	}

	empty := &VectorBundle{UserID: "alice"}
	if empty.HasAnyCategory() {
		t.Error("empty bundle reports categories")
	}

	interestsOnly := &VectorBundle{UserID: "alice", Interests: []string{"art"}}
	if !interestsOnly.HasAnyCategory() {
		t.Error("interests alone should count as a category")
	}
}

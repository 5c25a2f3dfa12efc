package matching

import (
	"math"

	"github.com/loveos/loveos-backend/internal/profile"
)

// neutralScore is used whenever a whole category is missing for either user,
// so incomplete quiz data is treated as unknown rather than incompatible.
const neutralScore = 50

// highQualityThreshold marks matches worth surfacing prominently.
const highQualityThreshold = 75

// ScorerConfig parameterizes the scorer. The engine carries no global state;
// alternative weightings can be constructed for experiments without touching
// the defaults.
type ScorerConfig struct {
	Weights     CategoryWeights
	Personality PersonalityTolerances
	Comm        CommTolerances
	Lifestyle   LifestyleTolerances
}

// CategoryWeights must sum to 1.0.
type CategoryWeights struct {
	Personality        float64
	LoveLanguages      float64
	CommunicationStyle float64
	Lifestyle          float64
	Values             float64
	Interests          float64
}

// PersonalityTolerances holds the per-trait difference multipliers for the
// similarity-based Big Five traits. Agreeableness and neuroticism use level
// rather than similarity and have no tolerance.
type PersonalityTolerances struct {
	Openness          float64
	Conscientiousness float64
	Extraversion      float64
}

type CommTolerances struct {
	Directness          float64
	EmotionalExpression float64
	ConflictResolution  float64
	Humor               float64
}

type LifestyleTolerances struct {
	SocialActivity  float64
	Adventure       float64
	Routine         float64
	WorkLifeBalance float64
}

// DefaultScorerConfig returns the production weight and tolerance tables.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		Weights: CategoryWeights{
			Personality:        0.25,
			LoveLanguages:      0.20,
			CommunicationStyle: 0.20,
			Lifestyle:          0.15,
			Values:             0.10,
			Interests:          0.10,
		},
		Personality: PersonalityTolerances{
			Openness:          0.8,
			Conscientiousness: 0.8,
			Extraversion:      0.6,
		},
		Comm: CommTolerances{
			Directness:          0.7,
			EmotionalExpression: 0.5,
			ConflictResolution:  0.8,
			Humor:               0.9,
		},
		Lifestyle: LifestyleTolerances{
			SocialActivity:  0.6,
			Adventure:       0.8,
			Routine:         0.7,
			WorkLifeBalance: 0.8,
		},
	}
}

// ScoreResult is the full output of one compatibility computation.
type ScoreResult struct {
	Overall       int       `json:"compatibility_score"`
	Breakdown     Breakdown `json:"compatibility_breakdown"`
	Explanation   string    `json:"explanation"`
	IsHighQuality bool      `json:"is_high_quality"`
}

// Scorer computes multi-factor psychological compatibility between two
// profile vector bundles. It is pure and deterministic: no side effects, and
// Score(a, b) == Score(b, a) for the overall score and every sub-factor.
type Scorer struct {
	config ScorerConfig
}

func NewScorer(config ScorerConfig) *Scorer {
	return &Scorer{config: config}
}

// Score computes the weighted compatibility of two bundles. Either bundle may
// have missing categories; those contribute the neutral score instead of
// failing.
func (s *Scorer) Score(a, b *profile.VectorBundle) *ScoreResult {
	breakdown := Breakdown{
		Personality:        s.scorePersonality(a.Personality, b.Personality),
		LoveLanguages:      s.scoreLoveLanguages(a.LoveLanguages, b.LoveLanguages),
		CommunicationStyle: s.scoreCommunication(a.CommunicationStyle, b.CommunicationStyle),
		Lifestyle:          s.scoreLifestyle(a.Lifestyle, b.Lifestyle),
		Values:             jaccardScore(a.Values, b.Values),
		Interests:          jaccardScore(a.Interests, b.Interests),
	}

	overall := s.aggregate(breakdown)

	return &ScoreResult{
		Overall:       overall,
		Breakdown:     breakdown,
		Explanation:   buildExplanation(breakdown, overall),
		IsHighQuality: overall >= highQualityThreshold,
	}
}

func (s *Scorer) aggregate(breakdown Breakdown) int {
	w := s.config.Weights
	total := float64(breakdown.Personality)*w.Personality +
		float64(breakdown.LoveLanguages)*w.LoveLanguages +
		float64(breakdown.CommunicationStyle)*w.CommunicationStyle +
		float64(breakdown.Lifestyle)*w.Lifestyle +
		float64(breakdown.Values)*w.Values +
		float64(breakdown.Interests)*w.Interests
	return int(math.Round(total))
}

// scorePersonality averages the five Big Five trait compatibilities.
// Openness, conscientiousness and extraversion reward similarity (with
// extraversion tolerating more difference as complementary); agreeableness
// rewards a high joint level; neuroticism rewards a low joint level.
func (s *Scorer) scorePersonality(p1, p2 *profile.PersonalityTraits) int {
	if p1 == nil || p2 == nil {
		return neutralScore
	}

	tol := s.config.Personality
	total := similarityCompat(p1.Openness, p2.Openness, tol.Openness) +
		similarityCompat(p1.Conscientiousness, p2.Conscientiousness, tol.Conscientiousness) +
		similarityCompat(p1.Extraversion, p2.Extraversion, tol.Extraversion) +
		clamp((p1.Agreeableness+p2.Agreeableness)/2) +
		clamp(100-(p1.Neuroticism+p2.Neuroticism)/2)

	return int(math.Round(total / 5))
}

// scoreLoveLanguages matches how each person gives against how the other
// receives. A person's channel score models both what they offer and what
// they need, so each direction is min(give, receive)*2 and the two directions
// are averaged. Unnormalized channel sums are tolerated by construction.
func (s *Scorer) scoreLoveLanguages(l1, l2 *profile.LoveLanguages) int {
	if l1 == nil || l2 == nil {
		return neutralScore
	}

	channels := [][2]float64{
		{l1.WordsOfAffirmation, l2.WordsOfAffirmation},
		{l1.ActsOfService, l2.ActsOfService},
		{l1.ReceivingGifts, l2.ReceivingGifts},
		{l1.QualityTime, l2.QualityTime},
		{l1.PhysicalTouch, l2.PhysicalTouch},
	}

	var total float64
	for _, ch := range channels {
		oneToTwo := math.Min(ch[0], ch[1]) * 2
		twoToOne := math.Min(ch[1], ch[0]) * 2
		total += clamp((oneToTwo + twoToOne) / 2)
	}

	return int(math.Round(total / float64(len(channels))))
}

func (s *Scorer) scoreCommunication(c1, c2 *profile.CommunicationStyle) int {
	if c1 == nil || c2 == nil {
		return neutralScore
	}

	tol := s.config.Comm
	total := similarityCompat(c1.Directness, c2.Directness, tol.Directness) +
		similarityCompat(c1.EmotionalExpression, c2.EmotionalExpression, tol.EmotionalExpression) +
		similarityCompat(c1.ConflictResolution, c2.ConflictResolution, tol.ConflictResolution) +
		similarityCompat(c1.Humor, c2.Humor, tol.Humor)

	return int(math.Round(total / 4))
}

func (s *Scorer) scoreLifestyle(f1, f2 *profile.Lifestyle) int {
	if f1 == nil || f2 == nil {
		return neutralScore
	}

	tol := s.config.Lifestyle
	total := similarityCompat(f1.SocialActivity, f2.SocialActivity, tol.SocialActivity) +
		similarityCompat(f1.Adventure, f2.Adventure, tol.Adventure) +
		similarityCompat(f1.Routine, f2.Routine, tol.Routine) +
		similarityCompat(f1.WorkLifeBalance, f2.WorkLifeBalance, tol.WorkLifeBalance)

	return int(math.Round(total / 4))
}

// jaccardScore is |intersection| / |union| scaled to 0-100. Either set being
// empty yields the neutral score so missing data is not penalized as zero
// overlap.
func jaccardScore(set1, set2 []string) int {
	if len(set1) == 0 || len(set2) == 0 {
		return neutralScore
	}

	seen := make(map[string]bool, len(set1))
	for _, v := range set1 {
		seen[v] = true
	}

	matched := make(map[string]bool, len(set2))
	intersection := 0
	union := len(seen)
	for _, v := range set2 {
		if matched[v] {
			continue
		}
		matched[v] = true
		if seen[v] {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return neutralScore
	}
	return int(math.Round(float64(intersection) / float64(union) * 100))
}

// similarityCompat converts a trait difference into a compatibility value
// using the trait's tolerance multiplier.
func similarityCompat(a, b, tolerance float64) float64 {
	return clamp(100 - math.Abs(a-b)*tolerance)
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

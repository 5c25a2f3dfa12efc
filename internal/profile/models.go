package profile

import (
	"time"
)

// Per-trait fallbacks for partially answered categories: trait scales sit at
// the 50 midpoint, love-language channels at an even 20 share.
const (
	defaultTraitScore   = 50
	defaultChannelShare = 20
)

// PersonalityTraits holds the Big Five scores on a 0-100 scale.
type PersonalityTraits struct {
	Openness          float64 `json:"openness" validate:"min=0,max=100"`
	Conscientiousness float64 `json:"conscientiousness" validate:"min=0,max=100"`
	Extraversion      float64 `json:"extraversion" validate:"min=0,max=100"`
	Agreeableness     float64 `json:"agreeableness" validate:"min=0,max=100"`
	Neuroticism       float64 `json:"neuroticism" validate:"min=0,max=100"`
}

// LoveLanguages holds the five channel scores. The quiz normalizes these to
// sum to 100, but partial updates can leave them unnormalized; consumers must
// tolerate that.
type LoveLanguages struct {
	WordsOfAffirmation float64 `json:"words_of_affirmation" validate:"min=0,max=100"`
	ActsOfService      float64 `json:"acts_of_service" validate:"min=0,max=100"`
	ReceivingGifts     float64 `json:"receiving_gifts" validate:"min=0,max=100"`
	QualityTime        float64 `json:"quality_time" validate:"min=0,max=100"`
	PhysicalTouch      float64 `json:"physical_touch" validate:"min=0,max=100"`
}

type CommunicationStyle struct {
	Directness          float64 `json:"directness" validate:"min=0,max=100"`
	EmotionalExpression float64 `json:"emotional_expression" validate:"min=0,max=100"`
	ConflictResolution  float64 `json:"conflict_resolution" validate:"min=0,max=100"`
	Humor               float64 `json:"humor" validate:"min=0,max=100"`
}

type Lifestyle struct {
	SocialActivity  float64 `json:"social_activity" validate:"min=0,max=100"`
	Adventure       float64 `json:"adventure" validate:"min=0,max=100"`
	Routine         float64 `json:"routine" validate:"min=0,max=100"`
	WorkLifeBalance float64 `json:"work_life_balance" validate:"min=0,max=100"`
}

// applyDefaults fills unanswered traits with the midpoint fallback. A stored
// zero is indistinguishable from an absent field and takes the default too,
// so a half-answered quiz category never drags scores toward zero.
func (p *PersonalityTraits) applyDefaults() {
	if p == nil {
		return
	}
	p.Openness = defaulted(p.Openness, defaultTraitScore)
	p.Conscientiousness = defaulted(p.Conscientiousness, defaultTraitScore)
	p.Extraversion = defaulted(p.Extraversion, defaultTraitScore)
	p.Agreeableness = defaulted(p.Agreeableness, defaultTraitScore)
	p.Neuroticism = defaulted(p.Neuroticism, defaultTraitScore)
}

func (l *LoveLanguages) applyDefaults() {
	if l == nil {
		return
	}
	l.WordsOfAffirmation = defaulted(l.WordsOfAffirmation, defaultChannelShare)
	l.ActsOfService = defaulted(l.ActsOfService, defaultChannelShare)
	l.ReceivingGifts = defaulted(l.ReceivingGifts, defaultChannelShare)
	l.QualityTime = defaulted(l.QualityTime, defaultChannelShare)
	l.PhysicalTouch = defaulted(l.PhysicalTouch, defaultChannelShare)
}

func (c *CommunicationStyle) applyDefaults() {
	if c == nil {
		return
	}
	c.Directness = defaulted(c.Directness, defaultTraitScore)
	c.EmotionalExpression = defaulted(c.EmotionalExpression, defaultTraitScore)
	c.ConflictResolution = defaulted(c.ConflictResolution, defaultTraitScore)
	c.Humor = defaulted(c.Humor, defaultTraitScore)
}

func (f *Lifestyle) applyDefaults() {
	if f == nil {
		return
	}
	f.SocialActivity = defaulted(f.SocialActivity, defaultTraitScore)
	f.Adventure = defaulted(f.Adventure, defaultTraitScore)
	f.Routine = defaulted(f.Routine, defaultTraitScore)
	f.WorkLifeBalance = defaulted(f.WorkLifeBalance, defaultTraitScore)
}

func defaulted(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

// VectorBundle is the read-only view of a user's psychological profile that
// the matching engine consumes. A nil category means the user has not
// completed that part of the quiz.
type VectorBundle struct {
	UserID             string              `json:"user_id"`
	Personality        *PersonalityTraits  `json:"personality,omitempty"`
	LoveLanguages      *LoveLanguages      `json:"love_languages,omitempty"`
	CommunicationStyle *CommunicationStyle `json:"communication_style,omitempty"`
	Lifestyle          *Lifestyle          `json:"lifestyle,omitempty"`
	Values             []string            `json:"values"`
	Interests          []string            `json:"interests"`
	QuizCompleted      bool                `json:"quiz_completed"`
	IsVisible          bool                `json:"is_visible"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// HasAnyCategory reports whether at least one quiz category has been
// completed. The match lifecycle refuses to create records for users with no
// compatibility data at all.
func (b *VectorBundle) HasAnyCategory() bool {
	if b == nil {
		return false
	}
	return b.Personality != nil ||
		b.LoveLanguages != nil ||
		b.CommunicationStyle != nil ||
		b.Lifestyle != nil ||
		len(b.Values) > 0 ||
		len(b.Interests) > 0
}

package profile

import (
	"testing"
)

func TestToBundleDefaultsUnansweredTraits(t *testing.T) {
	row := &profileRow{
		UserID:        "alice",
		Personality:   []byte(`{"openness":80}`),
		LoveLanguages: []byte(`{"quality_time":60}`),
		QuizCompleted: true,
		IsVisible:     true,
	}

	bundle, err := row.toBundle()
	if err != nil {
		t.Fatalf("toBundle returned error: %v", err)
	}

	p := bundle.Personality
	if p == nil {
		t.Fatal("personality category missing")
	}
	if p.Openness != 80 {
		t.Errorf("openness = %v, want the stored 80", p.Openness)
	}
	for name, got := range map[string]float64{
		"conscientiousness": p.Conscientiousness,
		"extraversion":      p.Extraversion,
		"agreeableness":     p.Agreeableness,
		"neuroticism":       p.Neuroticism,
	} {
		if got != defaultTraitScore {
			t.Errorf("%s = %v, want fallback %v", name, got, float64(defaultTraitScore))
		}
	}

	l := bundle.LoveLanguages
	if l == nil {
		t.Fatal("love languages category missing")
	}
	if l.QualityTime != 60 {
		t.Errorf("quality_time = %v, want the stored 60", l.QualityTime)
	}
	for name, got := range map[string]float64{
		"words_of_affirmation": l.WordsOfAffirmation,
		"acts_of_service":      l.ActsOfService,
		"receiving_gifts":      l.ReceivingGifts,
		"physical_touch":       l.PhysicalTouch,
	} {
		if got != defaultChannelShare {
			t.Errorf("%s = %v, want fallback %v", name, got, float64(defaultChannelShare))
		}
	}

	// Whole categories the user never started stay nil rather than being
	// synthesized from fallbacks.
	if bundle.CommunicationStyle != nil || bundle.Lifestyle != nil {
		t.Error("absent categories must stay nil")
	}
}

func TestToBundleDefaultsExplicitZeros(t *testing.T) {
	row := &profileRow{
		UserID:      "alice",
		Personality: []byte(`{"openness":80,"conscientiousness":0,"neuroticism":0}`),
		Lifestyle:   []byte(`{"routine":0,"adventure":70}`),
	}

	bundle, err := row.toBundle()
	if err != nil {
		t.Fatalf("toBundle returned error: %v", err)
	}

	// A stored zero reads back as the midpoint, same as an absent field.
	if bundle.Personality.Conscientiousness != defaultTraitScore {
		t.Errorf("conscientiousness = %v, want %v", bundle.Personality.Conscientiousness, float64(defaultTraitScore))
	}
	if bundle.Personality.Neuroticism != defaultTraitScore {
		t.Errorf("neuroticism = %v, want %v", bundle.Personality.Neuroticism, float64(defaultTraitScore))
	}
	if bundle.Lifestyle.Routine != defaultTraitScore {
		t.Errorf("routine = %v, want %v", bundle.Lifestyle.Routine, float64(defaultTraitScore))
	}
	if bundle.Lifestyle.Adventure != 70 {
		t.Errorf("adventure = %v, want the stored 70", bundle.Lifestyle.Adventure)
	}
}

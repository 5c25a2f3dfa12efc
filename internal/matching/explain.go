package matching

import (
	"sort"
	"strings"
)

// Explanation thresholds. A factor at or above strongThreshold gets its
// "strong" sentence, one at or above developingThreshold gets its
// "developing" sentence, anything lower is omitted.
const (
	strongThreshold     = 80
	developingThreshold = 60
)

var strongFactorSentences = map[string]string{
	"personality":         "Your personalities complement each other beautifully.",
	"love_languages":      "You speak each other's love language fluently.",
	"communication_style": "You communicate in ways that resonate with each other.",
	"lifestyle":           "Your lifestyles are perfectly aligned.",
	"values":              "You share core values that create a strong foundation.",
	"interests":           "You have many shared interests to explore together.",
}

var developingFactorSentences = map[string]string{
	"personality":         "Your personalities have good potential for growth together.",
	"love_languages":      "You can learn to speak each other's love language.",
	"communication_style": "Your communication styles can complement each other.",
	"lifestyle":           "Your lifestyles have good potential for harmony.",
	"values":              "You share some important values.",
	"interests":           "You have some shared interests to build upon.",
}

// buildExplanation produces the templated compatibility summary: one overall
// sentence chosen by the overall score, followed by sentences for the top
// three factors that clear a threshold.
func buildExplanation(breakdown Breakdown, overall int) string {
	type factorScore struct {
		name  string
		score int
	}

	factors := []factorScore{
		{"personality", breakdown.Personality},
		{"love_languages", breakdown.LoveLanguages},
		{"communication_style", breakdown.CommunicationStyle},
		{"lifestyle", breakdown.Lifestyle},
		{"values", breakdown.Values},
		{"interests", breakdown.Interests},
	}

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].score > factors[j].score
	})

	sentences := []string{overallSentence(overall)}
	for _, f := range factors[:3] {
		switch {
		case f.score >= strongThreshold:
			sentences = append(sentences, strongFactorSentences[f.name])
		case f.score >= developingThreshold:
			sentences = append(sentences, developingFactorSentences[f.name])
		}
	}

	return strings.Join(sentences, " ")
}

func overallSentence(overall int) string {
	switch {
	case overall >= 85:
		return "Exceptional compatibility! You share deep connections across multiple areas."
	case overall >= 70:
		return "Great compatibility! You have strong potential for a meaningful connection."
	case overall >= 55:
		return "Good compatibility with room to grow together."
	default:
		return "Interesting potential - opposites can attract and complement each other."
	}
}

package profile

// DTOs for the profile vectors API

type SubmitQuizDTO struct {
	Personality        *PersonalityTraits  `json:"personality" validate:"required"`
	LoveLanguages      *LoveLanguages      `json:"love_languages" validate:"required"`
	CommunicationStyle *CommunicationStyle `json:"communication_style" validate:"required"`
	Lifestyle          *Lifestyle          `json:"lifestyle" validate:"required"`
	Values             []string            `json:"values" validate:"max=20"`
	Interests          []string            `json:"interests" validate:"max=30"`
}

type UpdateVectorsDTO struct {
	Personality        *PersonalityTraits  `json:"personality,omitempty"`
	LoveLanguages      *LoveLanguages      `json:"love_languages,omitempty"`
	CommunicationStyle *CommunicationStyle `json:"communication_style,omitempty"`
	Lifestyle          *Lifestyle          `json:"lifestyle,omitempty"`
	Values             []string            `json:"values,omitempty"`
	Interests          []string            `json:"interests,omitempty"`
	IsVisible          *bool               `json:"is_visible,omitempty"`
}

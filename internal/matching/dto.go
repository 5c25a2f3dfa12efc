package matching

// DTOs for API requests/responses

type ActionDTO struct {
	Action string `json:"action" validate:"required,oneof=like pass"`
}

type ActionResponseDTO struct {
	Message            string `json:"message"`
	IsMatch            bool   `json:"is_match"`
	MatchID            int64  `json:"match_id,omitempty"`
	ChatRoomID         string `json:"chat_room_id,omitempty"`
	CompatibilityScore int    `json:"compatibility_score,omitempty"`
}

package dto

import "time"

// CreateReactionRequest is the inbound reaction payload. The acting user, if
// any, comes from the auth layer, never from the body.
type CreateReactionRequest struct {
	ConfessionID string `json:"confession_id" validate:"required,uuid"`
	Emoji        string `json:"emoji" validate:"required,max=16"`
}

type ReactionResponse struct {
	ID           string    `json:"id"`
	Emoji        string    `json:"emoji"`
	ConfessionID string    `json:"confession_id"`
	UserID       *string   `json:"user_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

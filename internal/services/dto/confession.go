package dto

import "time"

type CreateConfessionRequest struct {
	Message string `json:"message" validate:"required,min=1,max=5000"`
	// Anonymous drops the author reference even when the caller is logged in.
	Anonymous bool `json:"anonymous"`
}

type ConfessionResponse struct {
	ID            string             `json:"id"`
	Message       string             `json:"message"`
	UserID        *string            `json:"user_id,omitempty"`
	Reactions     []ReactionResponse `json:"reactions,omitempty"`
	ReactionCount int                `json:"reaction_count"`
	CreatedAt     time.Time          `json:"created_at"`
}

type ConfessionListResponse struct {
	Confessions []ConfessionResponse `json:"confessions"`
	Total       int64                `json:"total"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"page_size"`
}

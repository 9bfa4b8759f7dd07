package model

import "time"

type Reward struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      uint64 `json:"points"`
	Type        string `json:"type"`
	PartnerID   string `json:"partner_id,omitempty"`
	PartnerName string `json:"partner_name,omitempty"`

	// Quantity and RemainingQuantity are omitted for unlimited rewards.
	Quantity          *int64 `json:"quantity,omitempty"`
	RemainingQuantity *int64 `json:"remaining_quantity,omitempty"`

	IsActive       bool   `json:"is_active"`
	AvailableFrom  string `json:"available_from,omitempty"`
	AvailableUntil string `json:"available_until,omitempty"`
}

type CreateRewardRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Points         uint64     `json:"points"`
	Type           string     `json:"type"`
	PartnerID      string     `json:"partner_id"`
	Quantity       *int64     `json:"quantity"`
	AvailableFrom  *time.Time `json:"available_from"`
	AvailableUntil *time.Time `json:"available_until"`
}

type CreateRewardResponse Reward

// UpdateRewardRequest is a partial update; nil fields are untouched.
type UpdateRewardRequest struct {
	ID             string     `json:"id"`
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Points         *uint64    `json:"points"`
	Quantity       *int64     `json:"quantity"`
	AvailableFrom  *time.Time `json:"available_from"`
	AvailableUntil *time.Time `json:"available_until"`
}

type UpdateRewardResponse Reward

type DeactivateRewardRequest struct {
	ID string `json:"id"`
}

type DeactivateRewardResponse Reward

type GetRewardRequest struct {
	ID string `json:"id" form:"id"`
}

type GetRewardResponse Reward

type GetListRewardRequest struct {
	OnlyActive bool `json:"only_active" form:"only_active"`
	Offset     int  `json:"offset" form:"offset"`
	Limit      int  `json:"limit" form:"limit"`
}

type GetListRewardResponse struct {
	Rewards []Reward `json:"rewards"`
}

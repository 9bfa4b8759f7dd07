package model

type RewardSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	PartnerName string `json:"partner_name,omitempty"`
}

type Redemption struct {
	ID          string        `json:"id"`
	Code        string        `json:"code"`
	PointsSpent uint64        `json:"points_spent"`
	RedeemedAt  string        `json:"redeemed_at"`
	Reward      RewardSummary `json:"reward"`
}

type RedeemRewardRequest struct {
	RewardID string `json:"reward_id"`
}

type RedeemRewardResponse Redemption

type GetMyRedemptionsRequest struct{}

type GetMyRedemptionsResponse struct {
	Redemptions      []Redemption `json:"redemptions"`
	TotalPointsSpent uint64       `json:"total_points_spent"`
}

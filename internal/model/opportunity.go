package model

import "time"

type Opportunity struct {
	ID            string  `json:"id"`
	PromoterID    string  `json:"promoter_id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Location      string  `json:"location,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	MaxVolunteers int     `json:"max_volunteers"`
	ApprovedCount int64   `json:"approved_count"`
	Points        uint64  `json:"points"`
	Status        string  `json:"status"`
	Skills        []Skill `json:"skills"`
}

type CreateOpportunityRequest struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	MaxVolunteers int       `json:"max_volunteers"`
	Points        uint64    `json:"points"`
	SkillIDs      []string  `json:"skill_ids"`
}

type CreateOpportunityResponse Opportunity

// UpdateOpportunityRequest is a partial update; nil fields are untouched.
type UpdateOpportunityRequest struct {
	ID            string     `json:"id"`
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Location      *string    `json:"location"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	MaxVolunteers *int       `json:"max_volunteers"`
	Points        *uint64    `json:"points"`
	SkillIDs      []string   `json:"skill_ids"`
}

type UpdateOpportunityResponse Opportunity

type PublishOpportunityRequest struct {
	ID string `json:"id"`
}

type PublishOpportunityResponse Opportunity

type CancelOpportunityRequest struct {
	ID string `json:"id"`
}

type CancelOpportunityResponse Opportunity

type GetOpportunityRequest struct {
	ID string `json:"id" form:"id"`
}

type GetOpportunityResponse Opportunity

type GetMyOpportunitiesRequest struct{}

type GetMyOpportunitiesResponse struct {
	Opportunities []Opportunity `json:"opportunities"`
}

type GetListOpportunityRequest struct {
	SkillIDs  []string  `json:"skill_ids" form:"skill_ids"`
	StartFrom time.Time `json:"start_from" form:"start_from" time_format:"2006-01-02"`
	StartTo   time.Time `json:"start_to" form:"start_to" time_format:"2006-01-02"`
	MinPoints uint64    `json:"min_points" form:"min_points"`
	MaxPoints uint64    `json:"max_points" form:"max_points"`

	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type GetListOpportunityResponse struct {
	Opportunities []Opportunity `json:"opportunities"`
}

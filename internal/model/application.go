package model

type Application struct {
	ID            string `json:"id"`
	OpportunityID string `json:"opportunity_id"`
	VolunteerID   string `json:"volunteer_id"`
	Message       string `json:"message,omitempty"`
	Status        string `json:"status"`
	ReviewerID    string `json:"reviewer_id,omitempty"`
	AppliedAt     string `json:"applied_at"`
	ReviewedAt    string `json:"reviewed_at,omitempty"`
	CompletedAt   string `json:"completed_at,omitempty"`
}

type ApplyRequest struct {
	OpportunityID string `json:"opportunity_id"`
	Message       string `json:"message"`
}

type ApplyResponse Application

type ApproveApplicationRequest struct {
	ID string `json:"id"`
}

type ApproveApplicationResponse Application

type RejectApplicationRequest struct {
	ID string `json:"id"`
}

type RejectApplicationResponse Application

type CompleteApplicationRequest struct {
	ID string `json:"id"`
}

type CompleteApplicationResponse Application

type GetMyApplicationsRequest struct{}

type GetMyApplicationsResponse struct {
	Applications []Application `json:"applications"`
}

type GetListApplicationRequest struct {
	OpportunityID string `json:"opportunity_id" form:"opportunity_id"`
}

type GetListApplicationResponse struct {
	Applications  []Application `json:"applications"`
	ApprovedCount int64         `json:"approved_count"`
}

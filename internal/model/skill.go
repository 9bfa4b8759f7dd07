package model

type Skill struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CreateSkillRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateSkillResponse struct {
	ID string `json:"id"`
}

type GetListSkillRequest struct{}

type GetListSkillResponse struct {
	Skills []Skill `json:"skills"`
}

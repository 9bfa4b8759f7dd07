package model

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Points uint64 `json:"points"`
}

type GetMeRequest struct{}

type GetMeResponse User

type GetUserRequest struct {
	ID string `json:"id" form:"id"`
}

type GetUserResponse User

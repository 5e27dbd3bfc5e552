package types

type UserResponse struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Reputation int    `json:"reputation"`
}

type UserStatsResponse struct {
	Deals    int64 `json:"deals"`
	Comments int64 `json:"comments"`
	Karma    int   `json:"karma"`
	Saved    int64 `json:"saved"`
}

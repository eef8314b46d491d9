package model

type ToggleFollowRequest struct {
	UserID string `uri:"user_id"`
}

type ToggleFollowResponse struct {
	Following bool `json:"following"`
}

type GetFollowersRequest struct {
	Username string `uri:"username"`
}

type GetFollowersResponse struct {
	Users []ShortUser `json:"users"`
}

type GetFollowingsRequest struct {
	Username string `uri:"username"`
}

type GetFollowingsResponse struct {
	Users []ShortUser `json:"users"`
}

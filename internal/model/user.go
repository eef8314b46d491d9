package model

type GetProfileRequest struct {
	Username string `uri:"username"`
}

type GetProfileResponse struct {
	User           User  `json:"user"`
	PostCount      int64 `json:"post_count"`
	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
}

type UpdateProfileRequest struct {
	Nickname     string `json:"nickname"`
	Bio          string `json:"bio"`
	ImageOffsetX *int   `json:"image_offset_x"`
	ImageOffsetY *int   `json:"image_offset_y"`
}

type UpdateProfileResponse struct{}

type UploadAvatarRequest struct{}

type UploadAvatarResponse struct {
	URL string `json:"url"`
}

type GetProfileCommunitiesRequest struct {
	Username string `uri:"username"`
}

type GetProfileCommunitiesResponse struct {
	Communities []Community `json:"communities"`
}

type GetProfilePostsRequest struct {
	Username string `uri:"username"`
	Sort     string `form:"sort"`
	Page     int    `form:"page"`
	Size     int    `form:"size"`
}

type GetProfilePostsResponse struct {
	Posts []Post `json:"posts"`
}

type DeleteUserRequest struct {
	ID string `uri:"id"`
}

type DeleteUserResponse struct{}

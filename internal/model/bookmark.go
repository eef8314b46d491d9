package model

type ToggleBookmarkRequest struct {
	PostID string `uri:"post_id"`
}

type ToggleBookmarkResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

type GetBookmarkStatusRequest struct {
	PostID string `uri:"post_id"`
}

type GetBookmarkStatusResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

type GetBookmarksRequest struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

type GetBookmarksResponse struct {
	Posts []Post `json:"posts"`
}

package model

type CreatePostRequest struct {
	CommunityID string `json:"community_id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
}

type CreatePostResponse struct {
	Post Post `json:"post"`
}

type GetPostRequest struct {
	ID string `uri:"id"`
}

type GetPostResponse struct {
	Post Post `json:"post"`
}

type GetPostsRequest struct {
	CommunityID string `form:"community_id"`
	AuthorID    string `form:"author_id"`
	Sort        string `form:"sort"`
	Offset      int    `form:"offset"`
	Limit       int    `form:"limit"`
}

type GetPostsResponse struct {
	Posts []Post `json:"posts"`
}

type UpdatePostRequest struct {
	ID      string `uri:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdatePostResponse struct{}

type DeletePostRequest struct {
	ID string `uri:"id"`
}

type DeletePostResponse struct{}

type LikePostRequest struct {
	ID string `uri:"id"`
}

type LikePostResponse struct{}

type DislikePostRequest struct {
	ID string `uri:"id"`
}

type DislikePostResponse struct{}

type GetTopPostsThisWeekRequest struct {
	Limit int `form:"limit"`
}

type GetTopPostsThisWeekResponse struct {
	Posts []Post `json:"posts"`
}

type GetMyCommunityPostsRequest struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

type GetMyCommunityPostsResponse struct {
	Posts []Post `json:"posts"`
}

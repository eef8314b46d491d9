package model

type CreateCommentRequest struct {
	PostID   string `json:"post_id"`
	ParentID string `json:"parent_id"`
	Content  string `json:"content"`
}

type CreateCommentResponse struct {
	Comment Comment `json:"comment"`
}

type GetCommentsRequest struct {
	PostID string `form:"post_id"`
}

type GetCommentsResponse struct {
	Comments []Comment `json:"comments"`
}

type LikeCommentRequest struct {
	ID string `uri:"id"`
}

type LikeCommentResponse struct{}

type DislikeCommentRequest struct {
	ID string `uri:"id"`
}

type DislikeCommentResponse struct{}

type DeleteCommentRequest struct {
	ID string `uri:"id"`
}

type DeleteCommentResponse struct{}

package model

type CreateCommunityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateCommunityResponse struct {
	Community Community `json:"community"`
}

type GetCommunitiesRequest struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

type GetCommunitiesResponse struct {
	Communities []Community `json:"communities"`
}

type GetCommunityRequest struct {
	ID string `uri:"id"`
}

type GetCommunityResponse struct {
	Community Community `json:"community"`
}

type JoinCommunityRequest struct {
	ID string `uri:"id"`
}

type JoinCommunityResponse struct{}

type LeaveCommunityRequest struct {
	ID string `uri:"id"`
}

type LeaveCommunityResponse struct{}

type GetCommunityMembersRequest struct {
	ID     string `uri:"id"`
	Offset int    `form:"offset"`
	Limit  int    `form:"limit"`
}

type GetCommunityMembersResponse struct {
	Members []CommunityMember `json:"members"`
}

type GetOnlineMembersRequest struct {
	ID string `uri:"id"`
}

type GetOnlineMembersResponse struct {
	Users []ShortUser `json:"users"`
}

type GetNewMembersRequest struct {
	ID    string `uri:"id"`
	Limit int    `form:"limit"`
}

type GetNewMembersResponse struct {
	Members []CommunityMember `json:"members"`
}

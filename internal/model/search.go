package model

type SearchRequest struct {
	Query string `form:"query"`
}

type SearchResponse struct {
	Posts       []Post      `json:"posts"`
	Communities []Community `json:"communities"`
	Users       []ShortUser `json:"users"`
}

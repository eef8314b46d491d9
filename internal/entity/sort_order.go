package entity

import (
	"strings"

	"github.com/forumlab/backend/pkg/enum"
	"github.com/forumlab/backend/pkg/errorx"
)

type SortOrder string

var (
	SortOrderNewest = enum.New(SortOrder("newest"))
	SortOrderOldest = enum.New(SortOrder("oldest"))
	SortOrderTop    = enum.New(SortOrder("top"))
)

// ParseSortOrder is case-insensitive and accepts the legacy aliases
// top_liked and topliked for top. An empty string means newest.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return SortOrderNewest, nil
	case "top_liked", "topliked":
		return SortOrderTop, nil
	}

	order, err := enum.ToEnum[SortOrder](strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return "", errorx.New(errorx.BadRequest, "Invalid sort order %s", s)
	}

	return order, nil
}

package domain

import (
	"context"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/internal/model"
	"github.com/forumlab/backend/internal/repository"
	"github.com/forumlab/backend/pkg/errorx"
	"github.com/forumlab/backend/pkg/xcontext"
)

// checkPagination clamps offset and limit against the server configs. A zero
// limit falls back to the default.
func checkPagination(ctx context.Context, offset, limit int) (int, int, error) {
	cfg := xcontext.Configs(ctx).ApiServer
	if limit == 0 {
		limit = cfg.DefaultLimit
	}

	if limit < 0 || offset < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Not allow negative offset or limit")
	}

	if limit > cfg.MaxLimit {
		return 0, 0, errorx.New(errorx.BadRequest, "Exceed the maximum limit of %d", cfg.MaxLimit)
	}

	return offset, limit, nil
}

// shortUserMap loads users and their profiles, keyed by user id.
func shortUserMap(
	ctx context.Context,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	userIDs []string,
) (map[string]model.ShortUser, error) {
	unique := map[string]struct{}{}
	ids := []string{}
	for _, id := range userIDs {
		if _, ok := unique[id]; !ok {
			unique[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	users, err := userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	profiles, err := profileRepo.GetByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	profileMap := map[string]*entity.Profile{}
	for i := range profiles {
		profileMap[profiles[i].UserID] = &profiles[i]
	}

	result := map[string]model.ShortUser{}
	for i := range users {
		result[users[i].ID] = model.ConvertShortUser(&users[i], profileMap[users[i].ID])
	}

	return result, nil
}

package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/internal/repository"
	"github.com/forumlab/backend/pkg/crypto"
)

// Plain-text password of every fixture user.
const Password = "password"

var (
	User1 = entity.User{
		Base:     entity.Base{ID: "user1"},
		Username: "user1",
		Email:    "user1@example.com",
		Role:     entity.UserRole,
	}

	User2 = entity.User{
		Base:     entity.Base{ID: "user2"},
		Username: "user2",
		Email:    "user2@example.com",
		Role:     entity.UserRole,
	}

	User3 = entity.User{
		Base:     entity.Base{ID: "user3"},
		Username: "user3",
		Email:    "user3@example.com",
		Role:     entity.AdminRole,
	}

	Community1 = entity.Community{
		Base:      entity.Base{ID: "community1"},
		Name:      "Community One",
		CreatedBy: User1.ID,
	}

	Community2 = entity.Community{
		Base:      entity.Base{ID: "community2"},
		Name:      "Community Two",
		CreatedBy: User2.ID,
	}

	Post1 = entity.Post{
		Base:        entity.Base{ID: "post1"},
		AuthorID:    User1.ID,
		CommunityID: sql.NullString{Valid: true, String: Community1.ID},
		Title:       "First post",
		Content:     "Hello from user1",
	}

	Post2 = entity.Post{
		Base:     entity.Base{ID: "post2"},
		AuthorID: User2.ID,
		Title:    "Second post",
		Content:  "Hello from user2",
	}

	Comment1 = entity.Comment{
		Base:     entity.Base{ID: "comment1"},
		PostID:   Post1.ID,
		AuthorID: User2.ID,
		Content:  "Nice post",
	}
)

// CreateFixtureDb seeds the database carried by ctx with the fixture users,
// profiles, communities, posts, and one comment.
func CreateFixtureDb(ctx context.Context) {
	insertUsers(ctx)
	insertCommunities(ctx)
	insertPosts(ctx)
}

func insertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	profileRepo := repository.NewProfileRepository()

	hashed, err := crypto.HashPassword(Password)
	if err != nil {
		panic(err)
	}

	for _, user := range []entity.User{User1, User2, User3} {
		user.HashedPassword = hashed
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}

		profile := entity.Profile{
			Base:   entity.Base{ID: "profile_" + user.ID},
			UserID: user.ID,
		}
		if err := profileRepo.Create(ctx, &profile); err != nil {
			panic(err)
		}
	}
}

func insertCommunities(ctx context.Context) {
	communityRepo := repository.NewCommunityRepository()

	for _, community := range []entity.Community{Community1, Community2} {
		if err := communityRepo.Create(ctx, &community); err != nil {
			panic(err)
		}
	}

	members := []entity.CommunityMember{
		{CommunityID: Community1.ID, UserID: User1.ID, JoinedAt: time.Now()},
		{CommunityID: Community1.ID, UserID: User2.ID, JoinedAt: time.Now()},
		{CommunityID: Community2.ID, UserID: User2.ID, JoinedAt: time.Now()},
	}
	for i := range members {
		if err := communityRepo.CreateMember(ctx, &members[i]); err != nil {
			panic(err)
		}
	}
}

func insertPosts(ctx context.Context) {
	postRepo := repository.NewPostRepository()
	commentRepo := repository.NewCommentRepository()

	for _, post := range []entity.Post{Post1, Post2} {
		if err := postRepo.Create(ctx, &post); err != nil {
			panic(err)
		}
	}

	comment := Comment1
	if err := commentRepo.Create(ctx, &comment); err != nil {
		panic(err)
	}
}

package testutil

import (
	"context"
	"time"

	"github.com/forumlab/backend/config"
	"github.com/forumlab/backend/internal/model"
	"github.com/forumlab/backend/migration"
	"github.com/forumlab/backend/pkg/logger"
	"github.com/forumlab/backend/pkg/token"
	"github.com/forumlab/backend/pkg/xcontext"

	"github.com/bwmarrin/snowflake"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env: "test",
		ApiServer: config.ServerConfigs{
			DefaultLimit: 20,
			MaxLimit:     50,
		},
		Auth: config.AuthConfigs{
			TokenSecret:     "secret",
			AccessTokenName: "access_token",
			TokenExpiration: time.Minute,
		},
		Search: config.SearchConfigs{MaxResults: 10},
		Chat:   config.ChatConfigs{SnowflakeNodeID: 1},
	}

	node, err := snowflake.NewNode(cfg.Chat.SnowflakeNodeID)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx,
		token.NewEngine[model.AccessToken](cfg.Auth.TokenSecret, cfg.Auth.TokenExpiration))
	ctx = xcontext.WithSnowFlake(ctx, node)
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}

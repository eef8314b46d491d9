package main

import (
	"context"
	"net/http"

	"github.com/forumlab/backend/config"
	"github.com/forumlab/backend/internal/domain"
	"github.com/forumlab/backend/internal/repository"
	"github.com/forumlab/backend/migration"
	"github.com/forumlab/backend/pkg/logger"
	"github.com/forumlab/backend/pkg/router"
	"github.com/forumlab/backend/pkg/storage"
	"github.com/forumlab/backend/pkg/ws"
	"github.com/forumlab/backend/pkg/xcontext"
	"github.com/forumlab/backend/pkg/xredis"

	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	userRepo           repository.UserRepository
	profileRepo        repository.ProfileRepository
	communityRepo      repository.CommunityRepository
	postRepo           repository.PostRepository
	commentRepo        repository.CommentRepository
	chatRoomRepo       repository.ChatRoomRepository
	chatMessageRepo    repository.ChatMessageRepository
	chatReadStatusRepo repository.ChatReadStatusRepository
	followRepo         repository.FollowRepository
	bookmarkRepo       repository.BookmarkRepository
	notificationRepo   repository.NotificationRepository
	reportRepo         repository.ReportRepository

	authDomain         domain.AuthDomain
	userDomain         domain.UserDomain
	communityDomain    domain.CommunityDomain
	postDomain         domain.PostDomain
	commentDomain      domain.CommentDomain
	chatDomain         domain.ChatDomain
	followDomain       domain.FollowDomain
	bookmarkDomain     domain.BookmarkDomain
	notificationDomain domain.NotificationDomain
	reportDomain       domain.ReportDomain
	searchDomain       domain.SearchDomain

	hub         *ws.Hub
	storage     storage.Storage
	redisClient xredis.Client

	router *router.Router
	db     *gorm.DB
	logger logger.Logger

	configs *config.Configs

	server *http.Server
}

func (s *srv) loadConfig(ct *cli.Context) {
	cfg, err := config.Load(ct.String("config"))
	if err != nil {
		panic(err)
	}

	s.configs = &cfg
}

func (s *srv) loadLogger() {
	s.logger = logger.NewZapLogger(s.configs.LogLevel, s.configs.LogPath)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	ctx := xcontext.WithDB(context.Background(), s.db)
	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadStorage() {
	if s.configs.Storage.Endpoint == "" {
		s.storage = storage.NewMockStorage()
		return
	}

	s.storage = storage.NewS3Storage(s.configs.Storage)
}

func (s *srv) loadRedis() {
	client, err := xredis.NewClient(context.Background(), s.configs.Redis.Addr)
	if err != nil {
		// Presence tracking falls back to the database flag.
		s.logger.Warnf("Cannot connect to redis: %v", err)
		return
	}

	s.redisClient = client
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.profileRepo = repository.NewProfileRepository()
	s.communityRepo = repository.NewCommunityRepository()
	s.postRepo = repository.NewPostRepository()
	s.commentRepo = repository.NewCommentRepository()
	s.chatRoomRepo = repository.NewChatRoomRepository()
	s.chatMessageRepo = repository.NewChatMessageRepository()
	s.chatReadStatusRepo = repository.NewChatReadStatusRepository()
	s.followRepo = repository.NewFollowRepository()
	s.bookmarkRepo = repository.NewBookmarkRepository()
	s.notificationRepo = repository.NewNotificationRepository()
	s.reportRepo = repository.NewReportRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo, s.profileRepo, s.redisClient)
	s.userDomain = domain.NewUserDomain(
		s.userRepo, s.profileRepo, s.postRepo, s.followRepo, s.bookmarkRepo,
		s.communityRepo, s.chatReadStatusRepo, s.notificationRepo, s.storage)
	s.communityDomain = domain.NewCommunityDomain(
		s.communityRepo, s.userRepo, s.profileRepo, s.redisClient)
	s.postDomain = domain.NewPostDomain(
		s.postRepo, s.commentRepo, s.bookmarkRepo, s.communityRepo,
		s.userRepo, s.profileRepo, s.notificationRepo)
	s.commentDomain = domain.NewCommentDomain(
		s.commentRepo, s.postRepo, s.userRepo, s.profileRepo, s.notificationRepo)
	s.chatDomain = domain.NewChatDomain(
		s.chatRoomRepo, s.chatMessageRepo, s.chatReadStatusRepo,
		s.userRepo, s.profileRepo, s.hub)
	s.followDomain = domain.NewFollowDomain(
		s.followRepo, s.userRepo, s.profileRepo, s.notificationRepo)
	s.bookmarkDomain = domain.NewBookmarkDomain(
		s.bookmarkRepo, s.postRepo, s.userRepo, s.profileRepo)
	s.notificationDomain = domain.NewNotificationDomain(
		s.notificationRepo, s.userRepo, s.profileRepo)
	s.reportDomain = domain.NewReportDomain(
		s.reportRepo, s.postRepo, s.commentRepo, s.userRepo, s.communityRepo)
	s.searchDomain = domain.NewSearchDomain(
		s.postRepo, s.communityRepo, s.userRepo, s.profileRepo)
}

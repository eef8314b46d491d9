package main

import (
	"log"
	"net/http"

	"github.com/forumlab/backend/internal/common"
	"github.com/forumlab/backend/internal/middleware"
	"github.com/forumlab/backend/pkg/prometheus"
	"github.com/forumlab/backend/pkg/router"
	"github.com/forumlab/backend/pkg/ws"

	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(ct *cli.Context) error {
	server.loadConfig(ct)
	server.loadLogger()
	server.loadDatabase()
	server.loadStorage()
	server.loadRedis()
	server.loadHub()
	server.loadRepos()
	server.loadDomains()
	server.loadRouter()

	c := cors.New(cors.Options{
		AllowedOrigins:   s.configs.ApiServer.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:         s.configs.ApiServer.Address(),
		Handler:      c.Handler(s.router.Handler()),
		ReadTimeout:  s.configs.ApiServer.RequestTimeout,
		WriteTimeout: s.configs.ApiServer.RequestTimeout,
	}

	log.Printf("Starting server on %s\n", s.configs.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}
	log.Printf("server stop")
	return nil
}

func (s *srv) loadHub() {
	s.hub = ws.NewHub()
	s.hub.OnDrop = func(topicName, clientID string) {
		common.PromCounters[common.ChatBroadcastDropTotal].
			WithLabelValues("slow_subscriber").Inc()
	}
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.Before(middleware.WithStartTime())
	s.router.Before(middleware.NewAuthVerifier())
	s.router.Before(middleware.NewRateLimiter(
		s.configs.ApiServer.RateLimit.PerMinute, s.configs.ApiServer.RateLimit.Burst))
	s.router.AddCloser(middleware.Logger())

	// Public API.
	{
		router.POST(s.router, "/api/auth/signup", s.authDomain.Signup)
		router.POST(s.router, "/api/auth/login", s.authDomain.Login)

		router.GET(s.router, "/api/posts", s.postDomain.GetList)
		router.GET(s.router, "/api/posts/top-this-week", s.postDomain.GetTopThisWeek)
		router.GET(s.router, "/api/posts/:id", s.postDomain.Get)
		router.GET(s.router, "/api/comments", s.commentDomain.GetList)

		router.GET(s.router, "/api/communities", s.communityDomain.GetList)
		router.GET(s.router, "/api/communities/:id", s.communityDomain.Get)
		router.GET(s.router, "/api/communities/:id/members", s.communityDomain.GetMembers)
		router.GET(s.router, "/api/communities/:id/online-members", s.communityDomain.GetOnlineMembers)
		router.GET(s.router, "/api/communities/:id/new-members", s.communityDomain.GetNewMembers)

		router.GET(s.router, "/api/profiles/:username", s.userDomain.GetProfile)
		router.GET(s.router, "/api/profiles/:username/communities", s.userDomain.GetProfileCommunities)
		router.GET(s.router, "/api/profiles/:username/posts", s.userDomain.GetProfilePosts)
		router.GET(s.router, "/api/profiles/:username/followers", s.followDomain.GetFollowers)
		router.GET(s.router, "/api/profiles/:username/followings", s.followDomain.GetFollowings)

		router.GET(s.router, "/api/search", s.searchDomain.Search)
	}

	// These following APIs need authentication.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate())
	{
		router.POST(authRouter, "/api/auth/logout", s.authDomain.Logout)
		router.GET(authRouter, "/api/auth/me", s.authDomain.GetMe)

		router.PUT(authRouter, "/api/profiles/me", s.userDomain.UpdateProfile)
		router.POST(authRouter, "/api/profiles/me/avatar", s.userDomain.UploadAvatar)
		router.DELETE(authRouter, "/api/users/:id", s.userDomain.DeleteUser)

		router.POST(authRouter, "/api/posts", s.postDomain.Create)
		router.GET(authRouter, "/api/posts/recent-from-my-communities", s.postDomain.GetMyCommunityPosts)
		router.PUT(authRouter, "/api/posts/:id", s.postDomain.Update)
		router.DELETE(authRouter, "/api/posts/:id", s.postDomain.Delete)
		router.POST(authRouter, "/api/posts/:id/like", s.postDomain.Like)
		router.POST(authRouter, "/api/posts/:id/dislike", s.postDomain.Dislike)

		router.POST(authRouter, "/api/comments", s.commentDomain.Create)
		router.POST(authRouter, "/api/comments/:id/like", s.commentDomain.Like)
		router.POST(authRouter, "/api/comments/:id/dislike", s.commentDomain.Dislike)
		router.DELETE(authRouter, "/api/comments/:id", s.commentDomain.Delete)

		router.POST(authRouter, "/api/communities", s.communityDomain.Create)
		router.POST(authRouter, "/api/communities/:id/join", s.communityDomain.Join)
		router.POST(authRouter, "/api/communities/:id/leave", s.communityDomain.Leave)

		router.POST(authRouter, "/api/follows/:user_id", s.followDomain.Toggle)
		router.POST(authRouter, "/api/bookmarks/:post_id", s.bookmarkDomain.Toggle)
		router.GET(authRouter, "/api/bookmarks/:post_id", s.bookmarkDomain.GetStatus)
		router.GET(authRouter, "/api/bookmarks", s.bookmarkDomain.GetList)

		router.GET(authRouter, "/api/chat/room", s.chatDomain.GetOrCreateRoom)
		router.POST(authRouter, "/api/chat/rooms", s.chatDomain.GetOrCreateRoom)
		router.GET(authRouter, "/api/chat/rooms", s.chatDomain.GetMyRooms)
		router.GET(authRouter, "/api/chat/rooms/:room_id/messages", s.chatDomain.GetMessages)
		router.POST(authRouter, "/api/chat/rooms/:room_id/messages", s.chatDomain.Send)
		router.POST(authRouter, "/api/chat/rooms/:room_id/read", s.chatDomain.MarkRead)
		router.GET(authRouter, "/api/chat/rooms/:room_id/unread-count", s.chatDomain.GetUnreadCount)

		router.GET(authRouter, "/api/notifications", s.notificationDomain.GetList)
		router.GET(authRouter, "/api/notifications/unread-count", s.notificationDomain.GetUnreadCount)
		router.POST(authRouter, "/api/notifications/read-all", s.notificationDomain.MarkAllRead)
		router.POST(authRouter, "/api/notifications/:id/read", s.notificationDomain.MarkRead)

		router.POST(authRouter, "/api/reports", s.reportDomain.Create)
		router.GET(authRouter, "/api/reports", s.reportDomain.GetList)
		router.POST(authRouter, "/api/reports/:id/resolve", s.reportDomain.Resolve)

		router.Websocket(authRouter, "/ws/chat", s.chatDomain.ServeChatClient)
	}

	s.router.Handle("/metrics", prometheus.NewHandler())
}

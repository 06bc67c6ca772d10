package server

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/torcriss/CocoReddit-sub000/internal/middleware"
	"github.com/torcriss/CocoReddit-sub000/pkg/storage"

	commentHttp "github.com/torcriss/CocoReddit-sub000/internal/modules/comment/delivery/http"
	commentRepo "github.com/torcriss/CocoReddit-sub000/internal/modules/comment/repository"
	commentService "github.com/torcriss/CocoReddit-sub000/internal/modules/comment/service"

	notifHttp "github.com/torcriss/CocoReddit-sub000/internal/modules/notification/delivery/http"
	notifRepo "github.com/torcriss/CocoReddit-sub000/internal/modules/notification/repository"
	notifService "github.com/torcriss/CocoReddit-sub000/internal/modules/notification/service"

	postHttp "github.com/torcriss/CocoReddit-sub000/internal/modules/post/delivery/http"
	postRepo "github.com/torcriss/CocoReddit-sub000/internal/modules/post/repository"
	postService "github.com/torcriss/CocoReddit-sub000/internal/modules/post/service"

	savedHttp "github.com/torcriss/CocoReddit-sub000/internal/modules/saved/delivery/http"
	savedRepo "github.com/torcriss/CocoReddit-sub000/internal/modules/saved/repository"
	savedService "github.com/torcriss/CocoReddit-sub000/internal/modules/saved/service"

	searchHttp "github.com/torcriss/CocoReddit-sub000/internal/modules/search/delivery/http"
	searchService "github.com/torcriss/CocoReddit-sub000/internal/modules/search/service"

	subredditHttp "github.com/torcriss/CocoReddit-sub000/internal/modules/subreddit/delivery/http"
	subredditRepo "github.com/torcriss/CocoReddit-sub000/internal/modules/subreddit/repository"
	subredditService "github.com/torcriss/CocoReddit-sub000/internal/modules/subreddit/service"

	uploadHttp "github.com/torcriss/CocoReddit-sub000/internal/modules/upload/delivery/http"

	voteHttp "github.com/torcriss/CocoReddit-sub000/internal/modules/vote/delivery/http"
	voteRepo "github.com/torcriss/CocoReddit-sub000/internal/modules/vote/repository"
	voteService "github.com/torcriss/CocoReddit-sub000/internal/modules/vote/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client) *Server {
	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	meiliHost := os.Getenv("MEILISEARCH_HOST")
	if meiliHost == "" {
		meiliHost = "http://localhost:7700"
	}
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(os.Getenv("MEILI_MASTER_KEY")))
	searchSvc := searchService.NewMeiliSearchService(meiliClient)
	searchHandler := searchHttp.NewSearchHandler(searchSvc)

	notificationRepository := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notificationRepository, redisClient)
	notificationHandler := notifHttp.NewNotificationHandler(notificationSvc, redisClient)

	subredditRepository := subredditRepo.NewSubredditRepository(db)
	subredditSvc := subredditService.NewSubredditService(subredditRepository)
	subredditHandler := subredditHttp.NewSubredditHandler(subredditSvc)

	postRepository := postRepo.NewPostRepository(db)
	postSvc := postService.NewPostService(postRepository, subredditRepository, searchSvc, imageStorage, redisClient)
	postHandler := postHttp.NewPostHandler(postSvc)

	commentRepository := commentRepo.NewCommentRepository(db)
	commentSvc := commentService.NewCommentService(commentRepository, postRepository, notificationSvc, redisClient)
	commentHandler := commentHttp.NewCommentHandler(commentSvc)

	voteRepository := voteRepo.NewVoteRepository(db)
	voteSvc := voteService.NewVoteService(voteRepository, postRepository, commentRepository, notificationSvc)
	voteHandler := voteHttp.NewVoteHandler(voteSvc)

	savedRepository := savedRepo.NewSavedPostRepository(db)
	savedSvc := savedService.NewSavedPostService(savedRepository, postRepository)
	savedHandler := savedHttp.NewSavedPostHandler(savedSvc)

	uploadHandler := uploadHttp.NewUploadHandler(imageStorage)

	router := gin.New()

	setupCORS(router)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware()

	api := router.Group("/api")

	// Read routes: anonymous viewers pass through with no identity attached.
	public := api.Group("")
	public.Use(authMiddleware.OptionalAuth())
	{
		public.GET("/subreddits", subredditHandler.GetAllSubreddits)
		public.GET("/subreddits/:name", subredditHandler.GetSubredditByName)
		public.GET("/posts", postHandler.GetPosts)
		public.GET("/posts/:post_id", postHandler.GetPostByID)
		public.GET("/posts/:post_id/comments", commentHandler.GetCommentsForPost)
		public.GET("/saved/:post_id", savedHandler.SavedStatus)
		public.GET("/search/posts", searchHandler.SearchPosts)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/subreddits", subredditHandler.CreateSubreddit)
		protected.POST("/subreddits/:name/join", subredditHandler.ToggleMembership)

		protected.POST("/posts", postHandler.CreatePost)
		protected.DELETE("/posts/:post_id", postHandler.DeletePost)

		protected.POST("/comments", commentHandler.CreateComment)
		protected.PUT("/comments/:comment_id", commentHandler.EditComment)
		protected.DELETE("/comments/:comment_id", commentHandler.DeleteComment)

		protected.POST("/votes", voteHandler.CastVote)

		protected.POST("/saved/:post_id/toggle", savedHandler.ToggleSave)
		protected.GET("/saved", savedHandler.ListSaved)

		protected.GET("/profile/posts", postHandler.GetMyPosts)
		protected.GET("/profile/comments", commentHandler.GetMyComments)

		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)

		protected.POST("/upload", uploadHandler.UploadImage)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine) {
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

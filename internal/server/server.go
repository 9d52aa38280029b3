// Package server contains the HTTP handlers and route setup for the Lumen API.
package server

import (
	"context"
	"fmt"
	"time"

	"lumen/internal/bootstrap"
	"lumen/internal/config"
	"lumen/internal/featureflags"
	"lumen/internal/middleware"
	"lumen/internal/models"
	"lumen/internal/repository"
	"lumen/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config *config.Config
	db     *gorm.DB
	redis  *redis.Client
	app    *fiber.App
	flags  *featureflags.Manager

	postService     *service.PostService
	bookmarkService *service.BookmarkService
	followerService *service.FollowerService
	userService     *service.UserService
	adminService    *service.AdminService
	commentService  *service.CommentService
	reactionService *service.ReactionService
}

// NewServer creates a server instance, establishing the database and Redis
// connections itself.
func NewServer(cfg *config.Config) (*Server, error) {
	db, rdb, err := bootstrap.InitRuntime(cfg)
	if err != nil {
		return nil, fmt.Errorf("runtime initialization failed: %w", err)
	}
	return NewServerWithDeps(cfg, db, rdb)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	tagRepo := repository.NewTagRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	followerRepo := repository.NewFollowerRepository(db)

	server := &Server{
		config: cfg,
		db:     db,
		redis:  redisClient,
		flags:  featureflags.NewManager(cfg.FeatureFlags),
	}
	server.postService = service.NewPostService(postRepo, userRepo, tagRepo, categoryRepo)
	server.bookmarkService = service.NewBookmarkService(bookmarkRepo, postRepo, userRepo)
	server.followerService = service.NewFollowerService(followerRepo, userRepo)
	server.userService = service.NewUserService(userRepo, reactionRepo)
	server.adminService = service.NewAdminService(userRepo, tagRepo, categoryRepo, reactionRepo, roleRepo)
	server.commentService = service.NewCommentService(commentRepo, postRepo, server.adminService.IsAdmin)
	server.reactionService = service.NewReactionService(reactionRepo, postRepo, userRepo)
	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())
	app.Use(middleware.TracingMiddleware())

	// CORS runs before middlewares that can short-circuit (e.g. limiter), so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting per IP.
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

	middleware.SetupPrometheus(app, "lumen-api")
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Auth
	auth := api.Group("/auth")
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Public post routes
	publicPosts := api.Group("/posts")
	publicPosts.Get("/", s.GetPosts)
	// Specific /:id/:resource routes BEFORE the generic /:id route
	publicPosts.Get("/:id/media", s.GetPostMedia)
	publicPosts.Get("/:id/comments", s.GetComments)
	publicPosts.Post("/:id/views", s.IncrementPostViews)
	publicPosts.Get("/:id", s.GetPost)

	// Public user routes. GetUserProfile falls through on the literal
	// "me" segment so the protected /users/me routes below can match.
	publicUsers := api.Group("/users")
	publicUsers.Get("/search", s.SearchUsers)
	publicUsers.Get("/:id/avatar", s.GetUserAvatar)
	publicUsers.Get("/:id/cover", s.GetUserCoverImage)
	publicUsers.Get("/:id/posts", s.GetUserPosts)
	publicUsers.Get("/:id/followers", s.GetFollowers)
	publicUsers.Get("/:id/followers/count", s.GetFollowerCount)
	publicUsers.Get("/:id/following", s.GetFollowing)
	publicUsers.Get("/:id", s.GetUserProfile)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	posts := protected.Group("/posts")
	posts.Post("/", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_post"), s.CreatePost)
	posts.Post("/:id/comments", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	posts.Post("/:id/reactions", s.ReactToPost)
	posts.Delete("/:id/reactions", s.UnreactToPost)
	posts.Delete("/:id", s.DeletePost)

	protected.Delete("/comments/:id", s.DeleteComment)

	bookmarks := protected.Group("/bookmarks")
	bookmarks.Post("/", s.AddBookmark)
	bookmarks.Get("/", s.GetBookmarkedPosts)
	bookmarks.Delete("/:id", s.DeleteBookmark)

	me := protected.Group("/users/me")
	me.Get("/", s.GetMyProfile)
	me.Get("/reactions", s.GetMyReactedPosts)
	me.Get("/features", s.GetMyFeatureFlags)
	me.Patch("/text", s.UpdateMyTextField)
	me.Patch("/numeric", s.UpdateMyNumericField)
	me.Put("/password", s.UpdateMyPassword)
	me.Put("/avatar", s.UpdateMyAvatar)
	me.Put("/cover", s.UpdateMyCoverImage)

	users := protected.Group("/users")
	users.Post("/:id/follow", s.FollowUser)
	users.Delete("/:id/follow", s.UnfollowUser)

	// Admin routes. Role checks happen inside the admin service so that a
	// missing actor reports NotFound before Forbidden.
	admin := protected.Group("/admin")
	admin.Get("/users", s.AdminListUsers)
	admin.Post("/users", s.AdminCreateUser)
	admin.Delete("/users/:id", s.AdminDeleteUser)
	admin.Get("/tags", s.AdminListTags)
	admin.Post("/tags", s.AdminCreateTag)
	admin.Delete("/tags/:id", s.AdminDeleteTag)
	admin.Get("/categories", s.AdminListCategories)
	admin.Delete("/categories/:id", s.AdminDeleteCategory)
	admin.Get("/reactions", s.AdminListReactions)
	admin.Get("/roles", s.AdminListRoles)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports database and Redis health.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	bodyLimit := s.config.MediaMaxUploadSizeMB
	if bodyLimit <= 0 {
		bodyLimit = 25
	}

	app := fiber.New(fiber.Config{
		AppName:   "Lumen API",
		BodyLimit: bodyLimit * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
			return models.RespondWithError(c, models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	middleware.Logger.Info("server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr)
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}

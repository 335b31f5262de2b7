package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"yatube-backend/config"
	"yatube-backend/internal/api/admin"
	"yatube-backend/internal/api/posts"
	"yatube-backend/internal/api/user"
	"yatube-backend/internal/cache"
	"yatube-backend/internal/common"
	"yatube-backend/internal/middleware"
	"yatube-backend/internal/repository/mysql"
	"yatube-backend/internal/service"
	"yatube-backend/internal/storage"
	"yatube-backend/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			util.Logger.Error("程序发生严重错误", zap.Any("error", r))
		}
	}()

	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	db := openDatabase()
	defer db.Close()

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		util.RegisterValidators(v)
	}

	images := newImageStorage()
	pageCache := newPageCache()

	// 初始化存储库、服务和处理器
	userRepo := mysql.NewUserRepository(db)
	groupRepo := mysql.NewGroupRepository(db)
	postRepo := mysql.NewPostRepository(db)
	commentRepo := mysql.NewCommentRepository(db)
	followRepo := mysql.NewFollowRepository(db)

	userService := service.NewUserService(userRepo)
	groupService := service.NewGroupService(groupRepo)
	postService := service.NewPostService(postRepo, groupRepo, userRepo)
	feedService := service.NewFeedService(postRepo, groupRepo, userRepo, followRepo, commentRepo)
	commentService := service.NewCommentService(commentRepo, postRepo)
	followService := service.NewFollowService(followRepo, userRepo)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor(prometheus.DefaultRegisterer)

	authHandler := user.NewAuthHandler(userService)
	profileHandler := user.NewProfileHandler(userService)
	postHandler := posts.NewPostHandler(postService, feedService, commentService, followService, images)
	adminHandler := admin.NewAdminHandler(groupService, userService, followService, pageCache, errorMonitor)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length",
		"Content-Type",
		"X-Cache",
	}
	r.Use(cors.New(corsConfig))

	if config.AppConfig.StorageBackend == "local" {
		r.Static("/media", config.AppConfig.LocalStoragePath)
	}
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireLogin := middleware.AuthMiddleware(userService, config.AppConfig.LoginURL)
	optionalLogin := middleware.OptionalAuth(userService)
	cachePage := middleware.CachePage(pageCache)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", requireLogin, authHandler.Logout)
			auth.GET("/me", requireLogin, profileHandler.GetProfile)
			auth.DELETE("/me", requireLogin, profileHandler.DeleteAccount)
		}

		// 读页面
		api.GET("/posts", optionalLogin, cachePage, postHandler.Index)
		api.GET("/group/:slug", postHandler.GroupPosts)
		api.GET("/profile/:username", optionalLogin, postHandler.Profile)
		api.GET("/posts/:id", postHandler.PostDetail)
		api.GET("/follow", requireLogin, cachePage, postHandler.FollowIndex)

		// 写操作
		api.POST("/create", requireLogin, postHandler.CreatePost)
		api.POST("/posts/:id/edit", requireLogin, postHandler.EditPost)
		api.DELETE("/posts/:id", requireLogin, postHandler.DeletePost)
		api.POST("/posts/:id/comment", requireLogin, postHandler.AddComment)
		api.POST("/profile/:username/follow", requireLogin, postHandler.ProfileFollow)
		api.POST("/profile/:username/unfollow", requireLogin, postHandler.ProfileUnfollow)

		// 管理员路由组
		adminRoutes := api.Group("/admin")
		adminRoutes.Use(requireLogin, middleware.AdminMiddleware(userService))
		{
			groupAdmin := adminRoutes.Group("/groups")
			{
				groupAdmin.GET("", adminHandler.GetGroups)
				groupAdmin.POST("", adminHandler.CreateGroup)
				groupAdmin.DELETE("/:slug", adminHandler.DeleteGroup)
			}

			userAdmin := adminRoutes.Group("/users")
			{
				userAdmin.DELETE("/:username", adminHandler.DeleteUser)
				userAdmin.GET("/:username/followers", adminHandler.GetFollowers)
				userAdmin.GET("/:username/following", adminHandler.GetFollowing)
			}

			adminRoutes.POST("/cache/clear", adminHandler.ClearPageCache)
			adminRoutes.GET("/errors", adminHandler.GetErrorStats)
		}
	}

	if config.AppConfig.Debug {
		for _, route := range r.Routes() {
			util.Logger.Debug("路由",
				zap.String("method", route.Method),
				zap.String("path", route.Path),
				zap.String("handler", route.Handler))
		}
	}

	srv := &http.Server{
		Addr:              config.AppConfig.ServerAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}

// openDatabase 连接 MySQL 并创建表
func openDatabase() *sql.DB {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		config.AppConfig.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := common.WithRetry(ctx, func() error { return db.PingContext(ctx) }, 5, time.Second); err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	if err := mysql.Migrate(ctx, db); err != nil {
		util.Logger.Fatal("创建数据表失败", zap.Error(err))
	}
	return db
}

func newImageStorage() storage.ImageStorage {
	cfg := config.AppConfig
	switch cfg.StorageBackend {
	case "s3":
		client, err := storage.NewS3Client(cfg.S3Region, cfg.S3Bucket)
		if err != nil {
			util.Logger.Fatal("初始化 S3 存储失败", zap.Error(err))
		}
		return client
	case "gcs":
		client, err := storage.NewGCSClient(context.Background(), cfg.GCSBucketName, cfg.GCSCredentialsFile)
		if err != nil {
			util.Logger.Fatal("初始化 GCS 存储失败", zap.Error(err))
		}
		return client
	default:
		local, err := storage.NewLocalStorage(cfg.LocalStoragePath)
		if err != nil {
			util.Logger.Fatal("初始化本地存储失败", zap.Error(err))
		}
		util.Logger.Info("使用本地存储", zap.String("path", cfg.LocalStoragePath))
		return local
	}
}

func newPageCache() cache.Store {
	cfg := config.AppConfig
	if cfg.CacheBackend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			util.Logger.Fatal("连接 Redis 失败", zap.Error(err))
		}
		util.Logger.Info("页面缓存使用 Redis", zap.String("addr", cfg.RedisAddr))
		return cache.NewRedisStore(client, cfg.PageCacheTTL)
	}
	return cache.NewMemoryStore(cfg.CacheSize, cfg.PageCacheTTL)
}

package main

import (
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/podhost/podhost-backend/config"
	"github.com/podhost/podhost-backend/routes"
	"github.com/podhost/podhost-backend/services"
	"github.com/podhost/podhost-backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	utils.InitLogger(cfg.LogLevel)

	db, err := config.InitDB(cfg)
	if err != nil {
		slog.Error("init database", "error", err)
		os.Exit(1)
	}

	rdb, err := config.InitRedis(cfg)
	if err != nil {
		slog.Error("init redis", "error", err)
		os.Exit(1)
	}

	sessions := services.NewSessionStore(rdb, services.SessionTTL)
	comments := services.NewCommentStore(rdb)

	uploader, err := services.NewMinioUploader(
		cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey,
		cfg.MediaBucket, cfg.MediaBaseURL, cfg.MinioUseSSL,
	)
	if err != nil {
		slog.Error("init media uploader", "error", err)
		os.Exit(1)
	}

	r := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r = routes.SetupRouter(r, db, rdb, sessions, comments, uploader)

	r.GET("/", func(c *gin.Context) {
		c.String(200, "Podcast hosting server is running")
	})

	slog.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

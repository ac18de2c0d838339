package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/podhost/podhost-backend/controllers"
	"github.com/podhost/podhost-backend/middleware"
	"github.com/podhost/podhost-backend/models"
	"github.com/podhost/podhost-backend/services"
	"github.com/podhost/podhost-backend/ws"
)

// SetupRouter registers the full HTTP surface. The path scheme mirrors the
// classic MVC layout ({Controller}/{Action}/{id}); GET variants of the
// form/confirm pages return the data those pages were built from.
func SetupRouter(r *gin.Engine, db *gorm.DB, rdb *redis.Client, sessions *services.SessionStore, comments *services.CommentStore, uploader services.MediaUploader) *gin.Engine {
	r.Use(middleware.Inject(db, rdb, sessions, comments, uploader))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	podcaster := middleware.RequireRoles(string(models.RolePodcaster), string(models.RoleAdmin))

	users := r.Group("/Users")
	{
		users.GET("/Register", controllers.RegisterForm)
		users.POST("/Register", controllers.Register)
		users.GET("/Login", middleware.OptionalSession(), controllers.LoginForm)
		users.POST("/Login", controllers.Login)
		users.GET("/Logout", middleware.RequireLogin(), controllers.Logout)
		users.GET("/Me", middleware.RequireLogin(), controllers.Me)
	}

	podcasts := r.Group("/Podcasts")
	{
		podcasts.GET("", controllers.ListPodcasts)
		podcasts.GET("/Create", middleware.RequireLogin(), podcaster, controllers.NewPodcastForm)
		podcasts.POST("/Create", middleware.RequireLogin(), podcaster, controllers.CreatePodcast)
		// Edit/Delete additionally require creator-or-admin ownership,
		// enforced in the handlers once the row is loaded.
		podcasts.GET("/Edit/:id", middleware.RequireLogin(), controllers.EditPodcastForm)
		podcasts.POST("/Edit/:id", middleware.RequireLogin(), controllers.EditPodcast)
		podcasts.GET("/Delete/:id", middleware.RequireLogin(), controllers.DeletePodcastForm)
		podcasts.POST("/Delete/:id", middleware.RequireLogin(), controllers.DeletePodcast)
	}

	episodes := r.Group("/Episodes")
	{
		episodes.GET("", controllers.ListEpisodes)
		episodes.GET("/Details/:id", controllers.EpisodeDetails)
		episodes.GET("/Create", middleware.RequireLogin(), podcaster, controllers.NewEpisodeForm)
		episodes.POST("/Create", middleware.RequireLogin(), podcaster, controllers.CreateEpisode)
		episodes.GET("/Edit/:id", middleware.RequireLogin(), podcaster, controllers.EditEpisodeForm)
		episodes.POST("/Edit/:id", middleware.RequireLogin(), podcaster, controllers.EditEpisode)
		episodes.GET("/Delete/:id", middleware.RequireLogin(), podcaster, controllers.DeleteEpisodeForm)
		episodes.POST("/Delete/:id", middleware.RequireLogin(), podcaster, controllers.DeleteEpisode)
	}

	commentRoutes := r.Group("/Comments")
	{
		commentRoutes.POST("/Add", middleware.RequireLogin(), controllers.AddComment)
		commentRoutes.POST("/Edit", middleware.RequireLogin(), controllers.EditComment)
		commentRoutes.GET("/List", controllers.ListComments)
	}

	subscriptions := r.Group("/Subscriptions")
	{
		subscriptions.Use(middleware.RequireLogin())
		subscriptions.GET("", controllers.ListSubscriptions)
		subscriptions.POST("/Add", controllers.Subscribe)
		subscriptions.POST("/Remove", controllers.Unsubscribe)
	}

	r.GET("/ws/episode/:id", ws.HandleEpisodeWebSocket)

	return r
}

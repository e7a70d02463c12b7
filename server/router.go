package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"meetfood/infrastructure/configuration"
	httpHandler "meetfood/interfaces/http"
	"meetfood/interfaces/middleware"
)

func InitiateRouter(
	userHandler httpHandler.IUserHandler,
	videoHandler httpHandler.IVideoHandler,
	authMiddleware gin.HandlerFunc,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RateLimit(configuration.C.RateLimit.MaxRequests, time.Duration(configuration.C.RateLimit.WindowSeconds)*time.Second))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:4200"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.TokenHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "Successfully access MeetFood API.")
	})

	user := router.Group("/api/v1/user")
	user.Use(authMiddleware)
	{
		user.POST("/new", userHandler.Create)
		user.GET("/profile/me", userHandler.GetProfile)
		user.POST("/profile/me", userHandler.UpdateProfile)
		user.POST("/profile/photo", userHandler.UpdateProfilePhoto)
		user.POST("/videos/videoCollection/:videoPostId", userHandler.AddToCollection)
		user.DELETE("/videos/videoCollection/:videoPostId", userHandler.RemoveFromCollection)
		user.DELETE("/delete", userHandler.DeleteAccount)
	}

	video := router.Group("/api/v1/video")
	{
		// The feed is public; everything else requires a verified token.
		video.GET("/videos", videoHandler.Feed)

		guarded := video.Group("")
		guarded.Use(authMiddleware)
		{
			guarded.GET("/:videoPostId", videoHandler.GetPost)
			guarded.POST("/new", videoHandler.CreatePost)
			guarded.DELETE("/customer/:videoPostId", videoHandler.DeletePost)
			guarded.POST("/comment/:videoPostId", videoHandler.PostComment)
			guarded.DELETE("/comment/:videoPostId/:commentId", videoHandler.DeleteComment)
			guarded.PUT("/like/:videoPostId", videoHandler.Like)
			guarded.PUT("/unlike/:videoPostId", videoHandler.Unlike)
			guarded.POST("/coverImage", videoHandler.UploadCoverImage)
			guarded.POST("/upload", videoHandler.UploadVideo)
		}
	}

	return router
}

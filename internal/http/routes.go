package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires every route. rl guards the like toggle only: the status
// endpoint is read-only and stays unthrottled.
func NewRouter(h *Handler, rl RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Metrics())

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/google", h.GoogleSignIn)
		auth.GET("/google/url", h.GoogleAuthURL)
		auth.GET("/google/callback", h.GoogleCallback)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.GET("/verify-reset-token/:token", h.VerifyResetToken)
		auth.POST("/reset-password/:token", h.ResetPassword)
		auth.GET("/profile", AuthJWT(h.JWTSecret), h.Profile)
		auth.PUT("/profile", AuthJWT(h.JWTSecret), h.UpdateProfile)
	}

	comments := r.Group("/comments")
	{
		comments.GET("/:articleId", h.ListComments)
		comments.POST("", h.CreateComment)
		comments.DELETE("/:id", h.DeleteComment)
	}

	likes := r.Group("/likes")
	{
		likes.POST("/:articleId", RateLimit(rl), h.ToggleLike)
		likes.GET("/:articleId/status", h.LikeStatus)
	}

	fuel := r.Group("/fuel")
	{
		fuel.GET("/tamilnadu", h.FuelTamilNadu)
		fuel.GET("/stored", h.FuelStored)
		fuel.GET("/city/:cityName", h.FuelCity)
		fuel.GET("/cities", h.FuelCities)
		fuel.POST("/trigger-update", h.FuelTriggerUpdate)
	}

	return r
}

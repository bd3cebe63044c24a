// Package routes defines HTTP routes for the blog service.
package routes

import (
	"github.com/GunarsK-portfolio/blog-service/docs"
	"github.com/GunarsK-portfolio/blog-service/internal/config"
	"github.com/GunarsK-portfolio/blog-service/internal/handlers"
	"github.com/GunarsK-portfolio/blog-service/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Posts   *handlers.PostHandler
	Comment *handlers.CommentHandler
	Health  *handlers.HealthHandler
}

// Setup configures all HTTP routes for the application. gatherer backs the
// /metrics endpoint.
func Setup(router *gin.Engine, h Handlers, auth middleware.Authenticator, cfg *config.Config, gatherer prometheus.Gatherer) {
	// Health check
	router.GET("/health", h.Health.Check)
	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Public account routes
	router.POST("/register/", h.Auth.Register)
	router.POST("/login/", h.Auth.Login)
	router.POST("/refresh-token/", h.Auth.Refresh)

	protected := router.Group("/", middleware.RequireAuth(auth))
	{
		protected.POST("/logout/", h.Auth.Logout)
		protected.DELETE("/account/", h.Auth.DeleteAccount)

		protected.GET("/top-five-posts/", h.Posts.TopFive)

		posts := protected.Group("/posts")
		{
			posts.GET("/", h.Posts.List)
			posts.POST("/", h.Posts.Create)
			posts.GET("/:slug/", h.Posts.Get)
			posts.PUT("/:slug/", h.Posts.Update)
			posts.DELETE("/:slug/", h.Posts.Delete)

			posts.GET("/:slug/comments/", h.Comment.List)
			posts.POST("/:slug/comments/", h.Comment.Create)
			posts.PUT("/:slug/comments/:id/", h.Comment.Update)
			posts.DELETE("/:slug/comments/:id/", h.Comment.Delete)
		}
	}

	// Swagger documentation (only if SWAGGER_HOST is configured)
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

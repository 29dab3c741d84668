package router

import (
	"github.com/kitestore-next/internal/config"
	publichandlers "github.com/kitestore-next/internal/http/handlers/public"
	"github.com/kitestore-next/internal/logger"
	"github.com/kitestore-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the storefront HTTP engine.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// Photo assets are served straight off the manager's directory tree.
	r.Static("/photos", cfg.Photos.Dir)

	apiV1 := r.Group("/api/v1")
	{
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/categories", publicHandler.GetCategories)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

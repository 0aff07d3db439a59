package main

import (
	"time"

	"codeberg.org/openshelf/server/api/rest/health"
	"codeberg.org/openshelf/server/api/rest/search"
	"codeberg.org/openshelf/server/internal/errors"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// every search pays an embedding-provider round trip, so the search routes
// are rate limited per client IP
const searchRateLimit = 60

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware())
	router.GET("/health", health.Handler)

	searchGroup := router.Group("/")
	searchGroup.Use(searchRateLimiter())
	search.RegisterRoutes(searchGroup, server.retriever)
}

func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}

// per-IP in-memory rate limiter for the search endpoints
func searchRateLimiter() gin.HandlerFunc {
	searchRate := limiter.Rate{
		Period: time.Minute,
		Limit:  searchRateLimit,
	}

	return mgin.NewMiddleware(
		limiter.New(memory.NewStore(), searchRate),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			errors.TooManyRequests(c, "search rate limit exceeded")
		}),
	)
}

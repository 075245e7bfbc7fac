// router/router.go

package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dev-mohitbeniwal/listpane/controller"
	"github.com/dev-mohitbeniwal/listpane/middleware"
)

// RateLimit configures the Redis backed rate limiter. A zero Requests disables it.
type RateLimit struct {
	Requests int
	Duration time.Duration
}

func SetupRouter(
	controllers *controller.Controllers,
	rateLimit RateLimit,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	if rateLimit.Requests > 0 {
		api.Use(middleware.RateLimiter(rateLimit.Requests, rateLimit.Duration))
	}

	controllers.Options.RegisterRoutes(api)

	return router
}

package api

import (
	"log"
	stdhttp "net/http"

	intconfig "tripapi/internal/config"
	h "tripapi/internal/http/handlers"
	"tripapi/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		trips := api.Group("/trips")
		trips.GET("/count", h.GetTripCount)
		trips.GET("/sample", h.GetSampleTrips)
		trips.GET("/pages", h.GetTripsByPage)
		trips.GET("/stream", h.GetTripsByCursor)
		trips.GET("/analytics", h.GetTripAnalytics)
		trips.GET("/analytics/report", h.GetTripAnalyticsReport)
		trips.GET("/:id", h.GetTripByID)
		trips.POST("/:id/vendor", h.UpdateTripVendor)
	}

	return r
}

package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/travel-report-go/internal/handler"
	"github.com/jengzang/travel-report-go/internal/metrics"
	"github.com/jengzang/travel-report-go/internal/middleware"
	"github.com/jengzang/travel-report-go/pkg/response"
)

// Deps holds what the router wires into routes
type Deps struct {
	JWTSecret       string
	RateLimitPerMin int
	Reports         *handler.ReportHandler
	Samples         *handler.SampleHandler
	Metrics         *metrics.Collector
}

// SetupRouter builds the gin engine
func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), cors())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Travel report API is running",
		})
	})

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found", nil)
	})

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	api := r.Group("/api/v1", middleware.Auth(deps.JWTSecret))
	{
		entities := api.Group("/entities")
		{
			entities.GET("", deps.Samples.ListEntities)
			entities.POST("/:id/samples", deps.Samples.IngestSamples)
		}

		// Report generation fans out to the geocoder, so these share a per-IP budget
		reports := api.Group("", middleware.RateLimit(deps.RateLimitPerMin, time.Minute))
		{
			reports.GET("/entities/:id/report", deps.Reports.GetEntityReport)
			reports.POST("/reports", deps.Reports.PostReport)
		}
	}

	return r
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

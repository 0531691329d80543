package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"scadaval/app"
	"scadaval/internal"
)

// Config holds API configuration
type Config struct {
	MaxUploadBytes int64
	// Sheet is read from uploaded workbooks when the request leaves it blank
	Sheet string
}

// NewRouter builds the JSON API. Routes carry the full /api/v1 prefix so the
// engine can be mounted under /api or served on its own.
func NewRouter(service *app.ComparisonService, config Config, logger *internal.Logger) *gin.Engine {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	handler := NewComparisonHandler(service, config, logger)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/compare", handler.Compare)
		v1.POST("/compare/upload", limitBody(config.MaxUploadBytes), handler.CompareUpload)
		v1.POST("/columns", limitBody(config.MaxUploadBytes), handler.Columns)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found", "code": "NOT_FOUND"})
	})

	return router
}

func requestLogger(logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("[API] %s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Microsecond))
	}
}

// limitBody caps the request body; a zero limit leaves it unbounded
func limitBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

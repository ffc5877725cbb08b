package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CacheConfig represents cache control configuration
type CacheConfig struct {
	MaxAge         int
	Private        bool
	NoCache        bool
	MustRevalidate bool
	Vary           []string
}

// DefaultCacheConfig is used for HTML pages and static assets.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		MaxAge:         300,
		MustRevalidate: true,
	}
}

// Cache adds cache control headers to GET and HEAD responses
func Cache(config CacheConfig) gin.HandlerFunc {
	directives := make([]string, 0, 4)
	if config.Private {
		directives = append(directives, "private")
	} else {
		directives = append(directives, "public")
	}
	if config.MaxAge > 0 {
		directives = append(directives, "max-age="+strconv.Itoa(config.MaxAge))
	}
	if config.NoCache {
		directives = append(directives, "no-cache")
	}
	if config.MustRevalidate {
		directives = append(directives, "must-revalidate")
	}
	cacheControl := strings.Join(directives, ", ")
	vary := strings.Join(config.Vary, ", ")

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Next()
			return
		}

		c.Header("Cache-Control", cacheControl)
		if vary != "" {
			c.Header("Vary", vary)
		}

		c.Next()
	}
}

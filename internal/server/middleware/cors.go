package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/portfolio-chat/internal/conf"
)

const (
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderAllowHeaders = "Access-Control-Allow-Headers"
)

// CORS sets the configured CORS headers on every response. Preflight requests are
// answered by the route handler, so they still pass through.
func CORS(cfg conf.CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header(HeaderAllowOrigin, cfg.AllowOrigin)
		c.Header(HeaderAllowMethods, cfg.AllowMethods)
		c.Header(HeaderAllowHeaders, cfg.AllowHeaders)
		c.Next()
	}
}

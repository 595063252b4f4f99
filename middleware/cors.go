package middleware

import (
	"strings"
	"time"

	"securecheck-api/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// The API is read-only apart from predictions, so only GET and POST are
// offered.
var (
	allowMethods  = []string{"GET", "POST", "OPTIONS"}
	allowHeaders  = []string{"Origin", "Content-Type", HeaderRequestID}
	exposeHeaders = []string{"Content-Length", "Content-Disposition", HeaderRequestID}
)

func SetupCORS(cfg config.CORSConfig) gin.HandlerFunc {
	var allowedOrigins []string
	for _, o := range strings.Split(cfg.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowedOrigins = append(allowedOrigins, o)
		}
	}

	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		return cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     allowMethods,
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		})
	}

	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     allowMethods,
		AllowHeaders:     allowHeaders,
		ExposeHeaders:    exposeHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

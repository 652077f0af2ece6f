package di

import (
	"slices"

	"github.com/gin-contrib/cors"

	"prep_tracker/internal/config"
)

// NewCORSConfig converts the configured lists into a gin-contrib/cors config.
// A "*" origin allows every origin.
func NewCORSConfig(cfg config.CORSConfig) cors.Config {
	out := cors.Config{
		AllowMethods:  cfg.Methods(),
		AllowHeaders:  cfg.Headers(),
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        cfg.MaxAge,
	}
	origins := cfg.Origins()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		out.AllowAllOrigins = true
	} else {
		out.AllowOrigins = origins
	}
	return out
}

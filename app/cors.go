package app

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// AllowedMethods is the whole method surface the API serves. CORS allows
// exactly this list; keep it in sync with what routes register.
var AllowedMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}

func useCORS(r *gin.Engine, origin string) {
	cfg := cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     AllowedMethods,
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(cfg))
}

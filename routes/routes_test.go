package routes

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset_booking/app"
)

// Every registered route method must be in the CORS allow list, otherwise
// browser clients get preflight failures on endpoints the server serves.
func Test_RegisteredMethodsAreCORSAllowed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &app.App{})

	routes := r.Routes()
	require.NotEmpty(t, routes)
	for _, ri := range routes {
		assert.Contains(t, app.AllowedMethods, ri.Method,
			"%s %s is not CORS-allowed", ri.Method, ri.Path)
	}
}

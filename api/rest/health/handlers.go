package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// returns the server health status. Liveness only: no dependencies are
// checked, so a healthy response does not imply the database or embedding
// providers are reachable.
func Handler(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Status: "healthy",
	})
}

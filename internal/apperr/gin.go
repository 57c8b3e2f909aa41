package apperr

import "github.com/gin-gonic/gin"

// Abort records err on the context for the request logger and writes the
// mapped status with an {"error": ...} body.
func Abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(Status(err), gin.H{"error": Message(err)})
}

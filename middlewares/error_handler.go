package middlewares

import (
	"errors"
	"log"
	"net/http"

	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var ve *utils.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": ve.Error(), "errors": ve.Errors})
			return
		}
		var ae *utils.AppError
		if errors.As(err, &ae) {
			c.JSON(ae.Status, gin.H{"message": ae.Message})
			return
		}
		log.Printf("%s %s [%s]: %v", c.Request.Method, c.Request.URL.Path, c.GetString(RequestIDKey), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

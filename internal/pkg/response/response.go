package response

import (
	"github.com/gin-gonic/gin"

	"github.com/Chekke24/challenger-premios-backend/internal/pkg/apperror"
)

func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"message": message,
	})
}

func Created(c *gin.Context, statusCode int, message string, id int64) {
	c.JSON(statusCode, gin.H{
		"message": message,
		"id":      id,
	})
}

// Error writes err with the status its code maps to and records it on the
// context so the error logger middleware sees it.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	body := gin.H{
		"error": err.Error(),
		"code":  apperror.CodeOf(err),
	}
	if details := apperror.DetailsOf(err); len(details) > 0 {
		body["details"] = details
	}
	c.JSON(apperror.HTTPStatus(err), body)
}

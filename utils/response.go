// utils/response.go
package utils

import "github.com/gin-gonic/gin"

// The frontend unwraps every response from a {"data": ...} envelope, so
// all success payloads go through RespondWithData.
func RespondWithData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"data": data})
}

func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// RespondWithAppError picks the status from the typed error kinds.
func RespondWithAppError(c *gin.Context, err error) {
	c.JSON(StatusForError(err), gin.H{"error": err.Error()})
}

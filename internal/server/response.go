package server

import (
	"github.com/gin-gonic/gin"
)

// Error codes shared with the CLI client.
const (
	codeInvalidRequest  = "INVALID_REQUEST"
	codeInvalidFileType = "INVALID_FILE_TYPE"
	codeMissingFile     = "MISSING_FILE"
	codeProjectNotFound = "PROJECT_NOT_FOUND"
	codeDatabaseError   = "DATABASE_ERROR"
	codeStorageError    = "STORAGE_ERROR"
)

// respondData wraps a payload in the success envelope.
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondError wraps an error in the failure envelope.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

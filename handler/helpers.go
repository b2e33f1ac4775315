package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// BulkRequest is the shared body for bulk collection actions.
type BulkRequest struct {
	Action string   `json:"action" binding:"required"`
	IDs    []string `json:"ids"`
}

// pageParam reads the page query parameter, defaulting to 1. Out-of-
// range values are left to the paginator's clamping.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}

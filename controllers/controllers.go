package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rleomotos-api/services"
	"rleomotos-api/utils"
)

// respondError maps a service error to its HTTP status; anything
// unclassified becomes a 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	status := services.StatusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "An unexpected error occurred"
	}
	utils.SendError(c, status, message)
}

// pathID parses a numeric :param, responding 400 on garbage.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

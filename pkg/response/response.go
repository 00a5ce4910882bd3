// Package response writes the board's flat JSON envelope: every body carries
// a top-level "success" flag with payload fields alongside it, and failures
// carry a single "error" message.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK sends 200 with success=true merged into the payload fields.
func OK(c *gin.Context, data gin.H) {
	c.JSON(http.StatusOK, envelope(data))
}

// Created sends 201 with success=true merged into the payload fields.
func Created(c *gin.Context, data gin.H) {
	c.JSON(http.StatusCreated, envelope(data))
}

// BadRequest sends 400 with an error message.
func BadRequest(c *gin.Context, msg string) {
	fail(c, http.StatusBadRequest, msg)
}

// Unauthorized sends 401.
func Unauthorized(c *gin.Context, msg string) {
	fail(c, http.StatusUnauthorized, msg)
}

// NotFound sends 404.
func NotFound(c *gin.Context, msg string) {
	fail(c, http.StatusNotFound, msg)
}

// Conflict sends 409.
func Conflict(c *gin.Context, msg string) {
	fail(c, http.StatusConflict, msg)
}

// RateLimited sends 429.
func RateLimited(c *gin.Context, msg string) {
	fail(c, http.StatusTooManyRequests, msg)
}

// Internal sends 500 with a generic message; detail stays server-side.
func Internal(c *gin.Context, msg string) {
	fail(c, http.StatusInternalServerError, msg)
}

func envelope(data gin.H) gin.H {
	body := gin.H{"success": true}
	for k, v := range data {
		body[k] = v
	}
	return body
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

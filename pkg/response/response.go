package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response body. Pagination fields are only set on
// listing endpoints; Token and User only on the auth endpoints.
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Token     string `json:"token,omitempty"`
	User      any    `json:"user,omitempty"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
	Count     *int   `json:"count,omitempty"`
	Total     *int   `json:"total,omitempty"`
	Page      *int   `json:"page,omitempty"`
	Pages     *int   `json:"pages,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// RequestIDKey is the Gin context key carrying the per-request id. The
// request-id middleware sets it; every envelope echoes it back.
const RequestIDKey = "request_id"

func requestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// OK writes a 200 with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID(c)})
}

// Created writes a 201 with data.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID(c)})
}

// Message writes a 200 carrying only a message (delete confirmations, health).
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: msg, RequestID: requestID(c)})
}

// List writes a 200 with data plus the collection count.
func List(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Count: &count, RequestID: requestID(c)})
}

// Paged writes a 200 with data plus full pagination metadata.
func Paged(c *gin.Context, data any, count, total, page, pages int) {
	c.JSON(http.StatusOK, Envelope{
		Success:   true,
		Data:      data,
		Count:     &count,
		Total:     &total,
		Page:      &page,
		Pages:     &pages,
		RequestID: requestID(c),
	})
}

// Auth writes an auth success carrying the token and user projection.
func Auth(c *gin.Context, status int, token string, user any) {
	c.JSON(status, Envelope{Success: true, Token: token, User: user, RequestID: requestID(c)})
}

// UserOnly writes a 200 carrying the user projection (GET /auth/me).
func UserOnly(c *gin.Context, user any) {
	c.JSON(http.StatusOK, Envelope{Success: true, User: user, RequestID: requestID(c)})
}

// Fail writes an error envelope with the given status.
func Fail(c *gin.Context, status int, message string, errs any) {
	c.JSON(status, Envelope{Success: false, Message: message, Errors: errs, RequestID: requestID(c)})
}

// AbortFail writes an error envelope and halts the middleware chain.
func AbortFail(c *gin.Context, status int, message string, errs any) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message, Errors: errs, RequestID: requestID(c)})
}

// Package response defines the JSON shapes the API writes on the wire.
package response

import (
	"github.com/labstack/echo/v4"
)

// ErrorMessage is the body of every failed request.
type ErrorMessage struct {
	Error string `json:"error"`
}

// UserInfo is the public view of an account, returned by signup, login and
// the session probe. The password digest never leaves the server.
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// AuthResult is the body of a successful signup or login.
type AuthResult struct {
	Message string   `json:"message"`
	User    UserInfo `json:"user"`
}

// Message is a bare confirmation body.
type Message struct {
	Message string `json:"message"`
}

// DeleteResult confirms a deletion and echoes the affected todo's ID.
type DeleteResult struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// Error writes the uniform error body with the given status code.
func Error(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, ErrorMessage{Error: message})
}

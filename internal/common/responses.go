package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// MessageResponse is the body of mutations that return no resource.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundMessage sends a 404 with a caller supplied message.
func SendNotFoundMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", message, nil))
}

// SendUpstreamError reports a dependency that answered with something unusable.
func SendUpstreamError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadGateway, CreateErrorResponse("UPSTREAM_ERROR", message, nil))
}

// SendUnavailableError reports a dependency that could not be reached.
func SendUnavailableError(c echo.Context, message string) error {
	return c.JSON(http.StatusServiceUnavailable, CreateErrorResponse("SERVICE_UNAVAILABLE", message, nil))
}

// SendConflictError reports a request that collides with one still in progress.
func SendConflictError(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, CreateErrorResponse("CONFLICT", message, nil))
}

package handlers

import (
	"errors"
	"log"

	"dataware/internal/common"
	"dataware/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// sendServiceError maps the services error taxonomy onto the standard response envelope.
func sendServiceError(c echo.Context, err error) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return common.SendValidationError(c, validationErr.Field, validationErr.Message)
	case errors.Is(err, services.ErrNotFound):
		return common.SendNotFoundMessage(c, err.Error())
	case errors.Is(err, services.ErrUpstream):
		return common.SendUpstreamError(c, err.Error())
	case errors.Is(err, services.ErrUnavailable):
		return common.SendUnavailableError(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		return common.SendConflictError(c, err.Error())
	default:
		log.Printf("ERROR: %s %s failed: %v", c.Request().Method, c.Path(), err)
		return common.SendServerError(c, "internal server error")
	}
}

// pathID validates the :id path parameter, writing the 400 itself when it fails.
func pathID(c echo.Context) (uuid.UUID, bool, error) {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return uuid.Nil, false, common.SendValidationError(c, "id", err.Error())
	}
	return id, true, nil
}

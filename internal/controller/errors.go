package controller

import (
	"errors"

	"github.com/benbeisheim/fablechess-backend/internal/model"
	"github.com/benbeisheim/fablechess-backend/internal/service"
	"github.com/benbeisheim/fablechess-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
)

var errInvalidBody = errors.New("invalid request body")

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrCorruptRecord):
		return fiber.StatusInternalServerError
	case errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, storage.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrInvalidNotation),
		errors.Is(err, model.ErrUnknownVariant),
		errors.Is(err, model.ErrUnknownCommand),
		errors.Is(err, storage.ErrInvalidName),
		errors.Is(err, errInvalidBody):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrNoPieceAtSource),
		errors.Is(err, model.ErrWrongOwner),
		errors.Is(err, model.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, model.ErrNotInGame),
		errors.Is(err, model.ErrNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrAlreadyQueued),
		errors.Is(err, service.ErrGameExists):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

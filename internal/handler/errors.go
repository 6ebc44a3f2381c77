package handler

import "github.com/gofiber/fiber/v3"

// ErrInvalidRequestBody indicates that the request payload could not be
// parsed into the expected structure.
var ErrInvalidRequestBody = fiber.NewError(fiber.StatusBadRequest, "invalid request body")

// ErrInvalidQueryParameters indicates that the request query string could
// not be parsed into the expected structure.
var ErrInvalidQueryParameters = fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")

// ErrOwnerRequired is returned when the owner address is missing.
var ErrOwnerRequired = fiber.NewError(fiber.StatusBadRequest, "owner address is required")

// ErrInvalidOwner is returned when the owner is not a hex address.
var ErrInvalidOwner = fiber.NewError(fiber.StatusBadRequest, "invalid owner address")

// ErrSameTags is returned when both asset tags of a pair are identical.
var ErrSameTags = fiber.NewError(fiber.StatusBadRequest, "asset tags cannot be the same")

// ErrPoolOperationFailedInternal signals a generic server-side failure.
var ErrPoolOperationFailedInternal = fiber.NewError(fiber.StatusInternalServerError, "pool operation failed")

// NewTagRequired returns a 400 Bad Request for a missing asset tag field.
func NewTagRequired(field string) error {
	return fiber.NewError(fiber.StatusBadRequest, field+" tag is required")
}

// NewInvalidAmount wraps an amount parsing error into a 400 Bad Request
// with a descriptive message.
func NewInvalidAmount(field string, err error) error {
	return fiber.NewError(fiber.StatusBadRequest, "invalid "+field+": "+err.Error())
}

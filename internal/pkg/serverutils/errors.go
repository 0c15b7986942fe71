package serverutils

import "github.com/gofiber/fiber/v2"

// AppError is a user-facing failure carrying an HTTP status. Services return
// these for conditions the caller can act on; anything else surfaces as a
// generic 500 through the error handler middleware.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Status: fiber.StatusConflict, Message: message}
}

func NewPayloadTooLargeError(message string) *AppError {
	return &AppError{Status: fiber.StatusRequestEntityTooLarge, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Status: fiber.StatusUnauthorized, Message: message}
}

func NewUpstreamError(message string) *AppError {
	return &AppError{Status: fiber.StatusBadGateway, Message: message}
}

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Sentinel errors for the failure kinds the API reports. Handlers return
// these (or fiber errors) and ErrorHandler maps them to statuses.
var (
	ErrValidation = errors.New("missing or malformed field")
	ErrDuplicate  = errors.New("record already exists")
	ErrAuth       = errors.New("invalid or expired credentials")
	ErrNotFound   = errors.New("record not found")
	ErrStore      = errors.New("database error")
)

const uniqueViolationCode = "23505"

// translateStoreErr converts driver-level failures into the API taxonomy so
// raw postgres errors never reach a client.
func translateStoreErr(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode {
		return ErrDuplicate
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ErrorHandler renders every error as an {"error": message} JSON body with
// the status the taxonomy assigns. Wired into fiber.Config in main.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Server error"

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		message = fiberErr.Message
	case errors.Is(err, ErrValidation):
		status = fiber.StatusBadRequest
		message = err.Error()
	case errors.Is(err, ErrDuplicate):
		status = fiber.StatusBadRequest
		message = err.Error()
	case errors.Is(err, ErrAuth):
		status = fiber.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		status = fiber.StatusNotFound
		message = "Not found"
	}

	return c.Status(status).JSON(fiber.Map{"error": message})
}

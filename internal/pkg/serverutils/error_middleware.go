package serverutils

import (
	"errors"

	"ai-docqa-be/pkg/extract"
	"ai-docqa-be/pkg/rag"
	"ai-docqa-be/pkg/vecstore"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain errors onto HTTP statuses so
// controllers can just return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		var noDocsErr *rag.NoDocumentsError
		var scopeErr *rag.InvalidScopeError
		var typeErr *extract.UnsupportedTypeError
		var dimErr *vecstore.DimensionError

		switch {
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
		case errors.As(err, &noDocsErr), errors.As(err, &scopeErr):
			status = fiber.StatusBadRequest
		case errors.As(err, &typeErr), errors.Is(err, extract.ErrNoMeaningfulText):
			status = fiber.StatusBadRequest
		case errors.As(err, &dimErr):
			status = fiber.StatusBadRequest
		}

		return c.Status(status).JSON(ErrorResponse(err.Error()))
	}
}

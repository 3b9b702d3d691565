package handlerutil

import (
	"errors"

	"portfolio-pulse/cmd/server/handlers/httperr"
	"portfolio-pulse/internal/logger"
	"portfolio-pulse/internal/services/content"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ParseAndValidateBody parses request body and validates it
func ParseAndValidateBody(c *fiber.Ctx, req any, validator *validator.Validate, handlerName string) error {
	if err := c.BodyParser(req); err != nil {
		logger.L().Warn("failed to parse request body", "handler", handlerName, "error", err)
		return httperr.Fail(httperr.ErrBadRequest)
	}

	if err := validator.Struct(req); err != nil {
		logger.L().Warn("request validation failed", "handler", handlerName, "error", err)
		return httperr.InvalidInput(err)
	}

	return nil
}

// ParseDocumentBody parses the request body as a JSON object. Arrays,
// scalars and malformed JSON are rejected with 400.
func ParseDocumentBody(c *fiber.Ctx, handlerName string) (content.Document, error) {
	var doc content.Document
	if err := c.BodyParser(&doc); err != nil {
		logger.L().Warn("failed to parse document body", "handler", handlerName, "error", err)
		return nil, httperr.Fail(httperr.ErrBadRequest)
	}
	if doc == nil {
		logger.L().Warn("document body is not a JSON object", "handler", handlerName)
		return nil, httperr.Fail(httperr.ErrBadRequest)
	}
	return doc, nil
}

// ExtractDocumentID extracts the document ID from the URL parameter.
func ExtractDocumentID(c *fiber.Ctx, handlerName string) (string, error) {
	id := c.Params("id")
	if id == "" {
		logger.L().Warn("missing document ID parameter", "handler", handlerName, "path", c.Path())
		return "", httperr.NotFound(content.ErrDocumentNotFound)
	}
	return id, nil
}

// HandleContentError maps content service errors onto the standard responses.
// Unknown collections and missing documents both read as 404.
func HandleContentError(err error, handlerName, collection string) error {
	logFields := []any{"handler", handlerName, "collection", collection, "error", err}

	switch {
	case errors.Is(err, content.ErrUnknownCollection):
		logger.L().Info("unknown collection requested", logFields...)
		return httperr.NotFound(content.ErrUnknownCollection)
	case errors.Is(err, content.ErrDocumentNotFound):
		logger.L().Info("document not found", logFields...)
		return httperr.NotFound(content.ErrDocumentNotFound)
	}

	logger.L().Error("content operation failed", logFields...)
	return httperr.Fail(httperr.E{
		Status:  500,
		Message: err.Error(),
	})
}

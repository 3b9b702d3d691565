package content

import (
	"context"

	"portfolio-pulse/cmd/server/handlers/handlerutil"
	"portfolio-pulse/internal/services/content"

	"github.com/gofiber/fiber/v2"
)

// ContentService defines the interface for the content service
type ContentService interface {
	List(ctx context.Context, collection string) ([]content.Document, error)
	Create(ctx context.Context, collection string, body content.Document) (content.Document, error)
	Update(ctx context.Context, collection, id string, patch content.Document) (content.Document, error)
	Delete(ctx context.Context, collection, id string) error
}

// Handlers contains the content HTTP handlers
type Handlers struct {
	contentService ContentService
}

// NewHandlers creates new content handlers
func NewHandlers(contentService ContentService) *Handlers {
	return &Handlers{
		contentService: contentService,
	}
}

// List returns every document in a collection
// @Summary List documents
// @Tags content
// @Produce json
// @Param collection path string true "Collection name"
// @Success 200 {array} content.Document
// @Failure 404 {object} httperr.E
// @Router /{collection} [get]
func (h *Handlers) List(c *fiber.Ctx) error {
	collection := c.Params("collection")

	docs, err := h.contentService.List(c.Context(), collection)
	if err != nil {
		return handlerutil.HandleContentError(err, "List", collection)
	}

	return c.JSON(docs)
}

// Create stores a new document in a collection
// @Summary Create a document
// @Tags content
// @Accept json
// @Produce json
// @Security Bearer
// @Param collection path string true "Collection name"
// @Param request body content.Document true "Document fields"
// @Success 201 {object} content.Document
// @Failure 400 {object} httperr.E
// @Failure 401 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /{collection} [post]
func (h *Handlers) Create(c *fiber.Ctx) error {
	collection := c.Params("collection")

	doc, err := handlerutil.ParseDocumentBody(c, "Create")
	if err != nil {
		return err
	}

	created, err := h.contentService.Create(c.Context(), collection, doc)
	if err != nil {
		return handlerutil.HandleContentError(err, "Create", collection)
	}

	return c.Status(201).JSON(created)
}

// Update merges fields into an existing document
// @Summary Update a document
// @Tags content
// @Accept json
// @Produce json
// @Security Bearer
// @Param collection path string true "Collection name"
// @Param id path string true "Document ID"
// @Param request body content.Document true "Fields to merge"
// @Success 200 {object} content.Document
// @Failure 400 {object} httperr.E
// @Failure 401 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /{collection}/{id} [put]
func (h *Handlers) Update(c *fiber.Ctx) error {
	collection := c.Params("collection")

	id, err := handlerutil.ExtractDocumentID(c, "Update")
	if err != nil {
		return err
	}

	patch, err := handlerutil.ParseDocumentBody(c, "Update")
	if err != nil {
		return err
	}

	updated, err := h.contentService.Update(c.Context(), collection, id, patch)
	if err != nil {
		return handlerutil.HandleContentError(err, "Update", collection)
	}

	return c.JSON(updated)
}

// Delete removes a document from a collection
// @Summary Delete a document
// @Tags content
// @Produce json
// @Security Bearer
// @Param collection path string true "Collection name"
// @Param id path string true "Document ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /{collection}/{id} [delete]
func (h *Handlers) Delete(c *fiber.Ctx) error {
	collection := c.Params("collection")

	id, err := handlerutil.ExtractDocumentID(c, "Delete")
	if err != nil {
		return err
	}

	if err := h.contentService.Delete(c.Context(), collection, id); err != nil {
		return handlerutil.HandleContentError(err, "Delete", collection)
	}

	return c.JSON(fiber.Map{"message": "Deleted successfully"})
}

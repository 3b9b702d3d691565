package content

import (
	"context"
	"errors"
	"log/slog"

	"portfolio-pulse/internal/utils/sanitize"
)

// Service handles generic-collection business logic
type Service struct {
	repo Repository
	open bool
	log  *slog.Logger
}

// NewService creates a new content service. When open is true any
// syntactically valid collection name is accepted, mirroring the
// pre-hardening behavior.
func NewService(repo Repository, open bool, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		open: open,
		log:  log,
	}
}

// List returns every document in the named collection in storage order.
// Reads are public; an unknown collection simply reads as empty in open
// mode and is rejected otherwise.
func (s *Service) List(ctx context.Context, collection string) ([]Document, error) {
	if !validCollection(collection, s.open) {
		return nil, ErrUnknownCollection
	}

	docs, err := s.repo.List(ctx, collection)
	if err != nil {
		s.log.Error(ErrListDocuments.Error(), "collection", collection, "error", err)
		return nil, ErrListDocuments
	}
	return docs, nil
}

// Create stores the body verbatim (minus reserved keys, strings HTML-stripped)
// and returns the stored document including its server-assigned identifier.
func (s *Service) Create(ctx context.Context, collection string, body Document) (Document, error) {
	if !validCollection(collection, s.open) {
		return nil, ErrUnknownCollection
	}

	fields := sanitize.CleanDocument(stripReserved(body))

	doc, err := s.repo.Insert(ctx, collection, fields)
	if err != nil {
		s.log.Error(ErrCreateDocument.Error(), "collection", collection, "error", err)
		return nil, ErrCreateDocument
	}
	return doc, nil
}

// Update merges the patch fields into the document identified by id and
// returns the post-merge document. Fields absent from the patch are
// left unchanged.
func (s *Service) Update(ctx context.Context, collection, id string, patch Document) (Document, error) {
	if !validCollection(collection, s.open) {
		return nil, ErrUnknownCollection
	}

	fields := sanitize.CleanDocument(stripReserved(patch))

	doc, err := s.repo.Update(ctx, collection, id, fields)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			s.log.Info("document not found for update", "collection", collection, "id", id)
			return nil, ErrDocumentNotFound
		}
		s.log.Error(ErrUpdateDocument.Error(), "collection", collection, "id", id, "error", err)
		return nil, ErrUpdateDocument
	}
	return doc, nil
}

// Delete removes the document. A second delete of the same id fails with
// ErrDocumentNotFound; callers that want idempotency tolerate that error.
func (s *Service) Delete(ctx context.Context, collection, id string) error {
	if !validCollection(collection, s.open) {
		return ErrUnknownCollection
	}

	if err := s.repo.Delete(ctx, collection, id); err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			s.log.Info("document not found for delete", "collection", collection, "id", id)
			return ErrDocumentNotFound
		}
		s.log.Error(ErrDeleteDocument.Error(), "collection", collection, "id", id, "error", err)
		return ErrDeleteDocument
	}
	return nil
}

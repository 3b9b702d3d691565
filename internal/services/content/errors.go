package content

import "errors"

// ErrDocumentNotFound - no document with the given id in the collection.
var ErrDocumentNotFound = errors.New("document not found")

// ErrUnknownCollection is returned when a collection name is not on the
// allow-list (and the store is not running in open mode).
var ErrUnknownCollection = errors.New("unknown collection")

// ErrCreateDocument is returned when document creation fails.
var ErrCreateDocument = errors.New("failed to create document")

// ErrUpdateDocument is returned when document update fails.
var ErrUpdateDocument = errors.New("failed to update document")

// ErrDeleteDocument is returned when document deletion fails.
var ErrDeleteDocument = errors.New("failed to delete document")

// ErrListDocuments is returned when listing a collection fails.
var ErrListDocuments = errors.New("failed to list documents")

package content

import "context"

// Repository defines the interface for generic-collection storage.
// The implementation owns identifier assignment and timestamp maintenance;
// it receives already-sanitized field maps with reserved keys stripped.
type Repository interface {
	List(ctx context.Context, collection string) ([]Document, error)
	Insert(ctx context.Context, collection string, fields Document) (Document, error)
	Update(ctx context.Context, collection, id string, fields Document) (Document, error)
	Delete(ctx context.Context, collection, id string) error
}

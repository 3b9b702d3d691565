package content

// Document is a schema-less content record. Documents within one collection
// need not share a shape; the store imposes nothing beyond the identifier
// and the timestamp pair.
//
// Reserved keys, always server-assigned:
//
//	_id        hex document identifier
//	createdAt  creation time
//	updatedAt  last modification time
//
// Key names match the wire format the admin UI and public site consume.
type Document map[string]any

// Reserved field names the store owns. Caller-supplied values under these
// keys are discarded on create and update.
const (
	FieldID        = "_id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// stripReserved removes server-owned keys from a caller-supplied body.
func stripReserved(doc Document) Document {
	delete(doc, FieldID)
	delete(doc, FieldCreatedAt)
	delete(doc, FieldUpdatedAt)
	return doc
}

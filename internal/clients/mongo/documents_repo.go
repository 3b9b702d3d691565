package mongo

import (
	"context"
	"errors"
	"time"

	"portfolio-pulse/internal/services/content"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DocumentsRepo implements the content.Repository interface for MongoDB.
// Collections are addressed by name at call time; Mongo creates a
// namespace lazily on first write, which is exactly the store contract.
type DocumentsRepo struct {
	db *mongo.Database
}

// NewDocumentsRepo creates a new generic documents repository
func NewDocumentsRepo(db *mongo.Database) *DocumentsRepo {
	return &DocumentsRepo{db: db}
}

// translateDocNotFound maps the driver ErrNoDocuments to the domain-level error.
func translateDocNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return content.ErrDocumentNotFound
	}
	return err
}

// parseDocumentID converts a caller-supplied hex id. A malformed id can
// never match a stored document, so it reads as not-found rather than
// leaking driver errors.
func parseDocumentID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, content.ErrDocumentNotFound
	}
	return oid, nil
}

// normalizeDocument rewrites driver-level values into wire-format ones:
// the ObjectID becomes its hex string and the timestamp pair becomes
// time.Time so JSON encoding yields RFC 3339 strings.
func normalizeDocument(raw bson.M) content.Document {
	doc := content.Document(raw)

	if oid, ok := doc[content.FieldID].(bson.ObjectID); ok {
		doc[content.FieldID] = oid.Hex()
	}
	for _, key := range []string{content.FieldCreatedAt, content.FieldUpdatedAt} {
		if dt, ok := doc[key].(bson.DateTime); ok {
			doc[key] = dt.Time().UTC()
		}
	}

	return doc
}

// List retrieves every document in the named collection in storage order
func (r *DocumentsRepo) List(ctx context.Context, collection string) ([]content.Document, error) {
	ctx, cancel := WithRepoTimeout(ctx, OpTimeout)
	defer cancel()

	cursor, err := r.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, err
	}

	docs := make([]content.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, normalizeDocument(m))
	}

	return docs, nil
}

// Insert stores the fields verbatim under a fresh identifier and
// timestamp pair, and returns the stored document.
func (r *DocumentsRepo) Insert(ctx context.Context, collection string, fields content.Document) (content.Document, error) {
	ctx, cancel := WithRepoTimeout(ctx, OpTimeout)
	defer cancel()

	oid := bson.NewObjectID()
	now := time.Now().UTC()

	record := bson.M{}
	for k, v := range fields {
		record[k] = v
	}
	record[content.FieldID] = oid
	record[content.FieldCreatedAt] = now
	record[content.FieldUpdatedAt] = now

	if _, err := r.db.Collection(collection).InsertOne(ctx, record); err != nil {
		return nil, err
	}

	return normalizeDocument(record), nil
}

// Update merges the fields into the identified document via $set, bumps
// updatedAt, and returns the post-update document.
func (r *DocumentsRepo) Update(ctx context.Context, collection, id string, fields content.Document) (content.Document, error) {
	ctx, cancel := WithRepoTimeout(ctx, OpTimeout)
	defer cancel()

	oid, err := parseDocumentID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{content.FieldUpdatedAt: time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var raw bson.M
	err = r.db.Collection(collection).
		FindOneAndUpdate(ctx, bson.M{content.FieldID: oid}, bson.M{"$set": set}, opts).
		Decode(&raw)
	if err != nil {
		return nil, translateDocNotFound(err)
	}

	return normalizeDocument(raw), nil
}

// Delete removes the identified document
func (r *DocumentsRepo) Delete(ctx context.Context, collection, id string) error {
	ctx, cancel := WithRepoTimeout(ctx, OpTimeout)
	defer cancel()

	oid, err := parseDocumentID(id)
	if err != nil {
		return err
	}

	result, err := r.db.Collection(collection).DeleteOne(ctx, bson.M{content.FieldID: oid})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return content.ErrDocumentNotFound
	}

	return nil
}

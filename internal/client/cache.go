package client

import (
	"context"
	"slices"
	"sync"
	"time"

	"portfolio-pulse/internal/services/content"
)

// DefaultPollInterval is how often a cache re-fetches its collection
// when no interval is configured.
const DefaultPollInterval = 30 * time.Second

// CollectionCache keeps a local copy of one collection fresh. It
// re-fetches on a fixed interval and applies the documents returned by
// its own writes immediately, so a single-writer caller sees its change
// without waiting for the next poll. A failed poll keeps the previous
// snapshot.
type CollectionCache struct {
	client     *Client
	collection string
	interval   time.Duration

	mu      sync.RWMutex
	docs    []content.Document
	lastErr error
	started bool

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// CacheOption customizes a CollectionCache.
type CacheOption func(*CollectionCache)

// WithPollInterval overrides DefaultPollInterval.
func WithPollInterval(d time.Duration) CacheOption {
	return func(cc *CollectionCache) {
		cc.interval = d
	}
}

// NewCollectionCache creates a cache over the named collection. Call
// Start to populate it and begin polling.
func NewCollectionCache(c *Client, collection string, opts ...CacheOption) *CollectionCache {
	cc := &CollectionCache{
		client:     c,
		collection: collection,
		interval:   DefaultPollInterval,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(cc)
	}
	return cc
}

// Start performs the initial fetch and launches the poll loop. The
// initial fetch is synchronous so a nil error means Snapshot is already
// populated.
func (cc *CollectionCache) Start(ctx context.Context) error {
	if err := cc.Refresh(ctx); err != nil {
		close(cc.done)
		return err
	}

	cc.mu.Lock()
	cc.started = true
	cc.mu.Unlock()

	go cc.poll(ctx)

	return nil
}

// Stop ends the poll loop and waits for it to exit. Safe to call more
// than once, and before Start.
func (cc *CollectionCache) Stop() {
	cc.stopOnce.Do(func() {
		close(cc.stop)
	})

	cc.mu.RLock()
	started := cc.started
	cc.mu.RUnlock()
	if started {
		<-cc.done
	}
}

func (cc *CollectionCache) poll(ctx context.Context) {
	defer close(cc.done)

	ticker := time.NewTicker(cc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := cc.Refresh(ctx); err != nil {
				cc.mu.Lock()
				cc.lastErr = err
				cc.mu.Unlock()
			}
		case <-cc.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Refresh fetches the collection now and replaces the snapshot. On
// error the previous snapshot stays in place.
func (cc *CollectionCache) Refresh(ctx context.Context) error {
	docs, err := cc.client.List(ctx, cc.collection)
	if err != nil {
		return err
	}

	cc.mu.Lock()
	cc.docs = docs
	cc.lastErr = nil
	cc.mu.Unlock()

	return nil
}

// Snapshot returns the cached documents. The slice is a copy; mutating
// it does not affect the cache.
func (cc *CollectionCache) Snapshot() []content.Document {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return slices.Clone(cc.docs)
}

// Err reports the most recent poll failure, nil after a successful
// refresh.
func (cc *CollectionCache) Err() error {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return cc.lastErr
}

// Create stores a new document through the client and appends the
// server's version to the snapshot.
func (cc *CollectionCache) Create(ctx context.Context, doc content.Document) (content.Document, error) {
	created, err := cc.client.Create(ctx, cc.collection, doc)
	if err != nil {
		return nil, err
	}

	cc.mu.Lock()
	cc.docs = append(slices.Clone(cc.docs), created)
	cc.mu.Unlock()

	return created, nil
}

// Update merges fields into the identified document and swaps the
// server's post-update version into the snapshot.
func (cc *CollectionCache) Update(ctx context.Context, id string, fields content.Document) (content.Document, error) {
	updated, err := cc.client.Update(ctx, cc.collection, id, fields)
	if err != nil {
		return nil, err
	}

	cc.mu.Lock()
	docs := slices.Clone(cc.docs)
	for i, doc := range docs {
		if doc[content.FieldID] == id {
			docs[i] = updated
			break
		}
	}
	cc.docs = docs
	cc.mu.Unlock()

	return updated, nil
}

// Delete removes the identified document on the server and drops it
// from the snapshot.
func (cc *CollectionCache) Delete(ctx context.Context, id string) error {
	if err := cc.client.Delete(ctx, cc.collection, id); err != nil {
		return err
	}

	cc.mu.Lock()
	cc.docs = slices.DeleteFunc(slices.Clone(cc.docs), func(doc content.Document) bool {
		return doc[content.FieldID] == id
	})
	cc.mu.Unlock()

	return nil
}

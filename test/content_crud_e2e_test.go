//go:build e2e

package test

import (
	"context"
	"net/http"
	"testing"
	"time"

	apiclient "portfolio-pulse/internal/client"
	"portfolio-pulse/internal/services/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentCRUDE2E(t *testing.T) {
	env := SetupTestEnvironment(t)

	adminEmail := "content-admin@example.com"
	adminPassword := "Password123"
	createAdmin(t, adminEmail, adminPassword)

	ctx := context.Background()
	c := apiclient.New(env.BaseURL)

	t.Run("reads_are_public", func(t *testing.T) {
		docs, err := c.List(ctx, "skills")
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("writes_require_token", func(t *testing.T) {
		_, err := c.Create(ctx, "skills", content.Document{"name": "Go"})
		assert.ErrorIs(t, err, apiclient.ErrUnauthenticated)
	})

	require.NoError(t, c.Login(ctx, adminEmail, adminPassword))

	var docID string
	t.Run("create", func(t *testing.T) {
		created, err := c.Create(ctx, "skills", content.Document{
			"name":      "Go",
			"level":     "expert",
			"_id":       "attacker-chosen",
			"createdAt": "1970-01-01T00:00:00Z",
		})
		require.NoError(t, err)

		id, ok := created["_id"].(string)
		require.True(t, ok)
		assert.NotEqual(t, "attacker-chosen", id, "server owns the identifier")
		assert.NotEqual(t, "1970-01-01T00:00:00Z", created["createdAt"], "server owns the timestamps")
		assert.Equal(t, "Go", created["name"])
		docID = id
	})

	t.Run("update_merges", func(t *testing.T) {
		updated, err := c.Update(ctx, "skills", docID, content.Document{"level": "principal"})
		require.NoError(t, err)
		assert.Equal(t, "Go", updated["name"], "untouched fields survive")
		assert.Equal(t, "principal", updated["level"])
		assert.Equal(t, docID, updated["_id"])
	})

	t.Run("list_includes_document", func(t *testing.T) {
		docs, err := c.List(ctx, "skills")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, docID, docs[0]["_id"])
	})

	t.Run("unknown_collection_404", func(t *testing.T) {
		_, err := c.List(ctx, "secrets")
		assert.ErrorIs(t, err, apiclient.ErrNotFound)

		_, err = c.Create(ctx, "secrets", content.Document{"x": 1})
		assert.ErrorIs(t, err, apiclient.ErrNotFound)
	})

	t.Run("delete_not_idempotent", func(t *testing.T) {
		require.NoError(t, c.Delete(ctx, "skills", docID))

		err := c.Delete(ctx, "skills", docID)
		assert.ErrorIs(t, err, apiclient.ErrNotFound)
	})

	t.Run("update_missing_404", func(t *testing.T) {
		_, err := c.Update(ctx, "skills", docID, content.Document{"level": "gone"})
		assert.ErrorIs(t, err, apiclient.ErrNotFound)
	})
}

func TestCollectionCacheE2E(t *testing.T) {
	env := SetupTestEnvironment(t)

	adminEmail := "cache-admin@example.com"
	adminPassword := "Password123"
	createAdmin(t, adminEmail, adminPassword)

	ctx := context.Background()

	writer := apiclient.New(env.BaseURL)
	require.NoError(t, writer.Login(ctx, adminEmail, adminPassword))

	reader := apiclient.New(env.BaseURL)
	cache := apiclient.NewCollectionCache(reader, "experience", apiclient.WithPollInterval(200*time.Millisecond))
	require.NoError(t, cache.Start(ctx))
	defer cache.Stop()

	assert.Empty(t, cache.Snapshot())

	_, err := writer.Create(ctx, "experience", content.Document{"company": "Acme", "title": "Engineer"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return len(cache.Snapshot()) == 1
	}, 5*time.Second, 100*time.Millisecond, "poll should pick up the write")
}

func TestHTMLSanitizationE2E(t *testing.T) {
	env := SetupTestEnvironment(t)

	adminEmail := "sanitize-admin@example.com"
	adminPassword := "Password123"
	createAdmin(t, adminEmail, adminPassword)

	ctx := context.Background()
	c := apiclient.New(env.BaseURL)
	require.NoError(t, c.Login(ctx, adminEmail, adminPassword))

	created, err := c.Create(ctx, "messages", content.Document{
		"name": "Mallory",
		"body": `<script>alert("x")</script>hello`,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", created["body"], "markup is stripped before storage")
}

func TestBodyLimitE2E(t *testing.T) {
	env := SetupTestEnvironment(t)

	adminEmail := "limit-admin@example.com"
	adminPassword := "Password123"
	createAdmin(t, adminEmail, adminPassword)

	token := login(t, env.BaseURL, adminEmail, adminPassword)

	// just over the default 10MB body limit
	big := make([]byte, 11*1024*1024)
	for i := range big {
		big[i] = 'a'
	}

	resp, err := httpJSON("POST", env.BaseURL+"/api/cv", map[string]string{"data": string(big)}, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.NoError(t, err)
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Errorf(msgFailedToCloseResponseBody, err)
		}
	}()

	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

package confluence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL:  server.URL,
		Email:    "dev@example.com",
		APIToken: "token",
		SpaceKey: "DOC",
		ParentID: "1000",
	})
	require.NoError(t, err)
	return client
}

func TestClient_Fetch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/wiki/rest/api/content/123", r.URL.Path)
		assert.Equal(t, "body.storage,version", r.URL.Query().Get("expand"))

		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "dev@example.com", user)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "123",
			"title": "Runbook",
			"version": {"number": 7},
			"body": {"storage": {"value": "<p>hello</p>"}}
		}`))
	})

	doc, err := client.Fetch(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "123", doc.ID)
	assert.Equal(t, "Runbook", doc.Title)
	assert.Equal(t, 7, doc.Version)
	assert.Equal(t, "<p>hello</p>", doc.Content)
}

func TestClient_Fetch_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "no content found"}`))
	})

	_, err := client.Fetch(context.Background(), "999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "no content found")
}

func TestClient_Create_SendsSpaceAndAncestor(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/wiki/rest/api/content", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "page", body["type"])
		assert.Equal(t, "New Page", body["title"])
		space := body["space"].(map[string]any)
		assert.Equal(t, "DOC", space["key"])
		ancestors := body["ancestors"].([]any)
		require.Len(t, ancestors, 1)
		assert.Equal(t, "1000", ancestors[0].(map[string]any)["id"])
		storage := body["body"].(map[string]any)["storage"].(map[string]any)
		assert.Equal(t, "<p>x</p>", storage["value"])
		assert.Equal(t, "storage", storage["representation"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "456", "title": "New Page", "version": {"number": 1}}`))
	})

	ref, err := client.Create(context.Background(), "New Page", "<p>x</p>")
	require.NoError(t, err)
	assert.Equal(t, "456", ref.ID)
	assert.Equal(t, 1, ref.Version)
}

func TestClient_Update_SendsIncrementedVersion(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/wiki/rest/api/content/123", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		version := body["version"].(map[string]any)
		assert.Equal(t, float64(8), version["number"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "123", "title": "Runbook", "version": {"number": 8}}`))
	})

	ref, err := client.Update(context.Background(), "123", "Runbook", "<p>new</p>", 7)
	require.NoError(t, err)
	assert.Equal(t, 8, ref.Version)
}

func TestClient_Update_Conflict(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message": "version conflict"}`))
	})

	_, err := client.Update(context.Background(), "123", "Runbook", "<p>new</p>", 7)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestClient_Delete(t *testing.T) {
	var deleted string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		deleted = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.Delete(context.Background(), "456"))
	assert.Equal(t, "/wiki/rest/api/content/456", deleted)
}

func TestClient_SearchByTitle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "26/08/31", r.URL.Query().Get("title"))
		assert.Equal(t, "DOC", r.URL.Query().Get("spaceKey"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": [{"id": "7", "title": "26/08/31", "version": {"number": 3}}]}`))
	})

	refs, err := client.SearchByTitle(context.Background(), "26/08/31")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "7", refs[0].ID)
	assert.Equal(t, 3, refs[0].Version)
}

func TestClient_SearchByTitle_Empty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": []}`))
	})

	refs, err := client.SearchByTitle(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestClient_UnexpectedStatusIsAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "bad credentials"}`))
	})

	_, err := client.Fetch(context.Background(), "123")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Contains(t, err.Error(), "bad credentials")
}

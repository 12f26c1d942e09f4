// internal/storefront/handler_test.go
package storefront

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greengrove/internal/plant"
)

func newTestStorefront(t *testing.T) *httptest.Server {
	t.Helper()

	router := chi.NewRouter()
	NewHandler(NewService(storefrontFixture())).RegisterRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func openTestSession(t *testing.T, srv *httptest.Server) (uuid.UUID, View) {
	t.Helper()

	resp, err := http.Post(srv.URL+"/api/v1/storefront/sessions", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var opened sessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&opened))
	return opened.SessionID, opened.View
}

func postIntent(t *testing.T, srv *httptest.Server, id uuid.UUID, in Intent) (*http.Response, View) {
	t.Helper()

	body, err := json.Marshal(in)
	require.NoError(t, err)

	resp, err := http.Post(
		fmt.Sprintf("%s/api/v1/storefront/sessions/%s/intents", srv.URL, id),
		"application/json",
		bytes.NewBuffer(body),
	)
	require.NoError(t, err)
	defer resp.Body.Close()

	var view View
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	}
	return resp, view
}

func TestOpenSessionReturnsInitialView(t *testing.T) {
	srv := newTestStorefront(t)

	id, view := openTestSession(t, srv)
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, 2, view.PlantCount)
	assert.Len(t, view.Categories, 1)
	assert.Empty(t, view.Cart.Entries)
}

func TestIntentRoundTrip(t *testing.T) {
	srv := newTestStorefront(t)
	id, _ := openTestSession(t, srv)

	resp, view := postIntent(t, srv, id, Intent{Type: IntentSelectCategory, Category: "1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, view.PlantCount)

	resp, view = postIntent(t, srv, id, Intent{Type: IntentAddToCart, Plant: "p1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, view.Cart.Entries, 1)
	assert.Equal(t, plant.Price(120), view.Cart.Total)
}

func TestGetViewReflectsLatestState(t *testing.T) {
	srv := newTestStorefront(t)
	id, _ := openTestSession(t, srv)
	postIntent(t, srv, id, Intent{Type: IntentAddToCart, Plant: "p2"})

	resp, err := http.Get(fmt.Sprintf("%s/api/v1/storefront/sessions/%s/view", srv.URL, id))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view View
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	require.Len(t, view.Cart.Entries, 1)
	assert.Equal(t, plant.ID("p2"), view.Cart.Entries[0].ID)
}

func TestUnknownIntentTypeIsBadRequest(t *testing.T) {
	srv := newTestStorefront(t)
	id, _ := openTestSession(t, srv)

	resp, _ := postIntent(t, srv, id, Intent{Type: "buy_now"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUnknownSessionIsNotFound(t *testing.T) {
	srv := newTestStorefront(t)

	resp, _ := postIntent(t, srv, uuid.New(), Intent{Type: IntentCloseDetail})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCloseSession(t *testing.T) {
	srv := newTestStorefront(t)
	id, _ := openTestSession(t, srv)

	req, err := http.NewRequest(http.MethodDelete,
		fmt.Sprintf("%s/api/v1/storefront/sessions/%s", srv.URL, id), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	getResp, err := http.Get(fmt.Sprintf("%s/api/v1/storefront/sessions/%s/view", srv.URL, id))
	require.NoError(t, err)
	getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

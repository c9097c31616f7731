package roster

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		response := map[string]interface{}{"data": []map[string]interface{}{}}
		if r.URL.Query().Get("sku[]") == "RE-VRC-24-0001" {
			response["data"] = []map[string]interface{}{{"id": 5555}}
		}
		json.NewEncoder(w).Encode(response)
	})

	mux.HandleFunc("/events/5555/teams", func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		response := map[string]interface{}{
			"data": []map[string]interface{}{
				{"number": "1234A"},
				{"number": "5678B"},
			},
			"meta": map[string]interface{}{"current_page": 1, "last_page": 2},
		}
		if page == "2" {
			response = map[string]interface{}{
				"data": []map[string]interface{}{
					{"number": "9012C"},
				},
				"meta": map[string]interface{}{"current_page": 2, "last_page": 2},
			}
		}
		json.NewEncoder(w).Encode(response)
	})

	return httptest.NewServer(mux)
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := New(&Config{
		Token:   "test-token",
		BaseURL: baseURL,
	})
	require.NoError(t, err)
	return client
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&Config{})
	assert.Error(t, err, "token is required")
}

func TestFetchTeamPool_FollowsPagination(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client := newTestClient(t, server.URL)
	numbers, err := client.FetchTeamPool(context.Background(), "RE-VRC-24-0001")
	require.NoError(t, err)
	assert.Equal(t, []string{"1234A", "5678B", "9012C"}, numbers)
}

func TestFetchTeamPool_UnknownSKU(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.FetchTeamPool(context.Background(), "RE-VRC-00-9999")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestFetchTeamPool_EmptySKU(t *testing.T) {
	client := newTestClient(t, "http://localhost:1")
	_, err := client.FetchTeamPool(context.Background(), "")
	assert.Error(t, err)
}

func TestFetchTeamPool_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.FetchTeamPool(context.Background(), "RE-VRC-24-0001")
	assert.ErrorContains(t, err, "status 500")
}

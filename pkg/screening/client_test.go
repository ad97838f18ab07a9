package screening

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResponse() SearchResponse {
	return SearchResponse{
		Results: []Entity{
			{
				ID:      "Q7747",
				Caption: "Vladimir Putin",
				Schema:  "Person",
				Properties: map[string][]interface{}{
					"topics":      {"sanction", "role.pep"},
					"nationality": {"ru"},
				},
				Datasets: []string{"eu_fsf", "us_ofac_sdn"},
				Target:   true,
				Score:    0.95,
			},
		},
		Total: ResultTotal{Value: 1, Relation: "eq"},
		Limit: 5,
	}
}

func TestSearch(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(sampleResponse())
	}))
	defer server.Close()

	client, err := NewWithConfig(ClientConfig{BaseURL: server.URL, RateLimit: 100})
	require.NoError(t, err)

	resp, err := client.Search(context.Background(), "Vladimir Putin", Options{
		Dataset: "sanctions",
		Limit:   5,
		Include: []string{"eu_fsf", "us_ofac_sdn"},
		Exclude: []string{"wikidata"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/search/sanctions", gotPath)
	assert.Equal(t, []string{"Vladimir Putin"}, gotQuery["q"])
	assert.Equal(t, []string{"5"}, gotQuery["limit"])
	assert.Equal(t, []string{"eu_fsf,us_ofac_sdn"}, gotQuery["scope"])
	assert.Equal(t, []string{"wikidata"}, gotQuery["exclude"])

	require.Len(t, resp.Results, 1)
	ent := resp.Results[0]
	assert.Equal(t, "Q7747", ent.ID)
	assert.True(t, ent.Target)
	assert.Equal(t, []string{"sanction", "role.pep"}, ent.Topics())
	assert.Equal(t, 1, resp.Total.Value)
}

func TestSearchDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/default", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Empty(t, r.URL.Query().Get("scope"))
		json.NewEncoder(w).Encode(SearchResponse{})
	}))
	defer server.Close()

	client, err := NewWithConfig(ClientConfig{BaseURL: server.URL, RateLimit: 100})
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "acme", Options{})
	require.NoError(t, err)
}

func TestSearchEmptyQuery(t *testing.T) {
	client, err := New("http://localhost:8000")
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "   ", Options{})
	assert.Error(t, err)
}

func TestSearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewWithConfig(ClientConfig{BaseURL: server.URL, RateLimit: 100})
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "acme", Options{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestSearchMany(t *testing.T) {
	var inFlight, maxInFlight int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := atomic.AddInt32(&inFlight, 1)
		for {
			max := atomic.LoadInt32(&maxInFlight)
			if cur <= max || atomic.CompareAndSwapInt32(&maxInFlight, max, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)

		if r.URL.Query().Get("q") == "broken" {
			http.Error(w, "boom", http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(sampleResponse())
	}))
	defer server.Close()

	client, err := NewWithConfig(ClientConfig{
		BaseURL:        server.URL,
		RateLimit:      1000,
		MaxConcurrency: 2,
	})
	require.NoError(t, err)

	names := []string{"alpha", "beta", "gamma", "broken", "delta", "epsilon"}
	results := client.SearchMany(context.Background(), names, Options{Limit: 5})

	require.Len(t, results, len(names))
	for _, name := range names {
		require.NotNil(t, results[name], "missing entry for %s", name)
	}

	assert.Empty(t, results["alpha"].Warning)
	assert.Len(t, results["alpha"].Results, 1)

	// The failed lookup degrades to a warning instead of failing the batch
	assert.NotEmpty(t, results["broken"].Warning)
	assert.Empty(t, results["broken"].Results)

	assert.LessOrEqual(t, atomic.LoadInt32(&maxInFlight), int32(2))
}

package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeES answers like an Elasticsearch 8 node for index, delete and search.
func fakeES(t *testing.T, seen *[]string) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*seen = append(*seen, r.Method+" "+r.URL.Path+" "+string(body))
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/_search"):
			_, _ = w.Write([]byte(`{"hits":{"hits":[{"_id":"c2"},{"_id":"c1"}]}}`))
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"result":"not_found"}`))
		default:
			_, _ = w.Write([]byte(`{"result":"created"}`))
		}
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es
}

func TestIndexRoundTrip(t *testing.T) {
	var seen []string
	idx := Courses(fakeES(t, &seen), "courses")
	ctx := context.Background()

	require.NoError(t, idx.Index(ctx, "c1", map[string]any{"name": "Go"}))
	require.NoError(t, idx.Delete(ctx, "missing"))

	ids, err := idx.Search(ctx, "go", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"c2", "c1"}, ids)

	require.Len(t, seen, 3)
	assert.Contains(t, seen[0], "/courses/_doc/c1")
	var q map[string]any
	require.NoError(t, json.Unmarshal([]byte(seen[2][strings.Index(seen[2], "{"):]), &q))
	assert.EqualValues(t, 10, q["size"])
}

package search

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/tienda/internal/models"
)

type recorded struct {
	Method string
	Path   string
	Body   string
}

// fakeES answers like a single-node cluster and records every call.
type fakeES struct {
	mu    sync.Mutex
	calls []recorded
}

func (f *fakeES) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.calls = append(f.calls, recorded{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		f.mu.Unlock()

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.URL.Path == "/":
			_, _ = w.Write([]byte(`{"version":{"number":"9.0.0"},"tagline":"You Know, for Search"}`))
		case strings.HasSuffix(r.URL.Path, "/_search"):
			_, _ = w.Write([]byte(`{"hits":{"total":{"value":1},"hits":[{"_source":{"id":3,"nombre":"Yerba","precio":10.5,"stock":4,"categoria":"almacen","descripcion":null}}]}}`))
		case r.Method == http.MethodDelete && strings.HasSuffix(r.URL.Path, "/404"):
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"result":"not_found"}`))
		case r.Method == http.MethodDelete:
			_, _ = w.Write([]byte(`{"result":"deleted"}`))
		default:
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"result":"created"}`))
		}
	})
}

func newTestIndex(t *testing.T) (*Index, *fakeES) {
	t.Helper()
	f := &fakeES{}
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), Config{URL: srv.URL})
	require.NoError(t, err)
	return New(client, "productos"), f
}

func TestIndexProduct(t *testing.T) {
	idx, f := newTestIndex(t)

	p := models.Product{ID: 3, Nombre: "Yerba", Precio: decimal.RequireFromString("10.50"), Stock: 4, Categoria: "almacen"}
	require.NoError(t, idx.IndexProduct(context.Background(), p))

	last := f.calls[len(f.calls)-1]
	require.Equal(t, "/productos/_doc/3", last.Path)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(last.Body), &doc))
	require.Equal(t, "Yerba", doc["nombre"])
	require.Equal(t, 10.5, doc["precio"])
}

func TestDeleteProductIgnoresMissingDocument(t *testing.T) {
	idx, _ := newTestIndex(t)

	require.NoError(t, idx.DeleteProduct(context.Background(), 3))
	require.NoError(t, idx.DeleteProduct(context.Background(), 404))
}

func TestSearch(t *testing.T) {
	idx, f := newTestIndex(t)

	total, prods, err := idx.Search(context.Background(), "yerba", 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, prods, 1)
	require.EqualValues(t, 3, prods[0].ID)
	require.True(t, decimal.RequireFromString("10.5").Equal(prods[0].Precio))

	last := f.calls[len(f.calls)-1]
	require.Equal(t, "/productos/_search", last.Path)
	require.Contains(t, last.Body, `"multi_match"`)
	require.Contains(t, last.Body, `"yerba"`)
}

func TestCalculate(t *testing.T) {
	from, size := Calculate(0, 0)
	require.Equal(t, 0, from)
	require.Equal(t, DefaultPageSize, size)

	from, size = Calculate(3, 20)
	require.Equal(t, 40, from)
	require.Equal(t, 20, size)

	_, size = Calculate(1, 1000)
	require.Equal(t, DefaultPageSize, size)

	from, size = Calculate(math.MaxInt, MaxPageSize)
	require.Equal(t, (MaxPage-1)*MaxPageSize, from)
	require.Equal(t, MaxPageSize, size)
	require.GreaterOrEqual(t, from, 0)
}

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_CatalogFetched(t *testing.T) {
	r := NewRecorder()

	r.CatalogFetched("network", "success", 12)
	r.CatalogFetched("network", "failure", 0)
	r.CatalogFetched("cache", "success", 7)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.catalogFetches.WithLabelValues("network", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.catalogFetches.WithLabelValues("network", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.catalogFetches.WithLabelValues("cache", "success")))
	assert.Equal(t, 7.0, testutil.ToFloat64(r.catalogPlants))
}

func TestRecorder_FailureKeepsPlantGauge(t *testing.T) {
	r := NewRecorder()

	r.CatalogFetched("network", "success", 5)
	r.CatalogFetched("network", "failure", 0)

	assert.Equal(t, 5.0, testutil.ToFloat64(r.catalogPlants))
}

func TestRecorder_CartOperation(t *testing.T) {
	r := NewRecorder()

	r.CartOperation("add")
	r.CartOperation("add")
	r.CartOperation("remove")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.cartOperations.WithLabelValues("add")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cartOperations.WithLabelValues("remove")))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.CartOperation("add")

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `plantshop_cart_operations_total{op="add"} 1`)
	assert.Contains(t, string(body), "plantshop_catalog_plants")
}

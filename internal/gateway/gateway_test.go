package gateway

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backend(name string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Backend", name)
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, r.Method+" "+r.URL.RequestURI())
	}))
}

func TestRouteTable_Validation(t *testing.T) {
	_, err := RouteTable("http://products:8081", "orders:8082")
	assert.ErrorContains(t, err, "ORDER_SERVICE_URL")

	_, err = RouteTable("", "http://orders:8082")
	assert.ErrorContains(t, err, "PRODUCT_SERVICE_URL")

	routes, err := RouteTable("http://products:8081/", "https://orders:8082")
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, "http://products:8081", routes[0].Target.String())
}

func TestRegister_ForwardsPathsUnchanged(t *testing.T) {
	products := backend("products")
	defer products.Close()
	orders := backend("orders")
	defer orders.Close()

	routes, err := RouteTable(products.URL, orders.URL)
	require.NoError(t, err)

	e := echo.New()
	Register(e, routes)
	e.GET("/health", func(c echo.Context) error { return c.String(http.StatusOK, "UP") })
	edge := httptest.NewServer(e)
	defer edge.Close()

	tests := []struct {
		path        string
		wantBackend string
		wantBody    string
		wantStatus  int
	}{
		{path: "/api/products", wantBackend: "products", wantBody: "GET /api/products", wantStatus: http.StatusOK},
		{path: "/api/products/search?name=pen", wantBackend: "products", wantBody: "GET /api/products/search?name=pen", wantStatus: http.StatusOK},
		{path: "/api/orders/6f1c1c4e-8d4a-4d3e-9a55-0f7c1b2a3d4e", wantBackend: "orders", wantBody: "GET /api/orders/6f1c1c4e-8d4a-4d3e-9a55-0f7c1b2a3d4e", wantStatus: http.StatusOK},
		{path: "/health", wantBody: "UP", wantStatus: http.StatusOK},
		{path: "/api/unknown", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(edge.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantBackend, resp.Header.Get("X-Backend"))
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, string(body))
			}
		})
	}
}

func TestRegister_UpstreamDown(t *testing.T) {
	down := backend("products")
	downURL := down.URL
	down.Close()

	routes, err := RouteTable(downURL, downURL)
	require.NoError(t, err)
	e := echo.New()
	Register(e, routes)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "SERVICE_UNAVAILABLE")
}

package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProductID = "550e8400-e29b-41d4-a716-446655440000"

func TestFetchProduct_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/"+testProductID, r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"` + testProductID + `","name":"ThinkPad","description":"Laptop","price":1499.99,"priceCents":149999,"categories":["Electronics"]}`))
	}))
	defer server.Close()

	client := NewProductClient(server.URL+"/", time.Second)
	snapshot, err := client.FetchProduct(context.Background(), testProductID)

	require.NoError(t, err)
	assert.Equal(t, testProductID, snapshot.ID)
	assert.Equal(t, "ThinkPad", snapshot.Name)
	assert.Equal(t, 149999, snapshot.Cents())
}

func TestProductSnapshot_Cents(t *testing.T) {
	tests := []struct {
		name     string
		snapshot ProductSnapshot
		expected int
	}{
		{name: "exact cents win", snapshot: ProductSnapshot{Price: 0.52, PriceCents: 53}, expected: 53},
		{name: "largest price", snapshot: ProductSnapshot{Price: 999999.99, PriceCents: 99999999}, expected: 99999999},
		{name: "major units are rounded", snapshot: ProductSnapshot{Price: 0.53}, expected: 53},
		{name: "major units past float32 precision", snapshot: ProductSnapshot{Price: 167772.17}, expected: 16777217},
		{name: "missing price", snapshot: ProductSnapshot{}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.snapshot.Cents())
		})
	}
}

func TestFetchProduct_Classification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected error
	}{
		{name: "not found", status: http.StatusNotFound, expected: ErrProductNotFound},
		{name: "internal error", status: http.StatusInternalServerError, body: "boom", expected: ErrRemoteServer},
		{name: "bad gateway", status: http.StatusBadGateway, expected: ErrRemoteServer},
		{name: "bad request", status: http.StatusBadRequest, expected: ErrRemoteServer},
		{name: "malformed body", status: http.StatusOK, body: "{not json", expected: ErrRemoteServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewProductClient(server.URL, time.Second)
			snapshot, err := client.FetchProduct(context.Background(), testProductID)

			assert.Nil(t, snapshot)
			assert.ErrorIs(t, err, tt.expected)
			assert.Contains(t, err.Error(), testProductID)
		})
	}
}

func TestFetchProduct_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client := NewProductClient(baseURL, time.Second)
	_, err := client.FetchProduct(context.Background(), testProductID)

	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestFetchProduct_TimeoutIsUnreachable(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewProductClient(server.URL, 50*time.Millisecond)
	_, err := client.FetchProduct(context.Background(), testProductID)

	assert.ErrorIs(t, err, ErrUnreachable)
}

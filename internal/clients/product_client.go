package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrProductNotFound means the product service answered 404 for the id.
	ErrProductNotFound = errors.New("product not found")
	// ErrRemoteServer means the product service was reached but did not return the product.
	ErrRemoteServer = errors.New("product service error")
	// ErrUnreachable means no response arrived: refused connection, DNS, timeout.
	ErrUnreachable = errors.New("product service unreachable")
)

// ProductSnapshot is the product service's view of a product at the time of the call.
// PriceCents is authoritative; Price is the rounded major unit display value.
type ProductSnapshot struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	PriceCents  int     `json:"priceCents"`
}

// Cents returns the snapshot price in cents. A response without priceCents falls back to
// rounding the major unit price, which is exact for any two decimal value.
func (s *ProductSnapshot) Cents() int {
	if s.PriceCents > 0 {
		return s.PriceCents
	}
	return int(math.Round(s.Price * 100))
}

// ProductLookup fetches a single product from the product directory.
type ProductLookup interface {
	FetchProduct(ctx context.Context, productID string) (*ProductSnapshot, error)
}

// ProductClient talks to the product service over HTTP. It never retries.
type ProductClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewProductClient creates a client for the product service at baseURL.
func NewProductClient(baseURL string, timeout time.Duration) *ProductClient {
	return &ProductClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchProduct performs GET /api/products/{id}. Errors wrap ErrProductNotFound,
// ErrRemoteServer or ErrUnreachable.
func (c *ProductClient) FetchProduct(ctx context.Context, productID string) (*ProductSnapshot, error) {
	endpoint := fmt.Sprintf("%s/api/products/%s", c.baseURL, url.PathEscape(productID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request for product %s: %v", ErrUnreachable, productID, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("WARN: product lookup %s failed: %v", productID, err)
		return nil, fmt.Errorf("%w: product %s: %v", ErrUnreachable, productID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response for product %s: %v", ErrUnreachable, productID, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	case resp.StatusCode != http.StatusOK:
		log.Printf("WARN: product service returned status %d for %s: %s", resp.StatusCode, productID, string(body))
		return nil, fmt.Errorf("%w: status %d for product %s", ErrRemoteServer, resp.StatusCode, productID)
	}

	var snapshot ProductSnapshot
	if err := json.Unmarshal(body, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: malformed response for product %s: %v", ErrRemoteServer, productID, err)
	}
	return &snapshot, nil
}

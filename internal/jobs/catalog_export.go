package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"dataware/internal/models"
	"dataware/internal/storage"
)

const (
	catalogContentType = "application/json"
	catalogPrefix      = "catalog/"
	catalogLinkExpiry  = 24 * time.Hour
)

// ProductLister is the slice of the product service the export reads.
type ProductLister interface {
	List(ctx context.Context) ([]*models.Product, error)
}

// CatalogSnapshot is the document written to object storage.
type CatalogSnapshot struct {
	ExportedAt time.Time         `json:"exportedAt"`
	Count      int               `json:"count"`
	Products   []*models.Product `json:"products"`
}

// CatalogExporter uploads a JSON snapshot of every product and keeps the newest retain of them.
type CatalogExporter struct {
	products ProductLister
	store    storage.ObjectStore
	bucket   string
	retain   int
	now      func() time.Time
}

// NewCatalogExporter creates an exporter. retain below 1 keeps every snapshot.
func NewCatalogExporter(products ProductLister, store storage.ObjectStore, bucket string, retain int) *CatalogExporter {
	return &CatalogExporter{
		products: products,
		store:    store,
		bucket:   bucket,
		retain:   retain,
		now:      time.Now,
	}
}

// ObjectName is the key a snapshot taken at t is stored under. Names sort chronologically.
func ObjectName(t time.Time) string {
	return fmt.Sprintf("%sproducts-%s.json", catalogPrefix, t.UTC().Format("20060102T150405Z"))
}

// Export writes one snapshot and returns its object name.
func (e *CatalogExporter) Export(ctx context.Context) (string, error) {
	products, err := e.products.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list products: %w", err)
	}

	exportedAt := e.now().UTC()
	body, err := json.Marshal(CatalogSnapshot{
		ExportedAt: exportedAt,
		Count:      len(products),
		Products:   products,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode catalog: %w", err)
	}

	if err := e.store.EnsureBucketExists(ctx, e.bucket); err != nil {
		return "", err
	}

	name := ObjectName(exportedAt)
	if err := e.store.PutObject(ctx, e.bucket, name, bytes.NewReader(body), int64(len(body)), catalogContentType); err != nil {
		return "", err
	}
	log.Printf("INFO: exported %d products to %s/%s", len(products), e.bucket, name)

	if link, err := e.store.GetPresignedURL(ctx, e.bucket, name, catalogLinkExpiry); err != nil {
		log.Printf("WARN: no download link for %s: %v", name, err)
	} else {
		log.Printf("INFO: latest catalog available for %s at %s", catalogLinkExpiry, link)
	}

	if err := e.prune(ctx); err != nil {
		log.Printf("WARN: catalog retention failed: %v", err)
	}
	return name, nil
}

// prune removes all but the newest retain snapshots.
func (e *CatalogExporter) prune(ctx context.Context) error {
	if e.retain < 1 {
		return nil
	}
	names, err := e.store.ListObjects(ctx, e.bucket, catalogPrefix)
	if err != nil {
		return err
	}
	if len(names) <= e.retain {
		return nil
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-e.retain] {
		if err := e.store.RemoveObject(ctx, e.bucket, name); err != nil {
			return err
		}
		log.Printf("INFO: removed expired catalog snapshot %s", name)
	}
	return nil
}

// Run is the scheduler entry point; failures are logged and retried on the next tick.
func (e *CatalogExporter) Run(ctx context.Context) error {
	if _, err := e.Export(ctx); err != nil {
		log.Printf("ERROR: catalog export failed: %v", err)
		return err
	}
	return nil
}

package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"dataware/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "dataware"

type CacheService interface {
	// Product caching
	GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, productID uuid.UUID) error

	// Generic string operations, used for idempotency keys
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	SetStringNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}

// cachedProduct keeps the price in cents so a cache hit never goes through the lossy float conversion.
type cachedProduct struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	PriceCents  int       `json:"price_cents"`
	Categories  []string  `json:"categories"`
	CreatedAt   time.Time `json:"created_at"`
}

type redisCacheService struct {
	client redis.Cmdable
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port as well as host:port
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	} else {
		log.Printf("INFO: Redis connection established (address: %s)", parsedAddr)
	}

	return &redisCacheService{client: client}
}

// NewCacheServiceWithClient wraps an existing client, e.g. a cluster client.
func NewCacheServiceWithClient(client redis.Cmdable) CacheService {
	return &redisCacheService{client: client}
}

func productKey(productID uuid.UUID) string {
	return fmt.Sprintf("%s:product:%s", keyPrefix, productID.String())
}

func (r *redisCacheService) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	data, err := r.client.Get(ctx, productKey(productID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var entry cachedProduct
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &models.Product{
		ID:          entry.ID,
		Name:        entry.Name,
		Description: entry.Description,
		PriceCents:  entry.PriceCents,
		Categories:  entry.Categories,
		CreatedAt:   entry.CreatedAt,
	}, nil
}

func (r *redisCacheService) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	data, err := json.Marshal(cachedProduct{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		PriceCents:  product.PriceCents,
		Categories:  product.Categories,
		CreatedAt:   product.CreatedAt,
	})
	if err != nil {
		return err
	}
	return r.client.Set(ctx, productKey(product.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	return r.client.Del(ctx, productKey(productID)).Err()
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, fmt.Sprintf("%s:%s", keyPrefix, key), value, ttl).Err()
}

// SetStringNX sets key only if it is absent and reports whether it did.
func (r *redisCacheService) SetStringNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, fmt.Sprintf("%s:%s", keyPrefix, key), value, ttl).Result()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, fmt.Sprintf("%s:%s", keyPrefix, key)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, fmt.Sprintf("%s:%s", keyPrefix, key)).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"dataware/internal/caching"
	"dataware/internal/clients"
	"dataware/internal/common"
	"dataware/internal/models"
	"dataware/internal/repositories"

	"github.com/google/uuid"
)

const (
	idempotencyPrefix   = "order:idempotency:"
	idempotencyPending  = "pending"
	idempotencyTTL      = 24 * time.Hour
	idempotencyClaimTTL = time.Minute
)

// OrderService defines order ledger operations. CreateOrder is the only one that reaches
// outside this service.
type OrderService interface {
	CreateOrder(ctx context.Context, req *models.OrderRequest) (*models.Order, error)
	CreateOrderIdempotent(ctx context.Context, key string, req *models.OrderRequest) (*models.Order, bool, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context) ([]*models.Order, error)
	SearchByProductID(ctx context.Context, productID uuid.UUID) ([]*models.Order, error)
	UpdateDeliveryAddress(ctx context.Context, id uuid.UUID, address string) (*models.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

type orderService struct {
	orderRepo    repositories.OrderRepository
	products     clients.ProductLookup
	cacheService caching.CacheService
}

// NewOrderService creates a new order service instance. cacheService may be nil, which
// disables Idempotency-Key replay.
func NewOrderService(orderRepo repositories.OrderRepository, products clients.ProductLookup, cacheService caching.CacheService) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		products:     products,
		cacheService: cacheService,
	}
}

type lineItem struct {
	productID uuid.UUID
	quantity  int
}

// CreateOrder validates the request, resolves every item against the product service in the
// order given, and saves the order only if all of them resolved. The first failing item aborts.
func (s *orderService) CreateOrder(ctx context.Context, req *models.OrderRequest) (*models.Order, error) {
	items, err := validateOrderRequest(req)
	if err != nil {
		return nil, err
	}

	order, err := s.assemble(ctx, req.DeliveryAddress, items)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		log.Printf("ERROR: failed to persist order: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	log.Printf("INFO: order %s created with %d items", order.ID, len(order.OrderItems))
	return order, nil
}

// CreateOrderIdempotent returns the order created earlier under key, if any, instead of
// running the pipeline again. The bool reports a replay. The key is claimed before the pipeline
// runs, so a concurrent request with the same key gets ErrConflict rather than a second order.
func (s *orderService) CreateOrderIdempotent(ctx context.Context, key string, req *models.OrderRequest) (*models.Order, bool, error) {
	key = strings.TrimSpace(key)
	if key == "" || s.cacheService == nil {
		order, err := s.CreateOrder(ctx, req)
		return order, false, err
	}
	cacheKey := idempotencyPrefix + key

	// A stale key is cleared once and claimed again.
	for attempt := 0; attempt < 2; attempt++ {
		claimed, err := s.cacheService.SetStringNX(ctx, cacheKey, idempotencyPending, idempotencyClaimTTL)
		if err != nil {
			log.Printf("WARN: idempotency claim failed for key %s, creating without replay: %v", key, err)
			order, err := s.CreateOrder(ctx, req)
			return order, false, err
		}
		if claimed {
			order, err := s.createClaimed(ctx, cacheKey, req)
			return order, false, err
		}

		order, stale, err := s.replay(ctx, cacheKey)
		if err != nil {
			return nil, false, err
		}
		if !stale {
			return order, true, nil
		}
	}
	return nil, false, fmt.Errorf("%w: idempotency key %s is being reused concurrently", ErrConflict, key)
}

// createClaimed runs the pipeline under a claimed key. Success records the order id; failure
// releases the key so the client can retry.
func (s *orderService) createClaimed(ctx context.Context, cacheKey string, req *models.OrderRequest) (*models.Order, error) {
	order, err := s.CreateOrder(ctx, req)
	if err != nil {
		if delErr := s.cacheService.Delete(ctx, cacheKey); delErr != nil {
			log.Printf("WARN: failed to release idempotency key %s: %v", cacheKey, delErr)
		}
		return nil, err
	}
	if cacheErr := s.cacheService.SetString(ctx, cacheKey, order.ID.String(), idempotencyTTL); cacheErr != nil {
		log.Printf("WARN: failed to record idempotency key %s: %v", cacheKey, cacheErr)
	}
	return order, nil
}

// replay resolves a key already present in the cache. stale reports a key that expired, holds
// garbage or points at a deleted order; such a key is removed.
func (s *orderService) replay(ctx context.Context, cacheKey string) (*models.Order, bool, error) {
	existingID, err := s.cacheService.GetString(ctx, cacheKey)
	if err != nil {
		return nil, false, fmt.Errorf("%w: idempotency lookup failed: %v", ErrUnavailable, err)
	}
	switch existingID {
	case "":
		return nil, true, nil
	case idempotencyPending:
		return nil, false, fmt.Errorf("%w: a request with this idempotency key is still in progress", ErrConflict)
	}

	id, parseErr := uuid.Parse(existingID)
	if parseErr == nil {
		order, getErr := s.GetOrder(ctx, id)
		if getErr == nil {
			return order, false, nil
		}
		if !errors.Is(getErr, ErrNotFound) {
			return nil, false, getErr
		}
	}

	if delErr := s.cacheService.Delete(ctx, cacheKey); delErr != nil {
		log.Printf("WARN: failed to clear stale idempotency key %s: %v", cacheKey, delErr)
	}
	return nil, true, nil
}

// assemble folds over the items, stopping at the first lookup failure.
func (s *orderService) assemble(ctx context.Context, deliveryAddress string, items []lineItem) (*models.Order, error) {
	order := &models.Order{
		DeliveryAddress: deliveryAddress,
		OrderItems:      make([]*models.OrderItem, 0, len(items)),
	}

	for _, item := range items {
		snapshot, err := s.products.FetchProduct(ctx, item.productID.String())
		if err != nil {
			return nil, classifyLookupError(item.productID, err)
		}

		orderItem := &models.OrderItem{
			ProductID:  item.productID,
			Quantity:   item.quantity,
			PriceCents: snapshot.Cents(),
		}
		if orderItem.PriceCents <= 0 || orderItem.PriceCents > models.MaxPriceCents {
			return nil, fmt.Errorf("%w: product %s has no valid price", ErrUpstream, item.productID)
		}
		order.AddItem(orderItem)
	}
	return order, nil
}

func classifyLookupError(productID uuid.UUID, err error) error {
	switch {
	case errors.Is(err, clients.ErrProductNotFound):
		return fmt.Errorf("%w: product %s", ErrNotFound, productID)
	case errors.Is(err, clients.ErrUnreachable):
		return fmt.Errorf("%w: product service unreachable while resolving product %s", ErrUnavailable, productID)
	default:
		return fmt.Errorf("%w: product service failed while resolving product %s: %v", ErrUpstream, productID, err)
	}
}

func validateDeliveryAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return newValidationError("deliveryAddress", "delivery address is required")
	}
	if n := utf8.RuneCountInString(address); n < 5 || n > 255 {
		return newValidationError("deliveryAddress", "delivery address must be between 5 and 255 characters")
	}
	return nil
}

func validateOrderRequest(req *models.OrderRequest) ([]lineItem, error) {
	if err := validateDeliveryAddress(req.DeliveryAddress); err != nil {
		return nil, err
	}
	if len(req.Products) == 0 {
		return nil, newValidationError("products", "at least one product is required")
	}

	items := make([]lineItem, 0, len(req.Products))
	for i, p := range req.Products {
		productID, err := common.ValidateUUID(p.ProductID, "productId")
		if err != nil {
			return nil, newValidationError(fmt.Sprintf("products[%d].productId", i), "%s", err.Error())
		}
		if p.Quantity <= 0 {
			return nil, newValidationError(fmt.Sprintf("products[%d].quantity", i), "quantity must be positive")
		}
		items = append(items, lineItem{productID: productID, quantity: p.Quantity})
	}
	return items, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, orderStoreError(id, err)
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]*models.Order, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return orders, nil
}

func (s *orderService) SearchByProductID(ctx context.Context, productID uuid.UUID) ([]*models.Order, error) {
	orders, err := s.orderRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return orders, nil
}

// UpdateDeliveryAddress is the only mutation an order allows after creation.
func (s *orderService) UpdateDeliveryAddress(ctx context.Context, id uuid.UUID, address string) (*models.Order, error) {
	if err := validateDeliveryAddress(address); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateDeliveryAddress(ctx, id, address); err != nil {
		return nil, orderStoreError(id, err)
	}
	return s.GetOrder(ctx, id)
}

func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return orderStoreError(id, err)
	}
	return nil
}

func orderStoreError(id uuid.UUID, err error) error {
	if errors.Is(err, repositories.ErrOrderNotFound) {
		return fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}

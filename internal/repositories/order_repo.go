package repositories

import (
	"context"
	"errors"
	"fmt"

	"dataware/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderRepository interface {
	Save(ctx context.Context, order *models.Order) error
	UpdateDeliveryAddress(ctx context.Context, id uuid.UUID, address string) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context) ([]*models.Order, error)
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderRepo struct {
	db Database
}

func NewOrderRepo(db Database) OrderRepository {
	return &orderRepo{db: db}
}

// Save writes the order and all of its items in one transaction. An order without created_at
// is inserted and gets its id and created_at assigned. A stored order is updated in place and
// items that are no longer part of it are removed; if it was deleted meanwhile Save returns
// ErrOrderNotFound and writes nothing.
func (r *orderRepo) Save(ctx context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if order.CreatedAt.IsZero() {
		query := `
			INSERT INTO orders (id, delivery_address, created_at)
			VALUES ($1, $2, NOW())
			RETURNING created_at
		`
		if err := tx.QueryRow(ctx, query, order.ID, order.DeliveryAddress).Scan(&order.CreatedAt); err != nil {
			return fmt.Errorf("failed to save order: %w", err)
		}
	} else {
		query := `UPDATE orders SET delivery_address = $2 WHERE id = $1 RETURNING created_at`
		if err := tx.QueryRow(ctx, query, order.ID, order.DeliveryAddress).Scan(&order.CreatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("failed to save order: %w", err)
		}
	}

	itemIDs := make([]uuid.UUID, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID
		itemIDs = append(itemIDs, item.ID)
	}

	pruneQuery := `DELETE FROM order_items WHERE order_id = $1 AND NOT (id = ANY($2))`
	if _, err := tx.Exec(ctx, pruneQuery, order.ID, itemIDs); err != nil {
		return fmt.Errorf("failed to prune order items: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, quantity, price, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET quantity = EXCLUDED.quantity, price = EXCLUDED.price, position = EXCLUDED.position
	`
	for position, item := range order.OrderItems {
		if _, err := tx.Exec(ctx, itemQuery, item.ID, item.OrderID, item.ProductID, item.Quantity, item.PriceCents, position); err != nil {
			return fmt.Errorf("failed to save order item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

// UpdateDeliveryAddress changes only the address column, so it can never recreate a deleted order.
func (r *orderRepo) UpdateDeliveryAddress(ctx context.Context, id uuid.UUID, address string) error {
	tag, err := r.db.Exec(ctx, `UPDATE orders SET delivery_address = $1 WHERE id = $2`, address, id)
	if err != nil {
		return fmt.Errorf("failed to update delivery address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `
		SELECT id, delivery_address, created_at
		FROM orders
		WHERE id = $1
	`
	order := &models.Order{}
	err := r.db.QueryRow(ctx, query, id).Scan(&order.ID, &order.DeliveryAddress, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	orders := []*models.Order{order}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) List(ctx context.Context) ([]*models.Order, error) {
	query := `
		SELECT id, delivery_address, created_at
		FROM orders
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByProductID returns every order owning at least one item for productID, each with all of its items.
func (r *orderRepo) FindByProductID(ctx context.Context, productID uuid.UUID) ([]*models.Order, error) {
	query := `
		SELECT o.id, o.delivery_address, o.created_at
		FROM orders o
		WHERE EXISTS (
			SELECT 1 FROM order_items oi
			WHERE oi.order_id = o.id AND oi.product_id = $1
		)
		ORDER BY o.created_at
	`
	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find orders by product: %w", err)
	}
	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Delete removes the order and its items in one transaction.
func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order delete: %w", err)
	}
	return nil
}

func (r *orderRepo) attachItems(ctx context.Context, orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*models.Order, len(orders))
	ids := make([]uuid.UUID, 0, len(orders))
	for _, order := range orders {
		order.OrderItems = []*models.OrderItem{}
		byID[order.ID] = order
		ids = append(ids, order.ID)
	}

	query := `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.PriceCents); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		if order, ok := byID[item.OrderID]; ok {
			order.OrderItems = append(order.OrderItems, item)
		}
	}
	return rows.Err()
}

func collectOrders(rows pgx.Rows) ([]*models.Order, error) {
	defer rows.Close()

	orders := []*models.Order{}
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.DeliveryAddress, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

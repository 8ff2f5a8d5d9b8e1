package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/bizflow/erp_backend/internal/apperrors"
	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOrderRepository struct {
	BaseRepository
}

// NewPgxOrderRepository creates a new repository for order data.
func NewPgxOrderRepository(pool *pgxpool.Pool) ports.OrderRepository {
	return &PgxOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ ports.OrderRepository = (*PgxOrderRepository)(nil)

const orderColumns = `order_id, order_number, type, customer_id, supplier_id, company_id,
	issued_by, email, date, delivery_date, amount, status, notes,
	delivery_status, delivery_address, delivery_notes, driver_id, version,
	created_at, created_by, last_updated_at, last_updated_by`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.OrderID, &o.OrderNumber, &o.Type, &o.CustomerID, &o.SupplierID, &o.CompanyID,
		&o.IssuedBy, &o.Email, &o.Date, &o.DeliveryDate, &o.Amount, &o.Status, &o.Notes,
		&o.DeliveryStatus, &o.DeliveryAddress, &o.DeliveryNotes, &o.DriverID, &o.Version,
		&o.CreatedAt, &o.CreatedBy, &o.LastUpdatedAt, &o.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func insertOrderItems(ctx context.Context, tx pgx.Tx, orderID string, items []domain.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO order_items (order_id, position, product_id, product_name, quantity, free_quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for i, item := range items {
		batch.Queue(query, orderID, i, item.ProductID, item.ProductName, item.Quantity, item.FreeQuantity, item.UnitPrice, item.TotalPrice)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}
	return nil
}

func (r *PgxOrderRepository) SaveOrder(ctx context.Context, o domain.Order) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO orders (`+orderColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		`, o.OrderID, o.OrderNumber, o.Type, o.CustomerID, o.SupplierID, o.CompanyID,
			o.IssuedBy, o.Email, o.Date, o.DeliveryDate, o.Amount, o.Status, o.Notes,
			o.DeliveryStatus, o.DeliveryAddress, o.DeliveryNotes, o.DriverID, o.Version,
			o.CreatedAt, o.CreatedBy, o.LastUpdatedAt, o.LastUpdatedBy)
		if err != nil {
			return fmt.Errorf("failed to insert order %s: %w", o.OrderID, translateError(err))
		}
		return insertOrderItems(ctx, tx, o.OrderID, o.Items)
	})
}

func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, orderID)
	o, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, translateError(err))
	}
	orders := []domain.Order{*o}
	if err := r.loadOrderItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *PgxOrderRepository) ListOrders(ctx context.Context, filter ports.OrderFilter) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []interface{}{}
	addArg := func(column string, v interface{}) {
		args = append(args, v)
		query += fmt.Sprintf(" AND %s = $%d", column, len(args))
	}
	if filter.Status != "" {
		addArg("status", filter.Status)
	}
	if filter.DeliveryStatus != "" {
		addArg("delivery_status", filter.DeliveryStatus)
	}
	if filter.Type != "" {
		addArg("type", filter.Type)
	}
	if filter.CustomerID != "" {
		addArg("customer_id", filter.CustomerID)
	}
	if filter.SupplierID != "" {
		addArg("supplier_id", filter.SupplierID)
	}
	if filter.CompanyID != "" {
		addArg("company_id", filter.CompanyID)
	}
	if filter.IssuedBy != "" {
		addArg("issued_by", filter.IssuedBy)
	}
	if filter.DriverID != "" {
		addArg("driver_id", filter.DriverID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadOrderItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PgxOrderRepository) loadOrderItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	byID := make(map[string]*domain.Order, len(orders))
	for i := range orders {
		ids[i] = orders[i].OrderID
		byID[orders[i].OrderID] = &orders[i]
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT order_id, product_id, product_name, quantity, free_quantity, unit_price, total_price
		FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, position
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var orderID string
		var item domain.LineItem
		if err := rows.Scan(&orderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.FreeQuantity, &item.UnitPrice, &item.TotalPrice); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		o := byID[orderID]
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

// UpdateOrder rewrites the order's mutable fields and replaces its line items
// with a version guard.
func (r *PgxOrderRepository) UpdateOrder(ctx context.Context, o domain.Order) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE orders
			SET email = $1, date = $2, delivery_date = $3, amount = $4, status = $5, notes = $6,
			    delivery_status = $7, delivery_address = $8, delivery_notes = $9, driver_id = $10,
			    version = version + 1, last_updated_at = $11, last_updated_by = $12
			WHERE order_id = $13 AND version = $14
		`, o.Email, o.Date, o.DeliveryDate, o.Amount, o.Status, o.Notes,
			o.DeliveryStatus, o.DeliveryAddress, o.DeliveryNotes, o.DriverID,
			o.LastUpdatedAt, o.LastUpdatedBy, o.OrderID, o.Version)
		if err != nil {
			return fmt.Errorf("failed to update order %s: %w", o.OrderID, err)
		}
		if tag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE order_id = $1)`, o.OrderID).Scan(&exists); err != nil {
				return fmt.Errorf("failed to check order %s: %w", o.OrderID, err)
			}
			if !exists {
				return fmt.Errorf("%w: order %s", apperrors.ErrNotFound, o.OrderID)
			}
			return fmt.Errorf("%w: order %s was modified concurrently", apperrors.ErrConflict, o.OrderID)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, o.OrderID); err != nil {
			return fmt.Errorf("failed to clear order items: %w", err)
		}
		return insertOrderItems(ctx, tx, o.OrderID, o.Items)
	})
}

func (r *PgxOrderRepository) updateOrderField(ctx context.Context, orderID, setClause string, value interface{}, updatedBy string, now time.Time) error {
	query := fmt.Sprintf(`
		UPDATE orders
		SET %s = $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
		WHERE order_id = $4
	`, setClause)
	tag, err := r.Pool.Exec(ctx, query, value, now, updatedBy, orderID)
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %s", apperrors.ErrNotFound, orderID)
	}
	return nil
}

func (r *PgxOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, updatedBy string, now time.Time) error {
	return r.updateOrderField(ctx, orderID, "status", status, updatedBy, now)
}

func (r *PgxOrderRepository) UpdateDeliveryStatus(ctx context.Context, orderID string, status domain.DeliveryStatus, updatedBy string, now time.Time) error {
	return r.updateOrderField(ctx, orderID, "delivery_status", status, updatedBy, now)
}

func (r *PgxOrderRepository) UpdateOrderDriver(ctx context.Context, orderID string, driverID string, updatedBy string, now time.Time) error {
	return r.updateOrderField(ctx, orderID, "driver_id", driverID, updatedBy, now)
}

func (r *PgxOrderRepository) DeleteOrder(ctx context.Context, orderID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM orders WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %s", apperrors.ErrNotFound, orderID)
	}
	return nil
}

func (r *PgxOrderRepository) DeleteAllOrders(ctx context.Context) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM orders`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete orders: %w", err)
	}
	return tag.RowsAffected(), nil
}

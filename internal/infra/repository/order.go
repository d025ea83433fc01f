package repository

import (
	"context"
	"encoding/json"

	"recoil-backend/internal/domain/order"
	"recoil-backend/internal/infra"
	"recoil-backend/internal/infra/db"
	"recoil-backend/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(pool db.DBTX) *OrderRepository {
	return &OrderRepository{db: pool}
}

// Create inserts the order row and all item rows through the caller's
// transaction handle. The usecase owns commit/rollback.
func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, o *order.Order) error {
	addr, err := json.Marshal(o.ShippingAddress())
	if err != nil {
		return infra.WrapRepoErr("failed to encode shipping address", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, user_id, customer_email, total_cents, status, shipping_address)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		o.ID(), o.UserID(), o.CustomerEmail(), o.Total().Cents(), o.Status().String(), addr,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert order", err)
	}

	for _, it := range o.Items() {
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price_cents)
			 VALUES ($1, $2, $3, $4, $5)`,
			o.ID(), it.ProductID(), it.Name(), it.Quantity(), it.UnitPrice().Cents(),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert order item", err)
		}
	}

	return nil
}

const orderColumns = `id, user_id, customer_email, total_cents, status, shipping_address, created_at, updated_at`

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.OrderRM, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)

	rm, err := scanOrder(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	items, err := r.loadItems(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	rm.Items = items[id]
	return rm, nil
}

func (r *OrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*readmodel.OrderRM, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find orders by user", err)
	}
	return r.collectWithItems(ctx, rows)
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]*readmodel.OrderRM, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	return r.collectWithItems(ctx, rows)
}

// UpdateStatus performs the optimistic concurrency write: the row moves
// only if its status still matches what the caller read.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next order.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		next.String(), id, expected.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order status changed concurrently", nil, infra.KindConflict)
	}
	return nil
}

// DeleteWithStatus hard-deletes the order (items cascade) with the same
// conditional guard as UpdateStatus.
func (r *OrderRepository) DeleteWithStatus(ctx context.Context, id uuid.UUID, expected order.Status) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM orders WHERE id = $1 AND status = $2`,
		id, expected.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to delete order", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order status changed concurrently", nil, infra.KindConflict)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*readmodel.OrderRM, error) {
	var (
		rm   readmodel.OrderRM
		addr []byte
	)
	if err := row.Scan(&rm.ID, &rm.UserID, &rm.CustomerEmail, &rm.TotalCents, &rm.Status, &addr, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(addr, &rm.ShippingAddress); err != nil {
		return nil, err
	}
	return &rm, nil
}

func (r *OrderRepository) collectWithItems(ctx context.Context, rows pgx.Rows) ([]*readmodel.OrderRM, error) {
	defer rows.Close()

	var result []*readmodel.OrderRM
	var ids []uuid.UUID
	for rows.Next() {
		rm, err := scanOrder(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan order row", err)
		}
		result = append(result, rm)
		ids = append(ids, rm.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order rows", err)
	}

	if len(ids) == 0 {
		return result, nil
	}

	itemsByOrder, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, rm := range result {
		rm.Items = itemsByOrder[rm.ID]
	}
	return result, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]readmodel.OrderItemRM, error) {
	rows, err := r.db.Query(ctx,
		`SELECT order_id, product_id, product_name, quantity, unit_price_cents
		 FROM order_items WHERE order_id = ANY($1)`,
		orderIDs,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order items", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]readmodel.OrderItemRM)
	for rows.Next() {
		var (
			orderID uuid.UUID
			it      readmodel.OrderItemRM
		)
		if err := rows.Scan(&orderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item row", err)
		}
		result[orderID] = append(result[orderID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order item rows", err)
	}
	return result, nil
}

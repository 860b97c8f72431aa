package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bloomshop-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateDraft(ctx context.Context, draft *Draft) error
	GetDraft(ctx context.Context, draftID uuid.UUID) (*Draft, error)
	ExpireDraft(ctx context.Context, draftID uuid.UUID) error

	// CreateOrderTx runs the atomic checkout unit: consume the draft,
	// conditionally decrement stock per item, insert the order and its
	// items. On return o.ID, o.TotalPrice and the per-item price snapshots
	// are filled in. Any failure rolls the whole unit back.
	CreateOrderTx(ctx context.Context, o *Order, draftID uuid.UUID) error

	// UpdateStatusTx transitions an order while holding a row lock, so
	// stock restoration on rejection happens at most once. It returns the
	// prior status and the number of units restored.
	UpdateStatusTx(ctx context.Context, orderID uint, newStatus Status) (Status, int, error)

	GetOrders(ctx context.Context, customerID *uint) ([]*Order, error)
	GetOrderDetail(ctx context.Context, orderID uint) (*Order, error)
	GetSalesStats(ctx context.Context) ([]ProductStat, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateDraft(ctx context.Context, draft *Draft) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateDraft"),
		zap.String("draft_id", draft.ID.String()),
		zap.Int("item_count", len(draft.Items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO checkout_drafts (
			id, session_key, customer_id, status, total_price, expires_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		draft.ID,
		draft.SessionKey,
		draft.CustomerID,
		draft.Status,
		draft.TotalPrice,
		draft.ExpiresAt,
	)
	if err != nil {
		log.Error("failed to insert checkout draft", zap.Error(err))
		return err
	}

	for i, item := range draft.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO checkout_draft_items (
				draft_id, product_id, product_name, quantity, unit_price, subtotal
			) VALUES ($1,$2,$3,$4,$5,$6)
		`,
			draft.ID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.UnitPrice,
			item.Subtotal,
		)
		if err != nil {
			log.Error("failed to insert draft item",
				zap.Int("item_index", i),
				zap.Uint("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit draft transaction", zap.Error(err))
		return err
	}

	committed = true
	return nil
}

func (r *repository) GetDraft(ctx context.Context, draftID uuid.UUID) (*Draft, error) {
	var d Draft

	err := r.db.QueryRowContext(ctx, `
		SELECT id, session_key, customer_id, status, total_price, created_at, expires_at
		FROM checkout_drafts
		WHERE id = $1
	`, draftID).Scan(
		&d.ID,
		&d.SessionKey,
		&d.CustomerID,
		&d.Status,
		&d.TotalPrice,
		&d.CreatedAt,
		&d.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, product_name, quantity, unit_price, subtotal
		FROM checkout_draft_items
		WHERE draft_id = $1
	`, d.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item DraftItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return nil, err
		}
		d.Items = append(d.Items, item)
	}

	return &d, rows.Err()
}

func (r *repository) ExpireDraft(ctx context.Context, draftID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE checkout_drafts
		SET status = 'EXPIRED'
		WHERE id = $1
		  AND status = 'PENDING'
	`, draftID)

	return err
}

func (r *repository) CreateOrderTx(ctx context.Context, o *Order, draftID uuid.UUID) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.String("draft_id", draftID.String()),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	// 1. One-time consumption of the draft; a concurrent finalize loses here.
	res, err := tx.ExecContext(ctx, `
		UPDATE checkout_drafts
		SET status = 'CONSUMED'
		WHERE id = $1
		  AND status = 'PENDING'
	`, draftID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrDraftConsumed
	}

	// 2. Conditional stock decrement per item. The guard makes the final
	// check-and-decrement a single atomic step: two finalizations racing
	// for the last unit cannot both pass. RETURNING price freezes the
	// snapshot the order items are priced at.
	total := 0.0
	for i := range o.Items {
		item := &o.Items[i]

		err := tx.QueryRowContext(ctx, `
			UPDATE products
			SET stock_quantity = stock_quantity - $1
			WHERE id = $2 AND stock_quantity >= $1
			RETURNING price
		`, item.Quantity, item.ProductID).Scan(&item.PriceAtPurchase)
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("stock shortfall during finalize",
				zap.Uint("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity),
			)
			return fmt.Errorf("%w: %q (need %d)", ErrInsufficientStock, item.ProductName, item.Quantity)
		}
		if err != nil {
			return err
		}

		total += item.PriceAtPurchase * float64(item.Quantity)
	}
	o.TotalPrice = total

	// 3. Insert the order with the total computed from in-transaction prices.
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			customer_id, customer_name, customer_phone, customer_address,
			total_price, payment_method, status, created_at, payment_proof_filename
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`,
		o.CustomerID,
		o.CustomerName,
		o.CustomerPhone,
		o.CustomerAddress,
		o.TotalPrice,
		o.PaymentMethod,
		o.Status,
		o.CreatedAt,
		o.PaymentProofFilename,
	).Scan(&o.ID)
	if err != nil {
		return err
	}

	// 4. Insert the line items.
	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price_at_purchase)
			VALUES ($1,$2,$3,$4)
			RETURNING id
		`, item.OrderID, item.ProductID, item.Quantity, item.PriceAtPurchase).Scan(&item.ID)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("order transaction committed",
		zap.Uint("order_id", o.ID),
		zap.Float64("total_price", o.TotalPrice),
	)

	return nil
}

func (r *repository) UpdateStatusTx(ctx context.Context, orderID uint, newStatus Status) (Status, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateStatusTx"),
		zap.Uint("order_id", orderID),
		zap.String("new_status", string(newStatus)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", 0, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	// Row lock gates restoration on the prior status: concurrent rejects
	// serialize here and only the first one restores stock.
	var current Status
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM orders WHERE id = $1 FOR UPDATE
	`, orderID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return "", 0, ErrOrderNotFound
	}
	if err != nil {
		return "", 0, err
	}

	if !current.CanTransitionTo(newStatus) {
		return current, 0, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, newStatus)
	}

	restored := 0
	if newStatus == StatusRejected && current != StatusRejected {
		rows, err := tx.QueryContext(ctx, `
			SELECT product_id, quantity FROM order_items WHERE order_id = $1
		`, orderID)
		if err != nil {
			return current, 0, err
		}

		type restoreLine struct {
			productID uint
			quantity  int
		}
		var lines []restoreLine
		for rows.Next() {
			var l restoreLine
			if err := rows.Scan(&l.productID, &l.quantity); err != nil {
				rows.Close()
				return current, 0, err
			}
			lines = append(lines, l)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return current, 0, err
		}

		for _, l := range lines {
			res, err := tx.ExecContext(ctx, `
				UPDATE products
				SET stock_quantity = stock_quantity + $1
				WHERE id = $2
			`, l.quantity, l.productID)
			if err != nil {
				return current, 0, err
			}
			if affected, _ := res.RowsAffected(); affected == 0 {
				// Product was deleted since purchase; nothing to restore onto.
				log.Warn("product missing during stock restoration",
					zap.Uint("product_id", l.productID),
					zap.Int("quantity", l.quantity),
				)
				continue
			}
			restored += l.quantity
		}
	}

	if current != newStatus {
		if _, err := tx.ExecContext(ctx, `
			UPDATE orders SET status = $1 WHERE id = $2
		`, newStatus, orderID); err != nil {
			return current, 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return current, 0, err
	}

	committed = true
	return current, restored, nil
}

func (r *repository) GetOrders(ctx context.Context, customerID *uint) ([]*Order, error) {
	query := `
		SELECT id, customer_id, customer_name, customer_phone, customer_address,
		       total_price, payment_method, status, created_at, payment_proof_filename
		FROM orders
		WHERE ($1::bigint IS NULL OR customer_id = $1)
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	byID := make(map[uint]*Order)
	var ids []int64

	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID,
			&o.CustomerID,
			&o.CustomerName,
			&o.CustomerPhone,
			&o.CustomerAddress,
			&o.TotalPrice,
			&o.PaymentMethod,
			&o.Status,
			&o.CreatedAt,
			&o.PaymentProofFilename,
		); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
		byID[o.ID] = &o
		ids = append(ids, int64(o.ID))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	// Load line items for the whole page in one query. The LEFT JOIN keeps
	// items whose product was deleted; their name falls back to empty.
	itemRows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price_at_purchase,
		       COALESCE(p.name, '')
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item OrderItem
		if err := itemRows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.PriceAtPurchase, &item.ProductName); err != nil {
			return nil, err
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}

	return orders, itemRows.Err()
}

func (r *repository) GetOrderDetail(ctx context.Context, orderID uint) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, customer_name, customer_phone, customer_address,
		       total_price, payment_method, status, created_at, payment_proof_filename
		FROM orders
		WHERE id = $1
	`, orderID).Scan(
		&o.ID,
		&o.CustomerID,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.CustomerAddress,
		&o.TotalPrice,
		&o.PaymentMethod,
		&o.Status,
		&o.CreatedAt,
		&o.PaymentProofFilename,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price_at_purchase,
		       COALESCE(p.name, '')
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.PriceAtPurchase, &item.ProductName); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}

	return &o, rows.Err()
}

// GetSalesStats aggregates units sold and revenue per product over orders
// that made it past pending (confirmed, shipped or delivered).
func (r *repository) GetSalesStats(ctx context.Context) ([]ProductStat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.name,
		       SUM(oi.quantity) AS units_sold,
		       SUM(oi.quantity * oi.price_at_purchase) AS revenue
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status IN ('confirmed', 'shipped', 'delivered')
		GROUP BY p.name
		ORDER BY revenue DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []ProductStat
	for rows.Next() {
		var s ProductStat
		if err := rows.Scan(&s.ProductName, &s.UnitsSold, &s.Revenue); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

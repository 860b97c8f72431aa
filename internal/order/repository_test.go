package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_CreateDraft(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	draft := &Draft{
		ID:         uuid.New(),
		SessionKey: "sess-1",
		Status:     DraftStatusPending,
		TotalPrice: 450.0,
		ExpiresAt:  time.Now().Add(30 * time.Minute),
		Items: []DraftItem{
			{ProductID: 1, ProductName: "Rose", Quantity: 3, UnitPrice: 150, Subtotal: 450},
		},
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO checkout_drafts").
			WithArgs(draft.ID, draft.SessionKey, nil, string(DraftStatusPending), 450.0, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO checkout_draft_items").
			WithArgs(draft.ID, uint(1), "Rose", 3, 150.0, 450.0).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.CreateDraft(context.Background(), draft))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Item insert failure rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO checkout_drafts").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO checkout_draft_items").
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		assert.Error(t, repo.CreateDraft(context.Background(), draft))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetDraft(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	draftID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		draftRows := sqlmock.NewRows([]string{"id", "session_key", "customer_id", "status", "total_price", "created_at", "expires_at"}).
			AddRow(draftID, "sess-1", nil, "PENDING", 450.0, time.Now(), time.Now().Add(time.Minute))
		itemRows := sqlmock.NewRows([]string{"product_id", "product_name", "quantity", "unit_price", "subtotal"}).
			AddRow(1, "Rose", 3, 150.0, 450.0)

		mock.ExpectQuery("SELECT id, session_key, customer_id, status, total_price").
			WithArgs(draftID).
			WillReturnRows(draftRows)
		mock.ExpectQuery("SELECT product_id, product_name, quantity, unit_price, subtotal").
			WithArgs(draftID).
			WillReturnRows(itemRows)

		d, err := repo.GetDraft(context.Background(), draftID)
		assert.NoError(t, err)
		assert.Equal(t, DraftStatusPending, d.Status)
		require.Len(t, d.Items, 1)
		assert.Equal(t, 3, d.Items[0].Quantity)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, session_key, customer_id, status, total_price").
			WithArgs(draftID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetDraft(context.Background(), draftID)
		assert.ErrorIs(t, err, ErrDraftNotFound)
	})
}

func TestRepository_CreateOrderTx(t *testing.T) {
	draftID := uuid.New()

	newOrder := func() *Order {
		return &Order{
			CustomerName:    "Lan",
			CustomerPhone:   "0912345678",
			CustomerAddress: "12 Hoa St",
			PaymentMethod:   PaymentMethodCash,
			Status:          StatusPending,
			CreatedAt:       time.Now(),
			Items: []OrderItem{
				{ProductID: 1, ProductName: "Rose", Quantity: 3},
				{ProductID: 2, ProductName: "Lily", Quantity: 1},
			},
		}
	}

	t.Run("Success computes total from in-transaction prices", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		o := newOrder()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE checkout_drafts SET status = 'CONSUMED'").
			WithArgs(draftID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`UPDATE products SET stock_quantity = stock_quantity - \$1`).
			WithArgs(3, uint(1)).
			WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow(150.0))
		mock.ExpectQuery(`UPDATE products SET stock_quantity = stock_quantity - \$1`).
			WithArgs(1, uint(2)).
			WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow(80.0))
		mock.ExpectQuery("INSERT INTO orders").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
		mock.ExpectQuery("INSERT INTO order_items").
			WithArgs(uint(42), uint(1), 3, 150.0).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
		mock.ExpectQuery("INSERT INTO order_items").
			WithArgs(uint(42), uint(2), 1, 80.0).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))
		mock.ExpectCommit()

		err = repo.CreateOrderTx(context.Background(), o, draftID)
		assert.NoError(t, err)
		assert.Equal(t, uint(42), o.ID)
		// 3*150 + 1*80, fixed at creation regardless of later price changes.
		assert.Equal(t, 530.0, o.TotalPrice)
		assert.Equal(t, 150.0, o.Items[0].PriceAtPurchase)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Consumed draft aborts before any stock mutation", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE checkout_drafts SET status = 'CONSUMED'").
			WithArgs(draftID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = repo.CreateOrderTx(context.Background(), newOrder(), draftID)
		assert.ErrorIs(t, err, ErrDraftConsumed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Stock shortfall on a later item rolls back the whole unit", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE checkout_drafts SET status = 'CONSUMED'").
			WithArgs(draftID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`UPDATE products SET stock_quantity = stock_quantity - \$1`).
			WithArgs(3, uint(1)).
			WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow(150.0))
		// Second item: guard stock_quantity >= quantity fails, no row returned.
		mock.ExpectQuery(`UPDATE products SET stock_quantity = stock_quantity - \$1`).
			WithArgs(1, uint(2)).
			WillReturnRows(sqlmock.NewRows([]string{"price"}))
		mock.ExpectRollback()

		err = repo.CreateOrderTx(context.Background(), newOrder(), draftID)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Contains(t, err.Error(), "Lily")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_UpdateStatusTx(t *testing.T) {
	t.Run("Metadata-only transition never touches stock", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM orders WHERE id = \\$1 FOR UPDATE").
			WithArgs(uint(1)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(string(StatusConfirmed), uint(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		previous, restored, err := repo.UpdateStatusTx(context.Background(), 1, StatusConfirmed)
		assert.NoError(t, err)
		assert.Equal(t, StatusPending, previous)
		assert.Equal(t, 0, restored)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rejection restores each line item once", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM orders WHERE id = \\$1 FOR UPDATE").
			WithArgs(uint(1)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
		mock.ExpectQuery("SELECT product_id, quantity FROM order_items").
			WithArgs(uint(1)).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity"}).
				AddRow(7, 2).
				AddRow(8, 5))
		mock.ExpectExec(`UPDATE products SET stock_quantity = stock_quantity \+ \$1`).
			WithArgs(2, uint(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE products SET stock_quantity = stock_quantity \+ \$1`).
			WithArgs(5, uint(8)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(string(StatusRejected), uint(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		previous, restored, err := repo.UpdateStatusTx(context.Background(), 1, StatusRejected)
		assert.NoError(t, err)
		assert.Equal(t, StatusPending, previous)
		assert.Equal(t, 7, restored)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rejecting an already rejected order is a stock no-op", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM orders WHERE id = \\$1 FOR UPDATE").
			WithArgs(uint(1)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("rejected"))
		mock.ExpectCommit()

		previous, restored, err := repo.UpdateStatusTx(context.Background(), 1, StatusRejected)
		assert.NoError(t, err)
		assert.Equal(t, StatusRejected, previous)
		assert.Equal(t, 0, restored)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Deleted product is skipped during restoration", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM orders WHERE id = \\$1 FOR UPDATE").
			WithArgs(uint(1)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("confirmed"))
		mock.ExpectQuery("SELECT product_id, quantity FROM order_items").
			WithArgs(uint(1)).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity"}).
				AddRow(7, 2).
				AddRow(9, 4))
		mock.ExpectExec(`UPDATE products SET stock_quantity = stock_quantity \+ \$1`).
			WithArgs(2, uint(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE products SET stock_quantity = stock_quantity \+ \$1`).
			WithArgs(4, uint(9)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs(string(StatusRejected), uint(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		_, restored, err := repo.UpdateStatusTx(context.Background(), 1, StatusRejected)
		assert.NoError(t, err)
		assert.Equal(t, 2, restored)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Disallowed edge is rejected", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM orders WHERE id = \\$1 FOR UPDATE").
			WithArgs(uint(1)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("delivered"))
		mock.ExpectRollback()

		_, _, err = repo.UpdateStatusTx(context.Background(), 1, StatusConfirmed)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown order", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM orders WHERE id = \\$1 FOR UPDATE").
			WithArgs(uint(404)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}))
		mock.ExpectRollback()

		_, _, err = repo.UpdateStatusTx(context.Background(), 404, StatusConfirmed)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_GetOrders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("Success with items attached", func(t *testing.T) {
		orderRows := sqlmock.NewRows([]string{
			"id", "customer_id", "customer_name", "customer_phone", "customer_address",
			"total_price", "payment_method", "status", "created_at", "payment_proof_filename",
		}).
			AddRow(1, nil, "Lan", "0912345678", "12 Hoa St", 530.0, "cash", "pending", now, nil).
			AddRow(2, 9, "Minh", "0987654321", "3 Dao St", 80.0, "bank_transfer", "confirmed", now, "proof.png")

		itemRows := sqlmock.NewRows([]string{"id", "order_id", "product_id", "quantity", "price_at_purchase", "name"}).
			AddRow(10, 1, 1, 3, 150.0, "Rose").
			AddRow(11, 1, 2, 1, 80.0, "Lily").
			AddRow(12, 2, 2, 1, 80.0, "Lily")

		mock.ExpectQuery("SELECT id, customer_id, customer_name").
			WillReturnRows(orderRows)
		mock.ExpectQuery("SELECT oi.id, oi.order_id, oi.product_id").
			WillReturnRows(itemRows)

		orders, err := repo.GetOrders(context.Background(), nil)
		assert.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Len(t, orders[0].Items, 2)
		assert.Len(t, orders[1].Items, 1)
		assert.Equal(t, "Rose", orders[0].Items[0].ProductName)
	})

	t.Run("Empty result skips item query", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, customer_id, customer_name").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "customer_id", "customer_name", "customer_phone", "customer_address",
				"total_price", "payment_method", "status", "created_at", "payment_proof_filename",
			}))

		orders, err := repo.GetOrders(context.Background(), nil)
		assert.NoError(t, err)
		assert.Empty(t, orders)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetSalesStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{"name", "units_sold", "revenue"}).
		AddRow("Rose", 12, 1800.0).
		AddRow("Lily", 4, 320.0)

	mock.ExpectQuery("SELECT p.name").
		WillReturnRows(rows)

	stats, err := repo.GetSalesStats(context.Background())
	assert.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Rose", stats[0].ProductName)
	assert.Equal(t, 1800.0, stats[0].Revenue)
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/salesledger/internal/ledger"
)

// saleColumns is the one column list used by every sale query. Each query
// site scans into the matching typed fields via scanSale; the column order
// here and the Scan order there are the single mapping definition.
const saleColumns = `transaction_id, transaction_time, cashier_id, store_id,
	payment_method, total_amount, total_discount, customer_id, created_at`

const insertSaleQuery = `
	INSERT INTO sales_transaction
		(transaction_time, cashier_id, store_id, payment_method, total_amount, total_discount, customer_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + saleColumns

const insertItemQuery = `
	INSERT INTO sales_item
		(transaction_id, product_code, product_name, category, quantity, unit_price, discount, total_price)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const updateSaleQuery = `
	UPDATE sales_transaction
	SET transaction_time = $1, cashier_id = $2, store_id = $3,
		payment_method = $4, total_amount = $5, customer_id = $6
	WHERE transaction_id = $7
	RETURNING ` + saleColumns

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanSale scans one row in saleColumns order.
func scanSale(sc scanner) (*ledger.Sale, error) {
	var sale ledger.Sale
	var customerID sql.NullInt64
	if err := sc.Scan(
		&sale.ID,
		&sale.TransactionTime,
		&sale.CashierID,
		&sale.StoreID,
		&sale.PaymentMethod,
		&sale.TotalAmount,
		&sale.TotalDiscount,
		&customerID,
		&sale.CreatedAt,
	); err != nil {
		return nil, err
	}
	if customerID.Valid {
		sale.CustomerID = &customerID.Int64
	}
	return &sale, nil
}

// CreateSale computes the sale totals from the draft items and persists the
// sale with all of its line items as one transaction on the write pool:
// parent row first, then one insert per item, one commit at the end. If any
// item insert fails, the parent insert is rolled back with it; a partially
// written sale is never visible.
func (s *Store) CreateSale(ctx context.Context, draft ledger.SaleDraft) (*ledger.Sale, error) {
	totalAmount, totalDiscount := draft.Totals()

	var sale *ledger.Sale
	err := s.withWriteTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, insertSaleQuery,
			draft.TransactionTime,
			draft.CashierID,
			draft.StoreID,
			draft.PaymentMethod,
			totalAmount,
			totalDiscount,
			draft.CustomerID,
		)

		var err error
		sale, err = scanSale(row)
		if err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}

		for i, item := range draft.Items {
			if _, err := tx.ExecContext(ctx, insertItemQuery,
				sale.ID,
				item.ProductCode,
				item.ProductName,
				item.Category,
				item.Quantity,
				item.UnitPrice,
				item.Discount,
				item.Total(),
			); err != nil {
				return fmt.Errorf("failed to insert item %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}

	s.logger.Debug("sale created",
		slog.Int64("sale_id", sale.ID),
		slog.Int("items", len(draft.Items)),
		slog.String("total_amount", sale.TotalAmount.String()))

	return sale, nil
}

// UpdateSale overwrites the mutable descriptive fields and the
// caller-supplied total of an existing sale. The total is deliberately not
// recomputed from items. Returns ErrNotFound if no sale matched.
func (s *Store) UpdateSale(ctx context.Context, id int64, upd ledger.SaleUpdate) (*ledger.Sale, error) {
	var sale *ledger.Sale
	err := s.withWriteTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, updateSaleQuery,
			upd.TransactionTime,
			upd.CashierID,
			upd.StoreID,
			upd.PaymentMethod,
			upd.TotalAmount,
			upd.CustomerID,
			id,
		)

		var err error
		sale, err = scanSale(row)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to update sale: %w", err)
		}
		return nil
	})
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	s.logger.Debug("sale updated", slog.Int64("sale_id", id))
	return sale, nil
}

// DeleteSale deletes a sale; the ON DELETE CASCADE rule removes its line
// items. It reports whether a row was deleted and propagates any failure
// rather than swallowing it.
func (s *Store) DeleteSale(ctx context.Context, id int64) (bool, error) {
	affected, err := s.execWrite(ctx, `DELETE FROM sales_transaction WHERE transaction_id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete sale: %w", err)
	}

	s.logger.Debug("sale deleted", slog.Int64("sale_id", id), slog.Bool("existed", affected > 0))
	return affected > 0, nil
}

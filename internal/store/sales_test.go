package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leapstack-labs/salesledger/internal/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var saleColumnNames = []string{
	"transaction_id", "transaction_time", "cashier_id", "store_id",
	"payment_method", "total_amount", "total_discount", "customer_id", "created_at",
}

func twoItemDraft(txTime time.Time) ledger.SaleDraft {
	return ledger.SaleDraft{
		TransactionTime: txTime,
		CashierID:       3,
		StoreID:         1,
		PaymentMethod:   ledger.PaymentCash,
		Items: []ledger.ItemDraft{
			{ProductCode: "P001", ProductName: "Coffee - Americano", Quantity: 2, UnitPrice: dec("10.00")},
			{ProductCode: "P002", ProductName: "Coffee - Latte", Quantity: 1, UnitPrice: dec("5.50"), Discount: dec("0.50")},
		},
	}
}

func TestCreateSale(t *testing.T) {
	txTime := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	createdAt := time.Date(2024, 3, 15, 10, 30, 1, 0, time.UTC)
	draft := twoItemDraft(txTime)
	wantAmount, wantDiscount := draft.Totals()

	t.Run("computes totals and writes everything in one transaction", func(t *testing.T) {
		s, writeMock, _ := newTestStore(t)

		writeMock.ExpectBegin()
		writeMock.ExpectQuery("INSERT INTO sales_transaction").
			WithArgs(txTime, 3, 1, ledger.PaymentCash, wantAmount, wantDiscount, nil).
			WillReturnRows(sqlmock.NewRows(saleColumnNames).
				AddRow(int64(42), txTime, 3, 1, ledger.PaymentCash, "25.00", "0.50", nil, createdAt))
		writeMock.ExpectExec("INSERT INTO sales_item").
			WithArgs(int64(42), "P001", "Coffee - Americano", nil, 2, dec("10.00"), decimal.Decimal{}, dec("20.00")).
			WillReturnResult(sqlmock.NewResult(1, 1))
		writeMock.ExpectExec("INSERT INTO sales_item").
			WithArgs(int64(42), "P002", "Coffee - Latte", nil, 1, dec("5.50"), dec("0.50"), dec("5.00")).
			WillReturnResult(sqlmock.NewResult(2, 1))
		writeMock.ExpectCommit()

		sale, err := s.CreateSale(context.Background(), draft)
		require.NoError(t, err)

		assert.Equal(t, int64(42), sale.ID)
		assert.True(t, sale.TotalAmount.Equal(dec("25.00")), "total = %s", sale.TotalAmount)
		assert.True(t, sale.TotalDiscount.Equal(dec("0.50")), "discount = %s", sale.TotalDiscount)
		assert.Equal(t, createdAt, sale.CreatedAt)
		assert.Nil(t, sale.CustomerID)

		assert.NoError(t, writeMock.ExpectationsWereMet())
	})

	t.Run("rolls back everything when an item insert fails", func(t *testing.T) {
		s, writeMock, _ := newTestStore(t)

		writeMock.ExpectBegin()
		writeMock.ExpectQuery("INSERT INTO sales_transaction").
			WillReturnRows(sqlmock.NewRows(saleColumnNames).
				AddRow(int64(42), txTime, 3, 1, ledger.PaymentCash, "25.00", "0.50", nil, createdAt))
		writeMock.ExpectExec("INSERT INTO sales_item").
			WillReturnResult(sqlmock.NewResult(1, 1))
		writeMock.ExpectExec("INSERT INTO sales_item").
			WillReturnError(assert.AnError)
		writeMock.ExpectRollback()

		sale, err := s.CreateSale(context.Background(), draft)
		require.Error(t, err)
		assert.Nil(t, sale)
		assert.Contains(t, err.Error(), "failed to create sale")
		assert.Contains(t, err.Error(), "item 1")

		// No commit expectation: ExpectationsWereMet fails if one happened.
		assert.NoError(t, writeMock.ExpectationsWereMet())
	})

	t.Run("rolls back when the parent insert fails", func(t *testing.T) {
		s, writeMock, _ := newTestStore(t)

		writeMock.ExpectBegin()
		writeMock.ExpectQuery("INSERT INTO sales_transaction").
			WillReturnError(assert.AnError)
		writeMock.ExpectRollback()

		sale, err := s.CreateSale(context.Background(), draft)
		require.Error(t, err)
		assert.Nil(t, sale)
		assert.Contains(t, err.Error(), "failed to insert sale")

		assert.NoError(t, writeMock.ExpectationsWereMet())
	})

	t.Run("fails when the transaction cannot be opened", func(t *testing.T) {
		s, writeMock, _ := newTestStore(t)

		writeMock.ExpectBegin().WillReturnError(assert.AnError)

		_, err := s.CreateSale(context.Background(), draft)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to begin transaction")
	})
}

func TestUpdateSale(t *testing.T) {
	txTime := time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 3, 15, 10, 30, 1, 0, time.UTC)
	customerID := int64(7)
	upd := ledger.SaleUpdate{
		TransactionTime: txTime,
		CashierID:       5,
		StoreID:         2,
		PaymentMethod:   ledger.PaymentCreditCard,
		TotalAmount:     dec("99.90"),
		CustomerID:      &customerID,
	}

	t.Run("overwrites fields and returns the updated sale", func(t *testing.T) {
		s, writeMock, _ := newTestStore(t)

		writeMock.ExpectBegin()
		writeMock.ExpectQuery("UPDATE sales_transaction").
			WithArgs(txTime, 5, 2, ledger.PaymentCreditCard, dec("99.90"), &customerID, int64(42)).
			WillReturnRows(sqlmock.NewRows(saleColumnNames).
				AddRow(int64(42), txTime, 5, 2, ledger.PaymentCreditCard, "99.90", "0.50", int64(7), createdAt))
		writeMock.ExpectCommit()

		sale, err := s.UpdateSale(context.Background(), 42, upd)
		require.NoError(t, err)

		assert.Equal(t, int64(42), sale.ID)
		assert.Equal(t, 5, sale.CashierID)
		assert.True(t, sale.TotalAmount.Equal(dec("99.90")))
		// total_discount is untouched by updates.
		assert.True(t, sale.TotalDiscount.Equal(dec("0.50")))
		require.NotNil(t, sale.CustomerID)
		assert.Equal(t, int64(7), *sale.CustomerID)

		assert.NoError(t, writeMock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when no row matched", func(t *testing.T) {
		s, writeMock, _ := newTestStore(t)

		writeMock.ExpectBegin()
		writeMock.ExpectQuery("UPDATE sales_transaction").
			WillReturnError(sql.ErrNoRows)
		writeMock.ExpectRollback()

		sale, err := s.UpdateSale(context.Background(), 9999, upd)
		assert.Nil(t, sale)
		assert.ErrorIs(t, err, ErrNotFound)

		assert.NoError(t, writeMock.ExpectationsWereMet())
	})
}

func TestDeleteSale(t *testing.T) {
	t.Run("reports true when a row was deleted", func(t *testing.T) {
		s, writeMock, _ := newTestStore(t)

		writeMock.ExpectBegin()
		writeMock.ExpectExec("DELETE FROM sales_transaction").
			WithArgs(int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		writeMock.ExpectCommit()

		deleted, err := s.DeleteSale(context.Background(), 42)
		require.NoError(t, err)
		assert.True(t, deleted)

		assert.NoError(t, writeMock.ExpectationsWereMet())
	})

	t.Run("reports false when nothing matched", func(t *testing.T) {
		s, writeMock, _ := newTestStore(t)

		writeMock.ExpectBegin()
		writeMock.ExpectExec("DELETE FROM sales_transaction").
			WithArgs(int64(9999)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		writeMock.ExpectCommit()

		deleted, err := s.DeleteSale(context.Background(), 9999)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("propagates failures instead of swallowing them", func(t *testing.T) {
		s, writeMock, _ := newTestStore(t)

		writeMock.ExpectBegin()
		writeMock.ExpectExec("DELETE FROM sales_transaction").
			WillReturnError(assert.AnError)
		writeMock.ExpectRollback()

		deleted, err := s.DeleteSale(context.Background(), 42)
		require.Error(t, err)
		assert.False(t, deleted)
		assert.Contains(t, err.Error(), "failed to delete sale")
		assert.True(t, errors.Is(err, assert.AnError))
	})
}

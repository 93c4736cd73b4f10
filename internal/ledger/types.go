// Package ledger defines the domain types for the sales ledger: sales,
// their line items, and the aggregate shapes produced by the read side.
// It has no database dependencies; persistence lives in internal/store.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods accepted at the point of sale.
const (
	PaymentCash          = "Cash"
	PaymentCreditCard    = "Credit Card"
	PaymentDebitCard     = "Debit Card"
	PaymentDigitalWallet = "Digital Wallet"
	PaymentBankTransfer  = "Bank Transfer"
)

// PaymentMethods returns the fixed set of accepted payment methods.
func PaymentMethods() []string {
	return []string{
		PaymentCash,
		PaymentCreditCard,
		PaymentDebitCard,
		PaymentDigitalWallet,
		PaymentBankTransfer,
	}
}

// ValidPaymentMethod reports whether m is one of the accepted payment methods.
func ValidPaymentMethod(m string) bool {
	for _, pm := range PaymentMethods() {
		if m == pm {
			return true
		}
	}
	return false
}

// Sale is a single checkout event. The ID and CreatedAt are assigned by the
// store on insertion. TotalAmount and TotalDiscount are the sums of the
// per-line values at the moment of creation; they are not recomputed when
// the sale is later updated.
type Sale struct {
	ID              int64
	TransactionTime time.Time
	CashierID       int
	StoreID         int
	PaymentMethod   string
	TotalAmount     decimal.Decimal
	TotalDiscount   decimal.Decimal
	CustomerID      *int64
	CreatedAt       time.Time
}

// LineItem is one product line within a sale. It is owned exclusively by its
// sale and is deleted with it. TotalPrice = UnitPrice*Quantity - Discount.
type LineItem struct {
	ID          int64
	SaleID      int64
	ProductCode string
	ProductName string
	Category    *string
	Quantity    int
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	TotalPrice  decimal.Decimal
}

// SaleUpdate carries the mutable descriptive fields of a sale. The total is
// caller-supplied and deliberately not recomputed from items.
type SaleUpdate struct {
	TransactionTime time.Time
	CashierID       int
	StoreID         int
	PaymentMethod   string
	TotalAmount     decimal.Decimal
	CustomerID      *int64
}

// SummaryStats holds the aggregate figures for the whole ledger.
// Null aggregates default to zero.
type SummaryStats struct {
	TotalSales       int64
	TotalRevenue     decimal.Decimal
	TotalItemsSold   int64
	AverageSaleValue decimal.Decimal
}

// ProductSales is one row of the top-products report.
type ProductSales struct {
	ProductName   string
	TotalQuantity int64
	TotalRevenue  decimal.Decimal
}

// TrendPoint is one calendar day of the sales trend report.
type TrendPoint struct {
	Day         time.Time
	TotalAmount decimal.Decimal
	SaleCount   int64
}

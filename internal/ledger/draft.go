package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ItemDraft is a not-yet-persisted line item supplied by the caller.
type ItemDraft struct {
	ProductCode string
	ProductName string
	Category    *string
	Quantity    int
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
}

// Total computes the line total: unit_price*quantity - discount.
func (d ItemDraft) Total() decimal.Decimal {
	return d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity))).Sub(d.Discount)
}

// Validate checks the per-item constraints: product code and name are
// required, quantity >= 1, unit price >= 0, discount >= 0.
func (d ItemDraft) Validate() error {
	if d.ProductCode == "" {
		return fmt.Errorf("product code is required")
	}
	if d.ProductName == "" {
		return fmt.Errorf("product name is required")
	}
	if d.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", d.Quantity)
	}
	if d.UnitPrice.IsNegative() {
		return fmt.Errorf("unit price must not be negative, got %s", d.UnitPrice)
	}
	if d.Discount.IsNegative() {
		return fmt.Errorf("discount must not be negative, got %s", d.Discount)
	}
	return nil
}

// SaleDraft is a not-yet-persisted sale together with its line items.
// Totals are computed from the items, never supplied by the caller.
type SaleDraft struct {
	TransactionTime time.Time
	CashierID       int
	StoreID         int
	PaymentMethod   string
	CustomerID      *int64
	Items           []ItemDraft
}

// Validate checks the draft before submission. The at-least-one-item rule
// belongs to this layer; the store itself does not special-case empty input.
func (d SaleDraft) Validate() error {
	if len(d.Items) == 0 {
		return fmt.Errorf("a sale requires at least one item")
	}
	if !ValidPaymentMethod(d.PaymentMethod) {
		return fmt.Errorf("unknown payment method: %q", d.PaymentMethod)
	}
	for i, item := range d.Items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

// Totals sums the line totals and discounts over all items using exact
// decimal arithmetic.
func (d SaleDraft) Totals() (amount, discount decimal.Decimal) {
	for _, item := range d.Items {
		amount = amount.Add(item.Total())
		discount = discount.Add(item.Discount)
	}
	return amount, discount
}

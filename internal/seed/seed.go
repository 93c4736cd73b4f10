// Package seed generates synthetic sales for demos and load testing.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/leapstack-labs/salesledger/internal/ledger"
)

// Product is one catalog entry a generated line item draws from.
type Product struct {
	Code     string
	Name     string
	Category string
}

// Catalog is the fixed demo product catalog.
var Catalog = []Product{
	{Code: "P001", Name: "Coffee - Americano", Category: "Beverages"},
	{Code: "P002", Name: "Coffee - Latte", Category: "Beverages"},
	{Code: "P003", Name: "Tea - Green", Category: "Beverages"},
	{Code: "P004", Name: "Sandwich - Club", Category: "Food"},
	{Code: "P005", Name: "Salad - Caesar", Category: "Food"},
	{Code: "P006", Name: "Pasta - Carbonara", Category: "Food"},
	{Code: "P007", Name: "Cake - Chocolate", Category: "Desserts"},
	{Code: "P008", Name: "Muffin - Blueberry", Category: "Desserts"},
	{Code: "P009", Name: "Ice Cream - Vanilla", Category: "Desserts"},
	{Code: "P010", Name: "Juice - Orange", Category: "Beverages"},
}

// Bounds for generated values, in cents.
const (
	minPriceCents = 200
	maxPriceCents = 2500
	maxDiscCents  = 500

	maxItemsPerSale = 5
	maxCashierID    = 10
	maxStoreID      = 5
	maxCustomerID   = 500
	trailingDays    = 30
)

// SaleCreator is the slice of the store the generator needs.
type SaleCreator interface {
	CreateSale(ctx context.Context, draft ledger.SaleDraft) (*ledger.Sale, error)
}

// Generator produces random sale drafts and persists them through a
// SaleCreator.
type Generator struct {
	creator SaleCreator
	logger  *slog.Logger
	rng     *rand.Rand
	now     func() time.Time
}

// New returns a generator with a randomly seeded source.
func New(creator SaleCreator, logger *slog.Logger) *Generator {
	return NewWithRand(creator, logger, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewWithRand returns a generator driven by the given source. Tests use a
// fixed seed to get reproducible drafts.
func NewWithRand(creator SaleCreator, logger *slog.Logger, rng *rand.Rand) *Generator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Generator{
		creator: creator,
		logger:  logger,
		rng:     rng,
		now:     time.Now,
	}
}

// Run creates count random sales and returns their identities. Each batch
// gets a correlation id so its log lines can be tied together. The first
// failed insert aborts the batch; sales created before it remain.
func (g *Generator) Run(ctx context.Context, count int) ([]int64, error) {
	if count < 1 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}

	batch := uuid.NewString()
	g.logger.Info("seeding sales", slog.String("batch", batch), slog.Int("count", count))

	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		draft := g.draft()
		sale, err := g.creator.CreateSale(ctx, draft)
		if err != nil {
			return ids, fmt.Errorf("failed to seed sale %d of %d: %w", i+1, count, err)
		}
		ids = append(ids, sale.ID)
		g.logger.Debug("seeded sale",
			slog.String("batch", batch),
			slog.Int64("transaction_id", sale.ID),
			slog.Int("items", len(draft.Items)))
	}

	g.logger.Info("seeding complete", slog.String("batch", batch), slog.Int("created", len(ids)))
	return ids, nil
}

// draft builds one random sale within the trailing window.
func (g *Generator) draft() ledger.SaleDraft {
	methods := ledger.PaymentMethods()

	d := ledger.SaleDraft{
		TransactionTime: g.now().Add(-time.Duration(g.rng.Int64N(int64(trailingDays * 24 * time.Hour)))),
		CashierID:       1 + g.rng.IntN(maxCashierID),
		StoreID:         1 + g.rng.IntN(maxStoreID),
		PaymentMethod:   methods[g.rng.IntN(len(methods))],
	}

	// Roughly half of sales carry a customer identity.
	if g.rng.IntN(2) == 0 {
		id := int64(1 + g.rng.IntN(maxCustomerID))
		d.CustomerID = &id
	}

	itemCount := 1 + g.rng.IntN(maxItemsPerSale)
	for i := 0; i < itemCount; i++ {
		product := Catalog[g.rng.IntN(len(Catalog))]
		price := minPriceCents + g.rng.Int64N(maxPriceCents-minPriceCents+1)

		// Discount never exceeds the unit price, so line totals stay positive.
		maxDisc := min(price, maxDiscCents)
		discount := g.rng.Int64N(maxDisc + 1)

		d.Items = append(d.Items, ledger.ItemDraft{
			ProductCode: product.Code,
			ProductName: product.Name,
			Category:    &product.Category,
			Quantity:    1 + g.rng.IntN(5),
			UnitPrice:   decimal.New(price, -2),
			Discount:    decimal.New(discount, -2),
		})
	}

	return d
}

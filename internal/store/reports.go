package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/leapstack-labs/salesledger/internal/ledger"
)

// itemColumns mirrors saleColumns for line items; scanItem is the single
// mapping definition.
const itemColumns = `item_id, transaction_id, product_code, product_name,
	category, quantity, unit_price, discount, total_price`

const listSalesQuery = `
	SELECT ` + saleColumns + `
	FROM sales_transaction
	ORDER BY created_at DESC
	LIMIT $1 OFFSET $2`

const getSaleQuery = `
	SELECT ` + saleColumns + `
	FROM sales_transaction
	WHERE transaction_id = $1`

const itemsBySaleQuery = `
	SELECT ` + itemColumns + `
	FROM sales_item
	WHERE transaction_id = $1
	ORDER BY item_id`

const summaryStatsQuery = `
	SELECT
		COUNT(DISTINCT st.transaction_id),
		COALESCE(SUM(st.total_amount), 0),
		COALESCE(SUM(si.quantity), 0),
		COALESCE(AVG(st.total_amount), 0)
	FROM sales_transaction st
	LEFT JOIN sales_item si ON st.transaction_id = si.transaction_id`

const topProductsQuery = `
	SELECT product_name, SUM(quantity), SUM(total_price)
	FROM sales_item
	GROUP BY product_name
	ORDER BY SUM(quantity) DESC
	LIMIT $1`

const salesTrendQuery = `
	SELECT DATE(transaction_time), SUM(total_amount), COUNT(*)
	FROM sales_transaction
	WHERE transaction_time >= CURRENT_DATE - $1 * INTERVAL '1 day'
	GROUP BY DATE(transaction_time)
	ORDER BY DATE(transaction_time)`

// scanItem scans one row in itemColumns order.
func scanItem(sc scanner) (*ledger.LineItem, error) {
	var item ledger.LineItem
	var category sql.NullString
	if err := sc.Scan(
		&item.ID,
		&item.SaleID,
		&item.ProductCode,
		&item.ProductName,
		&category,
		&item.Quantity,
		&item.UnitPrice,
		&item.Discount,
		&item.TotalPrice,
	); err != nil {
		return nil, err
	}
	if category.Valid {
		item.Category = &category.String
	}
	return &item, nil
}

// ListSales returns one page of sales ordered by creation time descending.
// page and pageSize must be positive.
func (s *Store) ListSales(ctx context.Context, page, pageSize int) ([]*ledger.Sale, error) {
	if page < 1 {
		return nil, fmt.Errorf("page must be positive, got %d", page)
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}

	offset := (page - 1) * pageSize
	rows, err := s.queryRead(ctx, listSalesQuery, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sales []*ledger.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}
	return sales, nil
}

// GetSale returns a sale by identity, or ErrNotFound.
func (s *Store) GetSale(ctx context.Context, id int64) (*ledger.Sale, error) {
	sale, err := scanSale(s.queryReadRow(ctx, getSaleQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	return sale, nil
}

// ItemsBySale returns the line items of a sale, ordered by item identity.
func (s *Store) ItemsBySale(ctx context.Context, saleID int64) ([]*ledger.LineItem, error) {
	rows, err := s.queryRead(ctx, itemsBySaleQuery, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []*ledger.LineItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}
	return items, nil
}

// SummaryStats computes the ledger-wide aggregates in a single
// join-and-aggregate query. Null aggregates come back as zero.
func (s *Store) SummaryStats(ctx context.Context) (*ledger.SummaryStats, error) {
	var stats ledger.SummaryStats
	err := s.queryReadRow(ctx, summaryStatsQuery).Scan(
		&stats.TotalSales,
		&stats.TotalRevenue,
		&stats.TotalItemsSold,
		&stats.AverageSaleValue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get summary stats: %w", err)
	}
	return &stats, nil
}

// TopProducts returns up to limit products by summed quantity, descending.
func (s *Store) TopProducts(ctx context.Context, limit int) ([]*ledger.ProductSales, error) {
	rows, err := s.queryRead(ctx, topProductsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var products []*ledger.ProductSales
	for rows.Next() {
		var p ledger.ProductSales
		if err := rows.Scan(&p.ProductName, &p.TotalQuantity, &p.TotalRevenue); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

// SalesTrend returns per-day summed amount and sale count for the trailing
// days, ordered by day ascending.
func (s *Store) SalesTrend(ctx context.Context, days int) ([]*ledger.TrendPoint, error) {
	rows, err := s.queryRead(ctx, salesTrendQuery, days)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales trend: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var trend []*ledger.TrendPoint
	for rows.Next() {
		var p ledger.TrendPoint
		if err := rows.Scan(&p.Day, &p.TotalAmount, &p.SaleCount); err != nil {
			return nil, fmt.Errorf("failed to scan trend point: %w", err)
		}
		trend = append(trend, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trend: %w", err)
	}
	return trend, nil
}

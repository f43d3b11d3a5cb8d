package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id, name, category, stock, min_stock, price, supplier, barcode, batch_number, last_updated`

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Postgres-backed catalog repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) List(ctx context.Context, filter ListFilter) ([]Product, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argPos))
		args = append(args, *filter.Category)
		argPos++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR barcode = $%d)", argPos, argPos+1))
		args = append(args, "%"+filter.Search+"%", filter.Search)
		argPos += 2
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + conditions[0]
		for i := 1; i < len(conditions); i++ {
			whereClause += " AND " + conditions[i]
		}
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(
		"SELECT %s FROM products %s ORDER BY id LIMIT $%d OFFSET $%d",
		productColumns, whereClause, argPos, argPos+1,
	)
	args = append(args, limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, rows.Err()
}

func (r *pgRepository) Get(ctx context.Context, id int64) (*Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrNotFound
	}
	return &products[0], nil
}

func (r *pgRepository) FindByBarcode(ctx context.Context, barcode string) ([]Product, error) {
	// ORDER BY id keeps ambiguous candidates in catalog order.
	query := fmt.Sprintf("SELECT %s FROM products WHERE barcode = $1 ORDER BY id", productColumns)
	rows, err := r.pool.Query(ctx, query, barcode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *pgRepository) LowStock(ctx context.Context) ([]Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE stock <= min_stock ORDER BY id", productColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]Product, error) {
	var products []Product
	for rows.Next() {
		var p Product
		var price pgtype.Numeric
		var supplier, batchNumber pgtype.Text
		var lastUpdated pgtype.Timestamptz

		err := rows.Scan(
			&p.ID, &p.Name, &p.Category, &p.Stock, &p.MinStock,
			&price, &supplier, &p.Barcode, &batchNumber, &lastUpdated,
		)
		if err != nil {
			return nil, err
		}

		if price.Valid {
			f, _ := price.Float64Value()
			p.Price = f.Float64
		}
		if supplier.Valid {
			val := supplier.String
			p.Supplier = &val
		}
		if batchNumber.Valid {
			val := batchNumber.String
			p.BatchNumber = &val
		}
		if lastUpdated.Valid {
			p.LastUpdated = lastUpdated.Time
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return products, nil
}

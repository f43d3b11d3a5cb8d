package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pickdesk/pickdesk/internal/catalog"
	"github.com/pickdesk/pickdesk/internal/platform/db"
)

type pgRepository struct {
	pool    *pgxpool.Pool
	catalog catalog.Repository
}

// NewRepository constructs a Postgres-backed order repository. The catalog
// repository hydrates the expected product on each item.
func NewRepository(pool *pgxpool.Pool, catalogRepo catalog.Repository) Repository {
	return &pgRepository{pool: pool, catalog: catalogRepo}
}

const orderColumns = `id, order_number, customer_name, customer_phone, customer_address, delivery_zone,
       status, total_value, assigned_to, created_at, assigned_at, completed_at`

func (r *pgRepository) Get(ctx context.Context, id int64) (*Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE id = $1", orderColumns)
	order, err := r.scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *pgRepository) GetByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE order_number = $1", orderColumns)
	order, err := r.scanOrder(r.pool.QueryRow(ctx, query, orderNumber))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *pgRepository) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}
	if req.AssignedTo != nil {
		conditions = append(conditions, fmt.Sprintf("assigned_to = $%d", argPos))
		args = append(args, *req.AssignedTo)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + conditions[0]
		for i := 1; i < len(conditions); i++ {
			whereClause += " AND " + conditions[i]
		}
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM orders %s", whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(
		"SELECT %s FROM orders %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		orderColumns, whereClause, argPos, argPos+1,
	)
	args = append(args, limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Order
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for i := range result {
		if err := r.loadItems(ctx, &result[i]); err != nil {
			return nil, 0, err
		}
	}
	return result, total, nil
}

func (r *pgRepository) Create(ctx context.Context, order Order) (*Order, error) {
	var created int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO orders (order_number, customer_name, customer_phone, customer_address, delivery_zone, status, total_value, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`,
			order.OrderNumber, order.Customer.Name, order.Customer.Phone, order.Customer.Address,
			order.Customer.DeliveryZone, order.Status, order.TotalValue, order.CreatedAt,
		).Scan(&created)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		for i := range order.Items {
			item := order.Items[i]
			_, err := tx.Exec(ctx, `
				INSERT INTO order_items (order_id, product_id, quantity, scanned_quantity, scanned, line_order)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				created, item.ProductID, item.Quantity, item.ScannedQuantity, item.Scanned, item.LineOrder,
			)
			if err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, created)
}

func (r *pgRepository) Save(ctx context.Context, order *Order) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE orders SET status = $1, assigned_to = $2, assigned_at = $3, completed_at = $4
			WHERE id = $5`,
			order.Status, order.AssignedTo, order.AssignedAt, order.CompletedAt, order.ID,
		)
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		for i := range order.Items {
			item := order.Items[i]
			_, err := tx.Exec(ctx, `
				UPDATE order_items SET scanned_quantity = $1, scanned = $2, scanned_at = $3
				WHERE id = $4 AND order_id = $5`,
				item.ScannedQuantity, item.Scanned, item.ScannedAt, item.ID, order.ID,
			)
			if err != nil {
				return fmt.Errorf("update order item: %w", err)
			}
		}
		return nil
	})
}

func (r *pgRepository) StalePending(ctx context.Context, olderThanHours int) ([]Order, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM orders WHERE status = $1 AND created_at < NOW() - make_interval(hours => $2) ORDER BY created_at",
		orderColumns,
	)
	rows, err := r.pool.Query(ctx, query, StatusPending, olderThanHours)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Order
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	return result, rows.Err()
}

func (r *pgRepository) scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var deliveryZone, assignedTo pgtype.Text
	var totalValue pgtype.Numeric
	var createdAt, assignedAt, completedAt pgtype.Timestamptz

	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.Customer.Name, &o.Customer.Phone, &o.Customer.Address, &deliveryZone,
		&o.Status, &totalValue, &assignedTo, &createdAt, &assignedAt, &completedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if deliveryZone.Valid {
		val := deliveryZone.String
		o.Customer.DeliveryZone = &val
	}
	if totalValue.Valid {
		f, _ := totalValue.Float64Value()
		o.TotalValue = f.Float64
	}
	if assignedTo.Valid {
		val := assignedTo.String
		o.AssignedTo = &val
	}
	if createdAt.Valid {
		o.CreatedAt = createdAt.Time
	}
	if assignedAt.Valid {
		val := assignedAt.Time
		o.AssignedAt = &val
	}
	if completedAt.Valid {
		val := completedAt.Time
		o.CompletedAt = &val
	}
	return &o, nil
}

func (r *pgRepository) loadItems(ctx context.Context, order *Order) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, product_id, quantity, scanned_quantity, scanned, scanned_at, line_order
		FROM order_items WHERE order_id = $1 ORDER BY line_order, id`,
		order.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		var scannedAt pgtype.Timestamptz
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
			&item.ScannedQuantity, &item.Scanned, &scannedAt, &item.LineOrder,
		); err != nil {
			return err
		}
		if scannedAt.Valid {
			val := scannedAt.Time
			item.ScannedAt = &val
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range items {
		product, err := r.catalog.Get(ctx, items[i].ProductID)
		if err != nil {
			return fmt.Errorf("hydrate item product: %w", err)
		}
		items[i].Product = *product
	}
	order.Items = items
	return nil
}

// NextOrderNumber generates PD-{YYMM}-{SEQ} style order numbers.
func (r *pgRepository) NextOrderNumber(ctx context.Context, date time.Time) (string, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM orders").Scan(&count); err != nil {
		return "", err
	}
	return fmt.Sprintf("PD-%s-%04d", date.Format("0601"), count+1), nil
}

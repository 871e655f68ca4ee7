package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fitquality/storefront/internal/domain"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `INSERT INTO orders (id, customer_id, customer_name, customer_email, customer_phone,
	                              shipping_address, total_amount, currency, proof_image_uri, delivered, items, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, insertErr := r.db.ExecContext(ctx, query,
		order.ID,
		order.CustomerID,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.ShippingAddress,
		order.TotalAmount,
		order.Currency,
		order.ProofImageURI,
		order.Delivered,
		itemsJSON,
		order.CreatedAt)
	if insertErr != nil {
		return fmt.Errorf("insert order: %w", insertErr)
	}
	return nil
}

const orderColumns = `id, customer_id, customer_name, customer_email, customer_phone,
	shipping_address, total_amount, currency, proof_image_uri, delivered, items, created_at`

func scanOrder(scan func(dest ...any) error) (*domain.Order, error) {
	var order domain.Order
	var itemsJSON []byte
	if err := scan(
		&order.ID,
		&order.CustomerID,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.CustomerPhone,
		&order.ShippingAddress,
		&order.TotalAmount,
		&order.Currency,
		&order.ProofImageURI,
		&order.Delivered,
		&itemsJSON,
		&order.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	return &order, nil
}

func (r *PostgresRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}
	return order, nil
}

func (r *PostgresRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`, orderColumns)
	return r.list(ctx, query, customerID)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders ORDER BY created_at DESC`, orderColumns)
	return r.list(ctx, query)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return orders, nil
}

func (r *PostgresRepository) SetDeliveryProof(ctx context.Context, id uuid.UUID, proofURI string) error {
	query := `UPDATE orders SET proof_image_uri = $2, delivered = TRUE WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, proofURI)
	if err != nil {
		return fmt.Errorf("set delivery proof: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set delivery proof rows affected: %w", err)
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

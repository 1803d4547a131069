package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

const orderNumberAttempts = 10

// pgxPool is the subset of pgxpool.Pool the storage relies on, extracted so
// tests can substitute a mock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Orders returns the order repository backed by this storage.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS payments (
            id SERIAL PRIMARY KEY,
            card_type TEXT NOT NULL,
            last_four_digits TEXT NOT NULL,
            expiry_month TEXT NOT NULL,
            expiry_year TEXT NOT NULL,
            transaction_id TEXT NOT NULL,
            status TEXT NOT NULL,
            amount NUMERIC(12,2) NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            order_number TEXT UNIQUE NOT NULL,
            user_id BIGINT NOT NULL,
            payment_id BIGINT NOT NULL REFERENCES payments(id),
            shipping_name TEXT NOT NULL,
            shipping_email TEXT NOT NULL,
            shipping_phone TEXT NOT NULL DEFAULT '',
            shipping_address TEXT NOT NULL,
            shipping_address2 TEXT NOT NULL DEFAULT '',
            shipping_city TEXT NOT NULL,
            shipping_postcode TEXT NOT NULL,
            shipping_country TEXT NOT NULL,
            subtotal NUMERIC(12,2) NOT NULL,
            tax NUMERIC(12,2) NOT NULL,
            shipping NUMERIC(12,2) NOT NULL,
            total NUMERIC(12,2) NOT NULL,
            status TEXT NOT NULL,
            confirmation_sent BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            product_id BIGINT NOT NULL,
            product_name TEXT NOT NULL,
            unit_price NUMERIC(12,2) NOT NULL,
            quantity INTEGER NOT NULL,
            line_total NUMERIC(12,2) NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_unconfirmed ON orders(created_at) WHERE NOT confirmation_sent`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateOrderNumber builds a human readable ORD-<date>-<random6> number.
// Uniqueness is verified against the store by the caller.
func generateOrderNumber(now time.Time) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = orderNumberAlphabet[rand.Intn(len(orderNumberAlphabet))]
	}
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}

func (s *Storage) uniqueOrderNumber(ctx context.Context, tx pgx.Tx) (string, error) {
	for i := 0; i < orderNumberAttempts; i++ {
		number := generateOrderNumber(time.Now())
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE order_number=$1)`, number).Scan(&exists); err != nil {
			return "", fmt.Errorf("check order number: %w", err)
		}
		if !exists {
			return number, nil
		}
		s.logger.Warn("order number collision, regenerating", slog.String("order_number", number))
	}
	return "", fmt.Errorf("could not generate unique order number after %d attempts", orderNumberAttempts)
}

// --- OrderRepository implementation ---

// Commit writes payment, order, and item snapshots as one transaction.
// Either all records become durably visible or none are.
func (r *orderRepository) Commit(ctx context.Context, cart *model.Cart, userID int64, decision model.PaymentDecision) (*model.Order, error) {
	if !cart.HasCustomer() || !cart.HasCredential() {
		return nil, domainErrors.ErrIncompleteCart
	}

	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		payment, err := r.insertPayment(ctx, tx, cart, decision)
		if err != nil {
			return err
		}

		number, err := r.storage.uniqueOrderNumber(ctx, tx)
		if err != nil {
			return err
		}

		customer := cart.Customer
		const insertOrder = `INSERT INTO orders
            (order_number, user_id, payment_id,
             shipping_name, shipping_email, shipping_phone, shipping_address, shipping_address2,
             shipping_city, shipping_postcode, shipping_country,
             subtotal, tax, shipping, total, status)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
            RETURNING id, created_at`

		o := &model.Order{
			Number:           number,
			UserID:           userID,
			PaymentID:        payment.ID,
			ShippingName:     customer.Name,
			ShippingEmail:    customer.Email,
			ShippingPhone:    customer.Phone,
			ShippingAddress:  customer.Address,
			ShippingAddress2: customer.Address2,
			ShippingCity:     customer.City,
			ShippingPostcode: customer.Postcode,
			ShippingCountry:  customer.Country,
			Subtotal:         cart.Subtotal,
			Tax:              cart.Tax,
			Shipping:         cart.Shipping,
			Total:            cart.Total,
			Status:           model.OrderStatusConfirmed,
		}

		err = tx.QueryRow(ctx, insertOrder,
			o.Number, o.UserID, o.PaymentID,
			o.ShippingName, o.ShippingEmail, o.ShippingPhone, o.ShippingAddress, o.ShippingAddress2,
			o.ShippingCity, o.ShippingPostcode, o.ShippingCountry,
			o.Subtotal.StringFixed(2), o.Tax.StringFixed(2), o.Shipping.StringFixed(2), o.Total.StringFixed(2),
			string(o.Status),
		).Scan(&o.ID, &o.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		const insertItem = `INSERT INTO order_items
            (order_id, product_id, product_name, unit_price, quantity, line_total)
            VALUES ($1,$2,$3,$4,$5,$6)`
		for _, line := range cart.Items {
			if _, err := tx.Exec(ctx, insertItem,
				o.ID, line.ProductID, line.Name,
				line.UnitPrice.StringFixed(2), line.Quantity, line.LineTotal().StringFixed(2),
			); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}

		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) insertPayment(ctx context.Context, tx pgx.Tx, cart *model.Cart, decision model.PaymentDecision) (*model.Payment, error) {
	cred := cart.Credential

	status := model.PaymentStatusFailed
	if decision.Accepted {
		status = model.PaymentStatusCompleted
	}

	payment := &model.Payment{
		CardType:       model.CardTypeFromNumber(cred.CardNumber),
		LastFourDigits: cred.LastFour(),
		ExpiryMonth:    cred.ExpiryMonth(),
		ExpiryYear:     cred.ExpiryYear(),
		TransactionID:  decision.TransactionID,
		Status:         status,
		Amount:         cart.Total,
	}

	const insertPayment = `INSERT INTO payments
        (card_type, last_four_digits, expiry_month, expiry_year, transaction_id, status, amount)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	err := tx.QueryRow(ctx, insertPayment,
		string(payment.CardType), payment.LastFourDigits, payment.ExpiryMonth, payment.ExpiryYear,
		payment.TransactionID, string(payment.Status), payment.Amount.StringFixed(2),
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	return payment, nil
}

const orderColumns = `id, order_number, user_id, payment_id,
    shipping_name, shipping_email, shipping_phone, shipping_address, shipping_address2,
    shipping_city, shipping_postcode, shipping_country,
    subtotal, tax, shipping, total, status, confirmation_sent, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var o model.Order
	var status string
	var subtotal, tax, shipping, total string
	err := row.Scan(
		&o.ID, &o.Number, &o.UserID, &o.PaymentID,
		&o.ShippingName, &o.ShippingEmail, &o.ShippingPhone, &o.ShippingAddress, &o.ShippingAddress2,
		&o.ShippingCity, &o.ShippingPostcode, &o.ShippingCountry,
		&subtotal, &tax, &shipping, &total, &status, &o.ConfirmationSent, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if o.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return nil, fmt.Errorf("parse subtotal: %w", err)
	}
	if o.Tax, err = decimal.NewFromString(tax); err != nil {
		return nil, fmt.Errorf("parse tax: %w", err)
	}
	if o.Shipping, err = decimal.NewFromString(shipping); err != nil {
		return nil, fmt.Errorf("parse shipping: %w", err)
	}
	if o.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	o.Status = model.OrderStatus(status)
	return &o, nil
}

func (r *orderRepository) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *orderRepository) SelectUnconfirmed(ctx context.Context, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE NOT confirmation_sent ORDER BY created_at LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ItemsByOrder(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	const query = `SELECT id, order_id, product_id, product_name, unit_price, quantity, line_total
                   FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		var unitPrice, lineTotal string
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &unitPrice, &item.Quantity, &lineTotal); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("parse unit price: %w", err)
		}
		if item.LineTotal, err = decimal.NewFromString(lineTotal); err != nil {
			return nil, fmt.Errorf("parse line total: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) MarkConfirmationSent(ctx context.Context, orderID int64) error {
	_, err := r.storage.pool.Exec(ctx, `UPDATE orders SET confirmation_sent=TRUE WHERE id=$1`, orderID)
	return err
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

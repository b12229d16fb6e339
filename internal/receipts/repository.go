package receipts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nccf-fellowship/portal-backend/internal/models"
)

var (
	// ErrNotFound means no receipt row exists for the ID.
	ErrNotFound = errors.New("receipt not found")
	// ErrAlreadyDecided means the receipt left pending earlier; verified and
	// rejected are terminal.
	ErrAlreadyDecided = errors.New("receipt already decided")
)

const receiptColumns = `id, profile_id, room_id, amount, payment_type, transaction_number,
	COALESCE(note,''), receipt_url, status, created_at, updated_at`

// Repository handles payment receipt persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a receipts repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanReceipt(row pgx.Row) (*models.Receipt, error) {
	var rec models.Receipt
	err := row.Scan(&rec.ID, &rec.ProfileID, &rec.RoomID, &rec.Amount, &rec.PaymentType,
		&rec.TransactionNumber, &rec.Note, &rec.ReceiptURL, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create inserts a claim with status pending.
func (r *Repository) Create(ctx context.Context, rec *models.Receipt) error {
	const q = `INSERT INTO payment_receipts
		(id, profile_id, room_id, amount, payment_type, transaction_number, note, receipt_url, status)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, status, created_at, updated_at`
	rec.Status = models.ReceiptStatusPending
	return r.pool.QueryRow(ctx, q, rec.ProfileID, rec.RoomID, rec.Amount, rec.PaymentType,
		rec.TransactionNumber, rec.Note, rec.ReceiptURL, rec.Status).
		Scan(&rec.ID, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt)
}

// List returns receipts newest-first, optionally filtered by status.
func (r *Repository) List(ctx context.Context, status string) ([]models.Receipt, error) {
	q := `SELECT ` + receiptColumns + ` FROM payment_receipts ORDER BY created_at DESC`
	args := []any{}
	if status != "" {
		q = `SELECT ` + receiptColumns + ` FROM payment_receipts WHERE status = $1 ORDER BY created_at DESC`
		args = append(args, status)
	}
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Receipt
	for rows.Next() {
		rec, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *rec)
	}
	return list, rows.Err()
}

// ListByProfile returns a member's own receipts newest-first.
func (r *Repository) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]models.Receipt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+receiptColumns+` FROM payment_receipts WHERE profile_id = $1 ORDER BY created_at DESC`,
		profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Receipt
	for rows.Next() {
		rec, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *rec)
	}
	return list, rows.Err()
}

// Decide transitions a pending receipt to verified or rejected. The status
// guard lives in the WHERE clause so the one-way invariant holds even under
// concurrent admin decisions: exactly one update wins, the rest see
// ErrAlreadyDecided.
func (r *Repository) Decide(ctx context.Context, id uuid.UUID, status string) (*models.Receipt, error) {
	const q = `UPDATE payment_receipts SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + receiptColumns
	rec, err := scanReceipt(r.pool.QueryRow(ctx, q, id, status))
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var current string
	err = r.pool.QueryRow(ctx, `SELECT status FROM payment_receipts WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return nil, ErrAlreadyDecided
}

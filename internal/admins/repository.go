package admins

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nccf-fellowship/portal-backend/internal/models"
)

// Repository handles admin grant persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an admins repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// HasGrant reports whether the profile has an admin row. Row presence is the
// sole admin predicate.
func (r *Repository) HasGrant(ctx context.Context, profileID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM admins WHERE id = $1)`, profileID).
		Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Grant inserts an admin row for the profile. Returns false when the profile
// was already an admin.
func (r *Repository) Grant(ctx context.Context, profileID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO admins (id, role) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
		profileID, models.AdminRole)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// List returns all admin grants.
func (r *Repository) List(ctx context.Context) ([]models.AdminGrant, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, role, created_at FROM admins ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.AdminGrant
	for rows.Next() {
		var g models.AdminGrant
		if err := rows.Scan(&g.ID, &g.Role, &g.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

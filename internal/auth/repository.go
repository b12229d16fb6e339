package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nccf-fellowship/portal-backend/internal/models"
)

const profileColumns = `id, email, password_hash, name,
	COALESCE(username,''), COALESCE(bio,''), COALESCE(avatar_url,''), COALESCE(gender,''),
	COALESCE(batch,''), COALESCE(state_code,''), COALESCE(location,''), COALESCE(phone,''),
	created_at, updated_at`

// Repository handles profile persistence for the credentials side of auth.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanProfile(row interface{ Scan(...any) error }) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.Name,
		&p.Username, &p.Bio, &p.AvatarURL, &p.Gender,
		&p.Batch, &p.StateCode, &p.Location, &p.Phone,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID returns a profile by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
}

// GetByEmail returns a profile by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE email = $1`, email))
}

// Create inserts a new profile at registration. Identity and profile are one
// row: completing sign-up is what makes the profile exist.
func (r *Repository) Create(ctx context.Context, email, passwordHash, name string) (*models.Profile, error) {
	const q = `INSERT INTO profiles (email, password_hash, name)
		VALUES ($1, $2, $3)
		RETURNING ` + profileColumns
	return scanProfile(r.pool.QueryRow(ctx, q, email, passwordHash, name))
}

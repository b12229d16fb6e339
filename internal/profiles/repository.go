package profiles

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nccf-fellowship/portal-backend/internal/models"
)

// Repository handles profile reads and updates.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a profiles repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// UpdateParams are the member-editable profile fields.
type UpdateParams struct {
	Name      string
	Username  string
	Bio       string
	Gender    string
	Batch     string
	StateCode string
	Location  string
	Phone     string
}

// GetByID returns a public profile by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.ProfilePublic, error) {
	const q = `SELECT id, email, name,
		COALESCE(username,''), COALESCE(bio,''), COALESCE(avatar_url,''), COALESCE(gender,''),
		COALESCE(batch,''), COALESCE(state_code,''), COALESCE(location,''), COALESCE(phone,''),
		created_at
		FROM profiles WHERE id = $1`
	var p models.ProfilePublic
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Email, &p.Name,
		&p.Username, &p.Bio, &p.AvatarURL, &p.Gender,
		&p.Batch, &p.StateCode, &p.Location, &p.Phone, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update writes the member-editable fields.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*models.ProfilePublic, error) {
	const q = `UPDATE profiles SET
		name = $2,
		username = NULLIF($3,''),
		bio = NULLIF($4,''),
		gender = NULLIF($5,''),
		batch = NULLIF($6,''),
		state_code = NULLIF($7,''),
		location = NULLIF($8,''),
		phone = NULLIF($9,''),
		updated_at = NOW()
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, q, id, params.Name, params.Username, params.Bio,
		params.Gender, params.Batch, params.StateCode, params.Location, params.Phone)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// SetAvatarURL records the stored avatar location.
func (r *Repository) SetAvatarURL(ctx context.Context, id uuid.UUID, url string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE profiles SET avatar_url = $2, updated_at = NOW() WHERE id = $1`, id, url)
	return err
}

// Exists reports whether a profile row exists.
func (r *Repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM profiles WHERE id = $1)`, id).
		Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// List returns all profiles for the admin user list, ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.ProfilePublic, error) {
	const q = `SELECT id, email, name,
		COALESCE(username,''), COALESCE(bio,''), COALESCE(avatar_url,''), COALESCE(gender,''),
		COALESCE(batch,''), COALESCE(state_code,''), COALESCE(location,''), COALESCE(phone,''),
		created_at
		FROM profiles ORDER BY name, email`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.ProfilePublic
	for rows.Next() {
		var p models.ProfilePublic
		if err := rows.Scan(&p.ID, &p.Email, &p.Name,
			&p.Username, &p.Bio, &p.AvatarURL, &p.Gender,
			&p.Batch, &p.StateCode, &p.Location, &p.Phone, &p.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

package rooms

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nccf-fellowship/portal-backend/internal/models"
)

// Repository handles room and room membership persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a rooms repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a room.
func (r *Repository) Create(ctx context.Context, room *models.Room) error {
	const q = `INSERT INTO rooms (id, name) VALUES (gen_random_uuid(), $1)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q, room.Name).Scan(&room.ID, &room.CreatedAt)
}

// List returns all rooms ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Room, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at FROM rooms ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Room
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, room)
	}
	return list, rows.Err()
}

// GetByID returns a room by ID, or nil when it does not exist.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	var room models.Room
	err := r.pool.QueryRow(ctx, `SELECT id, name, created_at FROM rooms WHERE id = $1`, id).
		Scan(&room.ID, &room.Name, &room.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListMembers returns the roster for a room, joined with profile display
// fields, ordered by join time.
func (r *Repository) ListMembers(ctx context.Context, roomID uuid.UUID) ([]models.RoomMemberDetail, error) {
	const q = `SELECT rm.profile_id, p.name, COALESCE(p.username,''), COALESCE(p.avatar_url,''), rm.joined_at
		FROM room_members rm
		INNER JOIN profiles p ON p.id = rm.profile_id
		WHERE rm.room_id = $1
		ORDER BY rm.joined_at`
	rows, err := r.pool.Query(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.RoomMemberDetail
	for rows.Next() {
		var m models.RoomMemberDetail
		if err := rows.Scan(&m.ProfileID, &m.Name, &m.Username, &m.AvatarURL, &m.JoinedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Assign places a profile in a room, replacing any previous assignment. The
// primary key on profile_id keeps the one-room-per-profile cardinality.
func (r *Repository) Assign(ctx context.Context, profileID, roomID uuid.UUID) error {
	const q = `INSERT INTO room_members (profile_id, room_id)
		VALUES ($1, $2)
		ON CONFLICT (profile_id) DO UPDATE SET room_id = EXCLUDED.room_id, joined_at = NOW()`
	_, err := r.pool.Exec(ctx, q, profileID, roomID)
	return err
}

// RoomIDsForProfile returns the room IDs the profile belongs to. With the
// current schema this is zero or one row, but callers treat it as a set.
func (r *Repository) RoomIDsForProfile(ctx context.Context, profileID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT room_id FROM room_members WHERE profile_id = $1`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MembershipFor returns the profile's membership, or nil when the profile
// has no room assignment.
func (r *Repository) MembershipFor(ctx context.Context, profileID uuid.UUID) (*models.RoomMember, error) {
	var m models.RoomMember
	err := r.pool.QueryRow(ctx,
		`SELECT profile_id, room_id, joined_at FROM room_members WHERE profile_id = $1`, profileID).
		Scan(&m.ProfileID, &m.RoomID, &m.JoinedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

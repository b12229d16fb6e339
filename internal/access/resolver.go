// Package access derives what a signed-in profile may see: whether it holds
// an admin grant and which rooms it belongs to. Lookup failures degrade to
// least privilege so a backend hiccup never escalates or crashes a request.
package access

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nccf-fellowship/portal-backend/internal/models"
)

// AdminStore looks up admin grants.
type AdminStore interface {
	HasGrant(ctx context.Context, profileID uuid.UUID) (bool, error)
}

// MembershipStore looks up room memberships.
type MembershipStore interface {
	RoomIDsForProfile(ctx context.Context, profileID uuid.UUID) ([]uuid.UUID, error)
}

// Grant is the resolved authorization view for one profile.
type Grant struct {
	IsAdmin       bool
	MemberRoomIDs map[uuid.UUID]struct{}
}

// CanViewRoom reports whether the grant allows viewing the given room.
func (g Grant) CanViewRoom(roomID uuid.UUID) bool {
	if g.IsAdmin {
		return true
	}
	_, ok := g.MemberRoomIDs[roomID]
	return ok
}

// VisibleRooms filters all rooms down to those the grant may see: admins see
// everything, members see the intersection with their memberships.
func (g Grant) VisibleRooms(all []models.Room) []models.Room {
	if g.IsAdmin {
		return all
	}
	visible := make([]models.Room, 0, len(g.MemberRoomIDs))
	for _, room := range all {
		if _, ok := g.MemberRoomIDs[room.ID]; ok {
			visible = append(visible, room)
		}
	}
	return visible
}

// Resolver computes grants from the admin and membership stores.
type Resolver struct {
	admins  AdminStore
	members MembershipStore
	logger  *zap.Logger
}

// NewResolver creates an access resolver.
func NewResolver(admins AdminStore, members MembershipStore, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{admins: admins, members: members, logger: logger}
}

// Resolve returns the grant for a profile. uuid.Nil means unauthenticated
// and returns the empty grant without touching the stores. The two lookups
// are pure reads; calling Resolve repeatedly is safe and each call reflects
// the current grant and membership rows.
func (r *Resolver) Resolve(ctx context.Context, profileID uuid.UUID) Grant {
	grant := Grant{MemberRoomIDs: make(map[uuid.UUID]struct{})}
	if profileID == uuid.Nil {
		return grant
	}

	isAdmin, err := r.admins.HasGrant(ctx, profileID)
	if err != nil {
		r.logger.Warn("admin grant lookup failed, treating as non-admin",
			zap.String("profile_id", profileID.String()), zap.Error(err))
	} else {
		grant.IsAdmin = isAdmin
	}

	roomIDs, err := r.members.RoomIDsForProfile(ctx, profileID)
	if err != nil {
		r.logger.Warn("membership lookup failed, treating as no memberships",
			zap.String("profile_id", profileID.String()), zap.Error(err))
		return grant
	}
	for _, id := range roomIDs {
		grant.MemberRoomIDs[id] = struct{}{}
	}
	return grant
}

// IsAdmin reports whether the profile holds an admin grant. Used by the
// admin-only middleware.
func (r *Resolver) IsAdmin(ctx context.Context, profileID uuid.UUID) (bool, error) {
	if profileID == uuid.Nil {
		return false, nil
	}
	return r.admins.HasGrant(ctx, profileID)
}

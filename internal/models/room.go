package models

import (
	"time"

	"github.com/google/uuid"
)

// Room is a fellowship space members can be assigned to.
type Room struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomMember links a profile to its room. A profile holds at most one
// membership; assignment replaces any previous room.
type RoomMember struct {
	ProfileID uuid.UUID `json:"profile_id"`
	RoomID    uuid.UUID `json:"room_id"`
	JoinedAt  time.Time `json:"joined_at"`
}

// RoomMemberDetail is a membership joined with profile display fields,
// for the room roster view.
type RoomMemberDetail struct {
	ProfileID uuid.UUID `json:"profile_id"`
	Name      string    `json:"name"`
	Username  string    `json:"username,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	JoinedAt  time.Time `json:"joined_at"`
}

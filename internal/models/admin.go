package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminRole is the role stored on an admin grant.
const AdminRole = "admin"

// AdminGrant confers administrative privilege on a profile. Presence of a
// row is the sole admin predicate; absence means ordinary member.
type AdminGrant struct {
	ID        uuid.UUID `json:"id"` // profile id
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification kinds recorded for members.
const (
	NotificationReceiptVerified = "receipt_verified"
	NotificationReceiptRejected = "receipt_rejected"
)

// Notification is a message recorded for a member, e.g. the outcome of a
// receipt adjudication.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	ProfileID uuid.UUID `json:"profile_id"`
	ReceiptID uuid.UUID `json:"receipt_id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

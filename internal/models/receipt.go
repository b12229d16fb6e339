package models

import (
	"time"

	"github.com/google/uuid"
)

// ReceiptStatus is the adjudication state of a payment receipt.
// Transitions are one-way: pending → verified or pending → rejected.
const (
	ReceiptStatusPending  = "pending"
	ReceiptStatusVerified = "verified"
	ReceiptStatusRejected = "rejected"
)

// Payment categories accepted on submission.
const (
	PaymentTypeDownload            = "download"
	PaymentTypeSkillAcquisition    = "skill_acquisition"
	PaymentTypeProjectContribution = "project_contribution"
	PaymentTypeOther               = "other"
)

// ValidPaymentType reports whether t is one of the accepted categories.
func ValidPaymentType(t string) bool {
	switch t {
	case PaymentTypeDownload, PaymentTypeSkillAcquisition, PaymentTypeProjectContribution, PaymentTypeOther:
		return true
	}
	return false
}

// Receipt is a submitted payment-proof claim awaiting admin adjudication.
type Receipt struct {
	ID                uuid.UUID `json:"id"`
	ProfileID         uuid.UUID `json:"profile_id"`
	RoomID            uuid.UUID `json:"room_id"`
	Amount            float64   `json:"amount"`
	PaymentType       string    `json:"payment_type"`
	TransactionNumber string    `json:"transaction_number"`
	Note              string    `json:"note"`
	ReceiptURL        string    `json:"receipt_url"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

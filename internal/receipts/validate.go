package receipts

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/nccf-fellowship/portal-backend/internal/models"
	"github.com/nccf-fellowship/portal-backend/pkg/storage"
)

// SubmissionInput is the raw multipart form content of a claim submission.
type SubmissionInput struct {
	Amount            string
	PaymentType       string
	TransactionNumber string
	Note              string
	HasFile           bool
	FileName          string
	ContentType       string
	FileSize          int64
}

// Validate checks a submission before any storage or database call and
// returns the parsed amount. Errors carry user-visible messages.
func (in SubmissionInput) Validate(maxFileSize int64) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(in.Amount), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, errors.New("amount must be a number")
	}
	if amount <= 0 {
		return 0, errors.New("amount must be greater than zero")
	}
	if !models.ValidPaymentType(in.PaymentType) {
		return 0, errors.New("invalid payment type")
	}
	if strings.TrimSpace(in.TransactionNumber) == "" {
		return 0, errors.New("transaction number required")
	}
	if strings.TrimSpace(in.Note) == "" {
		return 0, errors.New("note required")
	}
	if !in.HasFile {
		return 0, errors.New("proof of payment (receipt file) required")
	}
	if in.FileSize > maxFileSize {
		return 0, errors.New("receipt file too large")
	}
	if !storage.ValidReceiptFileType(in.ContentType, in.FileName) {
		return 0, errors.New("receipt must be an image or PDF")
	}
	return amount, nil
}

package receipts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nccf-fellowship/portal-backend/internal/models"
)

const testMaxFileSize = 10 * 1024 * 1024

func validInput() SubmissionInput {
	return SubmissionInput{
		Amount:            "5000",
		PaymentType:       models.PaymentTypeDownload,
		TransactionNumber: "TXN123",
		Note:              "dues",
		HasFile:           true,
		FileName:          "receipt.jpg",
		ContentType:       "image/jpeg",
		FileSize:          2048,
	}
}

func TestValidateAcceptsCompleteSubmission(t *testing.T) {
	amount, err := validInput().Validate(testMaxFileSize)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, amount)
}

func TestValidateRejectsBadSubmissions(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SubmissionInput)
		wantErr string
	}{
		{
			name:    "non-numeric amount",
			mutate:  func(in *SubmissionInput) { in.Amount = "abc" },
			wantErr: "amount must be a number",
		},
		{
			name:    "empty amount",
			mutate:  func(in *SubmissionInput) { in.Amount = "" },
			wantErr: "amount must be a number",
		},
		{
			name:    "negative amount",
			mutate:  func(in *SubmissionInput) { in.Amount = "-5" },
			wantErr: "amount must be greater than zero",
		},
		{
			name:    "zero amount",
			mutate:  func(in *SubmissionInput) { in.Amount = "0" },
			wantErr: "amount must be greater than zero",
		},
		{
			name:    "unknown payment type",
			mutate:  func(in *SubmissionInput) { in.PaymentType = "bribe" },
			wantErr: "invalid payment type",
		},
		{
			name:    "blank transaction number",
			mutate:  func(in *SubmissionInput) { in.TransactionNumber = "   " },
			wantErr: "transaction number required",
		},
		{
			name:    "blank note",
			mutate:  func(in *SubmissionInput) { in.Note = "" },
			wantErr: "note required",
		},
		{
			name:    "missing file",
			mutate:  func(in *SubmissionInput) { in.HasFile = false },
			wantErr: "proof of payment (receipt file) required",
		},
		{
			name:    "oversized file",
			mutate:  func(in *SubmissionInput) { in.FileSize = testMaxFileSize + 1 },
			wantErr: "receipt file too large",
		},
		{
			name: "wrong file type",
			mutate: func(in *SubmissionInput) {
				in.FileName = "receipt.exe"
				in.ContentType = "application/octet-stream"
			},
			wantErr: "receipt must be an image or PDF",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := in.Validate(testMaxFileSize)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestValidateAcceptsPDFByExtension(t *testing.T) {
	in := validInput()
	in.FileName = "receipt.pdf"
	in.ContentType = "" // browser omitted the content type
	_, err := in.Validate(testMaxFileSize)
	assert.NoError(t, err)
}

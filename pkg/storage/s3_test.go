package storage

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidReceiptFileType(t *testing.T) {
	tests := []struct {
		contentType string
		filename    string
		want        bool
	}{
		{"image/jpeg", "receipt.jpg", true},
		{"image/png", "anything", true},
		{"application/pdf", "statement.pdf", true},
		{"application/octet-stream", "receipt.jpg", true}, // extension rescues a generic type
		{"", "receipt.pdf", true},
		{"application/octet-stream", "receipt.exe", false},
		{"text/plain", "notes.txt", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.contentType+"/"+tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidReceiptFileType(tt.contentType, tt.filename))
		})
	}
}

func TestValidAvatarFileType(t *testing.T) {
	assert.True(t, ValidAvatarFileType("image/png", "me.png"))
	assert.True(t, ValidAvatarFileType("", "me.webp"))
	assert.False(t, ValidAvatarFileType("application/pdf", "me.pdf"))
	assert.False(t, ValidAvatarFileType("", "me.svg"))
}

func TestContentTypeForFilename(t *testing.T) {
	assert.Equal(t, "image/jpeg", ContentTypeForFilename("a.JPG"))
	assert.Equal(t, "application/pdf", ContentTypeForFilename("a.pdf"))
	assert.Equal(t, "application/octet-stream", ContentTypeForFilename("a.bin"))
}

func TestReceiptKey(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	assert.Equal(t, "receipts/1700000000000_proof.pdf", ReceiptKey(now, "proof.pdf"))
	// Path components in the client-supplied name are stripped.
	assert.Equal(t, "receipts/1700000000000_proof.pdf", ReceiptKey(now, "../../proof.pdf"))
}

func TestAvatarKey(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	id := "3b9f8a14-0000-0000-0000-000000000000"
	assert.Equal(t, fmt.Sprintf("avatars/%s-1700000000000.png", id), AvatarKey(id, now, "selfie.PNG"))
}

func TestPublicObjectURL(t *testing.T) {
	s := &S3{cfg: S3Config{UploadsBucket: "portal-uploads", Region: "eu-west-2"}}
	assert.Equal(t,
		"https://portal-uploads.s3.eu-west-2.amazonaws.com/receipts/1_a.jpg",
		s.PublicObjectURL("receipts/1_a.jpg"))
}

func TestPresignExpireDefault(t *testing.T) {
	s := &S3{cfg: S3Config{}}
	assert.Equal(t, 15*time.Minute, s.PresignExpire())

	s = &S3{cfg: S3Config{PresignExpireMinutes: 60}}
	assert.Equal(t, time.Hour, s.PresignExpire())
}

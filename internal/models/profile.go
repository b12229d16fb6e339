package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a registered member. The row doubles as the auth identity:
// a profile exists exactly when registration has completed.
type Profile struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Username     string    `json:"username,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	Batch        string    `json:"batch,omitempty"`
	StateCode    string    `json:"state_code,omitempty"`
	Location     string    `json:"location,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfilePublic is Profile without credentials for API responses.
type ProfilePublic struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Username  string    `json:"username,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	Batch     string    `json:"batch,omitempty"`
	StateCode string    `json:"state_code,omitempty"`
	Location  string    `json:"location,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToPublic converts Profile to ProfilePublic.
func (p *Profile) ToPublic() ProfilePublic {
	return ProfilePublic{
		ID:        p.ID,
		Email:     p.Email,
		Name:      p.Name,
		Username:  p.Username,
		Bio:       p.Bio,
		AvatarURL: p.AvatarURL,
		Gender:    p.Gender,
		Batch:     p.Batch,
		StateCode: p.StateCode,
		Location:  p.Location,
		Phone:     p.Phone,
		CreatedAt: p.CreatedAt,
	}
}

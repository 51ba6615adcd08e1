package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an authenticated account. Every business row in the
// system belongs to exactly one user.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Email     string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name      string         `gorm:"size:255" json:"name,omitempty"`
	Password  string         `gorm:"size:255;not null" json:"-"` // Hashed, never exposed in JSON
}

// UserProfile holds the freelancer's company identity printed on invoices.
// One row per user, upserted from the settings page.
type UserProfile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	CompanyName    string `gorm:"size:255" json:"company_name,omitempty"`
	CompanyTagline string `gorm:"size:255" json:"company_tagline,omitempty"`
	CompanyEmail   string `gorm:"size:255" json:"company_email,omitempty"`
	CompanyPhone   string `gorm:"size:50" json:"company_phone,omitempty"`
	CompanyAddress string `gorm:"size:500" json:"company_address,omitempty"`
	CompanyWebsite string `gorm:"size:255" json:"company_website,omitempty"`
	CompanySIRET   string `gorm:"size:14" json:"company_siret,omitempty"`
}

// GetUserID implements the Ownable interface.
func (p *UserProfile) GetUserID() uint {
	return p.UserID
}

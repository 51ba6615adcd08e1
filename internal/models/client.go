package models

import (
	"time"

	"gorm.io/gorm"
)

// Client represents a customer the freelancer works with.
// Projects and invoices reference clients through an optional weak
// reference that is nulled when the client is deleted.
type Client struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Name    string `gorm:"size:255;not null" json:"name"`
	Company string `gorm:"size:255" json:"company,omitempty"`
	Email   string `gorm:"size:255" json:"email,omitempty"`
	Phone   string `gorm:"size:50" json:"phone,omitempty"`
	Address string `gorm:"size:500" json:"address,omitempty"`
	Notes   string `gorm:"type:text" json:"notes,omitempty"`
}

// GetUserID implements the Ownable interface.
func (c *Client) GetUserID() uint {
	return c.UserID
}

// DisplayName returns the company name when set, else the contact name.
func (c *Client) DisplayName() string {
	if c.Company != "" {
		return c.Company
	}
	return c.Name
}

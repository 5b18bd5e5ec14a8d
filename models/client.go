package models

import "time"

// Client is a customer assignable to orders ("employee").
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AccountID uint      `gorm:"not null;index" json:"account_id"`
	Account   Account   `gorm:"foreignKey:AccountID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	FirstName string    `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName  string    `gorm:"type:varchar(255);not null" json:"last_name"`
	Orders    []Order   `gorm:"many2many:assignments;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"orders,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName is the display name used in ICS descriptions and reports.
func (cl Client) FullName() string {
	return cl.FirstName + " " + cl.LastName
}

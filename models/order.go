package models

import "time"

// Order status values (kept in Italian, they are stored as-is).
const (
	StatusTodo       = "Da Fare"
	StatusInProgress = "In Corso"
	StatusDone       = "Fatto"

	PaymentUnpaid = "Da Pagare"
	PaymentPaid   = "Pagato"
)

// ValidStatus reports whether s is one of the three order statuses.
func ValidStatus(s string) bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

// ValidPaymentStatus reports whether s is one of the two payment states.
func ValidPaymentStatus(s string) bool {
	return s == PaymentUnpaid || s == PaymentPaid
}

// Order is one schedulable cleaning job ("apartment").
// CleaningDate and StartTime are plain sortable text (YYYY-MM-DD / HH:MM),
// never timezone-aware timestamps.
type Order struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AccountID     uint      `gorm:"not null;index" json:"account_id"`
	Account       Account   `gorm:"foreignKey:AccountID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	CleaningDate  string    `gorm:"type:varchar(10);not null;index" json:"cleaning_date"`
	StartTime     *string   `gorm:"type:varchar(5)" json:"start_time,omitempty"`
	Status        string    `gorm:"type:varchar(20);not null;default:'Da Fare'" json:"status"`
	PaymentStatus string    `gorm:"type:varchar(20);not null;default:'Da Pagare'" json:"payment_status"`
	Price         *float64  `gorm:"type:decimal(10,2)" json:"price,omitempty"`
	Notes         *string   `gorm:"type:text" json:"notes,omitempty"`
	IsFavorite    bool      `gorm:"not null;default:false" json:"is_favorite"`
	Employees     []Client  `gorm:"many2many:assignments;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"employees"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

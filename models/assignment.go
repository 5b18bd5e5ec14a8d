package models

import "time"

// Assignment is the join row between an order and a client, registered as a
// custom join table so the pair is the primary key and deletions on either
// side cascade.
type Assignment struct {
	OrderID   uint      `gorm:"primaryKey" json:"order_id"`
	ClientID  uint      `gorm:"primaryKey" json:"client_id"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

const (
	PaymentPending  = "pending"
	PaymentAccepted = "accepted"
	PaymentRejected = "rejected"
)

// PaymentIntent records what a booking owes at the price it was booked for.
// Settlement happens in the external gateway; the core only tracks the enum.
type PaymentIntent struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	BookingID uint   `gorm:"uniqueIndex;not null" json:"booking_id"`
	Reference string `gorm:"size:64;uniqueIndex;not null" json:"reference"`

	Amount float64 `json:"amount"`
	Method string  `gorm:"size:30" json:"method"`
	Status string  `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

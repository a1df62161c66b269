package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SlotID uint `gorm:"index;not null" json:"slot_id"`
	Slot   Slot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"slot"`

	OwnerID uint `gorm:"index;not null" json:"owner_id"`
	Owner   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"owner"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Dogs []Dog `gorm:"many2many:booking_dogs;" json:"dogs"`

	PickupAddress string `gorm:"size:255;not null" json:"pickup_address"`
	Note          string `gorm:"size:255" json:"note"`

	// Snapshot of the slot schedule at booking time; slot edits made before
	// the booking existed never retroactively move a booked walk.
	WalkStartTime time.Time `json:"walk_start_time"`
	DurationMin   int       `json:"duration_min"`

	PaymentIntent *PaymentIntent `json:"payment_intent,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at"`
	FinishedAt  *time.Time `json:"finished_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) WalkEndTime() time.Time {
	return b.WalkStartTime.Add(time.Duration(b.DurationMin) * time.Minute)
}

package models

import "time"

const (
	WalkTypeGroup      = "group"
	WalkTypeIndividual = "individual"
)

const DefaultSlotCapacity = 5

type Slot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WalkerID uint `gorm:"index;not null" json:"walker_id"`
	Walker   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"walker"`

	WalkType    string  `gorm:"size:20;not null" json:"walk_type"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`

	// Always stored in UTC.
	StartTime time.Time `gorm:"index" json:"start_time"`

	Location    string `gorm:"size:255" json:"location"`
	MaxCapacity int    `gorm:"default:5" json:"max_capacity"`

	// Mirror event in the external calendar, owned by the sync adapter.
	ExternalEventID string `gorm:"size:255" json:"external_event_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Slot) EndTime() time.Time {
	return s.StartTime.Add(time.Duration(s.DurationMin) * time.Minute)
}

package models

import "time"

type Dog struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OwnerID uint `gorm:"index;not null" json:"owner_id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Breed    string `gorm:"size:100" json:"breed"`
	Size     string `gorm:"size:20" json:"size"`
	Note     string `gorm:"size:255" json:"note"`
	PhotoURL string `gorm:"size:255" json:"photo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

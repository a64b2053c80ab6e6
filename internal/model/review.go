package model

import "time"

// Review is a user-authored comment on an inventory item.
type Review struct {
	ID        uint      `json:"review_id" gorm:"primaryKey"`
	VehicleID uint      `json:"inv_id" gorm:"not null;index"`
	AccountID uint      `json:"account_id" gorm:"not null;index"`
	Text      string    `json:"review_text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"review_date"`
	UpdatedAt time.Time `json:"updated_at"`

	Account Account `json:"account,omitempty" gorm:"foreignKey:AccountID"`
	Vehicle Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
}

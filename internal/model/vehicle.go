package model

import "time"

// Classification groups vehicles into nav categories (SUV, Truck, ...).
type Classification struct {
	ID        uint      `json:"classification_id" gorm:"primaryKey"`
	Name      string    `json:"classification_name" gorm:"uniqueIndex;size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// Vehicle is a single inventory item.
type Vehicle struct {
	ID               uint      `json:"inv_id" gorm:"primaryKey"`
	ClassificationID uint      `json:"classification_id" gorm:"not null;index"`
	Make             string    `json:"inv_make" gorm:"size:255;not null"`
	Model            string    `json:"inv_model" gorm:"size:255;not null"`
	Year             int       `json:"inv_year" gorm:"not null"`
	Description      string    `json:"inv_description" gorm:"type:text"`
	Image            string    `json:"inv_image" gorm:"size:255"`
	Thumbnail        string    `json:"inv_thumbnail" gorm:"size:255"`
	Price            int64     `json:"inv_price" gorm:"not null"`
	Miles            int64     `json:"inv_miles"`
	Color            string    `json:"inv_color" gorm:"size:100"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Classification Classification `json:"classification,omitempty" gorm:"foreignKey:ClassificationID"`
}

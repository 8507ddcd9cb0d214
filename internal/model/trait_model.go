package model

import "time"

// Trait is one row of the trait registry. Key is the canonical lowercase
// identifier used inside candidate trait_results payloads.
type Trait struct {
	Key         string    `gorm:"type:text;primaryKey"`
	DisplayName string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Trait) TableName() string {
	return "traits"
}

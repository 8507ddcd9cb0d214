package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Candidate mirrors the assessment platform's user + latest-test-result view.
// TraitResults is a JSONB map keyed by trait key:
//
//	{"communication": {"score": 82.5, "percentile": 75}}
type Candidate struct {
	Id           uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string            `gorm:"type:text;not null;index"`
	Email        string            `gorm:"type:text;not null"`
	TraitResults datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt    time.Time         `gorm:"autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt    `gorm:"index"`
}

func (Candidate) TableName() string {
	return "candidates"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SearchLog is the audit record written for every processed search turn.
// Rows are inserted asynchronously by the audit consumer, never read on
// the request path.
type SearchLog struct {
	Id          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId   string            `gorm:"type:text;not null;index"`
	Query       string            `gorm:"type:text;not null"`
	Intent      string            `gorm:"type:text;not null;index"`
	SubIntent   string            `gorm:"type:text"`
	ParsedQuery datatypes.JSONMap `gorm:"type:jsonb"`
	ResultCount int               `gorm:"not null"`
	DurationMs  int64             `gorm:"not null"`
	CreatedAt   time.Time         `gorm:"autoCreateTime;index"`
}

func (SearchLog) TableName() string {
	return "search_logs"
}

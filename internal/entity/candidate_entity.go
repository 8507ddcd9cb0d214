package entity

import (
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	Id           uuid.UUID
	Name         string
	Email        string
	TraitResults map[string]TraitResult
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// AssessedTraitCount reports how many trait assessments the candidate has
// completed. Used for presence-based scoring when a query has no criteria.
func (c *Candidate) AssessedTraitCount() int {
	return len(c.TraitResults)
}

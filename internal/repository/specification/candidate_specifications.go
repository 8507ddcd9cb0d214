package specification

import (
	"gorm.io/gorm"
)

// ByCandidateName filters candidates by name (case-insensitive, partial)
type ByCandidateName struct {
	Name string
}

func (s ByCandidateName) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Name + "%"
	return db.Where("name ILIKE ?", pattern)
}

// HasAnyTrait keeps candidates whose trait_results JSONB contains at least
// one of the given trait keys. Loose on purpose: threshold and weighting
// happen in memory after retrieval, not in SQL.
type HasAnyTrait struct {
	Keys []string
}

func (s HasAnyTrait) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Keys) == 0 {
		return db
	}
	// jsonb_exists avoids the ?| operator, which collides with GORM's
	// placeholder syntax.
	cond := db.Session(&gorm.Session{NewDB: true})
	for _, key := range s.Keys {
		cond = cond.Or("jsonb_exists(trait_results, ?)", key)
	}
	return db.Where(cond)
}

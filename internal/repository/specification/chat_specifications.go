package specification

import (
	"gorm.io/gorm"
)

// MostRecentFirst orders chat sessions by last_updated descending, with the
// id as a deterministic tie-break.
type MostRecentFirst struct{}

func (s MostRecentFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("last_updated DESC").Order("id ASC")
}

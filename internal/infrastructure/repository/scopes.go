package repository

import (
	"time"

	"gorm.io/gorm"
)

// CreatedBetween returns a GORM scope that keeps rows whose created_at
// falls inside [start, end], bounds included.
func CreatedBetween(start, end time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("created_at >= ? AND created_at <= ?", start, end)
	}
}

// OldestFirst orders preloaded children by creation time.
func OldestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

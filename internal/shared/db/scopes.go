package db

import (
	"time"

	"gorm.io/gorm"
)

// Paginate applies skip/limit. A non-positive limit leaves the query unbounded.
func Paginate(skip, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if skip > 0 {
			db = db.Offset(skip)
		}
		if limit > 0 {
			db = db.Limit(limit)
		}
		return db
	}
}

// DateBetween bounds column by an inclusive [from, to] range. Nil ends are open.
//
//	db.Scopes(db.DateBetween("payment_date", from, to)).Find(&rows)
func DateBetween(column string, from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where(column+" >= ?", *from)
		}
		if to != nil {
			db = db.Where(column+" <= ?", *to)
		}
		return db
	}
}

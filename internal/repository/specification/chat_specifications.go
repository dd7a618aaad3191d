package specification

import "gorm.io/gorm"

type BySessionID struct {
	SessionID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type OrderByTimestamp struct {
	Descending bool
}

func (s OrderByTimestamp) Apply(db *gorm.DB) *gorm.DB {
	if s.Descending {
		return db.Order("timestamp DESC, id DESC")
	}
	return db.Order("timestamp ASC, id ASC")
}

type WithLimit struct {
	Limit int
}

func (s WithLimit) Apply(db *gorm.DB) *gorm.DB {
	if s.Limit <= 0 {
		return db
	}
	return db.Limit(s.Limit)
}

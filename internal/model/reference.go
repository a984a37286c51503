package model

import "github.com/google/uuid"

// Work is a catalogue entry of a kind of construction work (смета line basis).
type Work struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:512;not null"`
	Unit      string    `gorm:"size:32"`
	IsDeleted bool      `gorm:"not null;default:false"`
}

type Person struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName  string    `gorm:"size:256;not null"`
	Position  string    `gorm:"size:128"`
	IsDeleted bool      `gorm:"not null;default:false"`
}

// SiteObject is a construction site (объект строительства).
type SiteObject struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:512;not null"`
	Address   string    `gorm:"size:512"`
	IsDeleted bool      `gorm:"not null;default:false"`
}

type Organization struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"size:512;not null"`
	BIN          string    `gorm:"size:32"`
	HeadFullName string    `gorm:"size:256"`
	Address      string    `gorm:"size:512"`
	Phone        string    `gorm:"size:64"`
}

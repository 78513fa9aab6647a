package model

import (
	"time"

	"programpro_backend/internals/helpers/schema"
)

type ProgramModel struct {
	ID        int64      `gorm:"column:id;primaryKey" json:"id"`
	ChurchID  int64      `gorm:"column:church_id;not null" json:"church_id"`
	Title     string     `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Date      *time.Time `gorm:"column:date" json:"date"`
	Theme     *string    `gorm:"column:theme;type:varchar(255)" json:"theme"`
	IsActive  *bool      `gorm:"column:is_active" json:"is_active"`
	CreatedBy *int64     `gorm:"column:created_by" json:"created_by"`
	CreatedAt *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (ProgramModel) TableName() string {
	return "programs"
}

// ProgramsTable: is_active, created_by and updated_at arrived in a later
// migration and may be missing.
var ProgramsTable = schema.Table{
	Name:     "programs",
	Key:      "id",
	Minimal:  []string{"id", "church_id", "title"},
	Defaults: schema.Values{"is_active": true},
	Touch:    "updated_at",
}

// Writable program columns besides church_id.
var ProgramFields = []string{"title", "date", "theme", "is_active", "created_by"}

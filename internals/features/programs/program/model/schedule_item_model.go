package model

import (
	"time"

	"programpro_backend/internals/helpers/schema"
)

// Schedule item types. The column is free text; these are the ones the
// client renders specially.
const (
	ScheduleTypeWorship      = "worship"
	ScheduleTypeSermon       = "sermon"
	ScheduleTypeAnnouncement = "announcement"
	ScheduleTypeSpecial      = "special"
)

type ScheduleItemModel struct {
	ID              int64      `gorm:"column:id;primaryKey" json:"id"`
	ProgramID       int64      `gorm:"column:program_id;not null" json:"program_id"`
	Title           string     `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description     *string    `gorm:"column:description" json:"description"`
	StartTime       *string    `gorm:"column:start_time;type:varchar(16)" json:"start_time"`
	DurationMinutes *int       `gorm:"column:duration_minutes" json:"duration_minutes"`
	OrderIndex      *int       `gorm:"column:order_index" json:"order_index"`
	Type            *string    `gorm:"column:type;type:varchar(50)" json:"type"`
	CreatedAt       *time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ScheduleItemModel) TableName() string {
	return "schedule_items"
}

var ScheduleItemsTable = schema.Table{
	Name:     "schedule_items",
	Key:      "id",
	Minimal:  []string{"id", "program_id", "title"},
	Defaults: schema.Values{"order_index": 0, "type": ScheduleTypeWorship},
}

var ScheduleItemFields = []string{"description", "start_time", "duration_minutes", "order_index", "type"}

package model

import (
	"time"

	"programpro_backend/internals/helpers/schema"
)

type SpecialGuestModel struct {
	ID           int64      `gorm:"column:id;primaryKey" json:"id"`
	ProgramID    int64      `gorm:"column:program_id;not null" json:"program_id"`
	Name         string     `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Role         *string    `gorm:"column:role;type:varchar(255)" json:"role"`
	Description  *string    `gorm:"column:description" json:"description"`
	Bio          *string    `gorm:"column:bio" json:"bio"`
	PhotoURL     *string    `gorm:"column:photo_url;type:varchar(500)" json:"photo_url"`
	DisplayOrder *int       `gorm:"column:display_order" json:"display_order"`
	CreatedAt    *time.Time `gorm:"column:created_at" json:"created_at"`
}

func (SpecialGuestModel) TableName() string {
	return "special_guests"
}

var SpecialGuestsTable = schema.Table{
	Name:     "special_guests",
	Key:      "id",
	Minimal:  []string{"id", "program_id", "name"},
	Defaults: schema.Values{"display_order": 0},
}

var SpecialGuestFields = []string{"role", "description", "bio", "photo_url", "display_order"}

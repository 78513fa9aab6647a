package model

import (
	"time"

	"gorm.io/datatypes"

	"programpro_backend/internals/helpers/schema"
)

type ChurchModel struct {
	ID          int64          `gorm:"column:id;primaryKey" json:"id"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Address     *string        `gorm:"column:address" json:"address"`
	ShortName   *string        `gorm:"column:short_name" json:"short_name,omitempty"`
	Description *string        `gorm:"column:description" json:"description,omitempty"`
	ThemeConfig datatypes.JSON `gorm:"column:theme_config" json:"theme_config,omitempty"`
	CreatedAt   *time.Time     `gorm:"column:created_at" json:"created_at"`
}

func (ChurchModel) TableName() string {
	return "churches"
}

// Placeholder returned by the public info endpoint when no church exists.
func Placeholder() ChurchModel {
	return ChurchModel{ID: 0, Name: "Grace Community Church"}
}

// ChurchesTable: address and the branding columns arrived in later
// migrations and may be missing.
var ChurchesTable = schema.Table{
	Name:    "churches",
	Key:     "id",
	Minimal: []string{"id", "name"},
}

// ChurchColumns in read order.
var ChurchColumns = []string{"id", "name", "address", "short_name", "description", "theme_config", "created_at"}

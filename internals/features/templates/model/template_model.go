package model

import (
	"time"

	"gorm.io/datatypes"
)

type ProgramTemplateModel struct {
	ID        int64          `gorm:"column:id;primaryKey" json:"id"`
	ChurchID  *int64         `gorm:"column:church_id" json:"church_id"`
	Name      string         `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Content   datatypes.JSON `gorm:"column:content" json:"content"`
	CreatedAt *time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ProgramTemplateModel) TableName() string {
	return "program_templates"
}

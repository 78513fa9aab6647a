package dto

import (
	"gorm.io/datatypes"

	"programpro_backend/internals/helpers/dbtime"
)

type CreateTemplateRequest struct {
	Name    string         `json:"name" validate:"required,min=1,max=255"`
	Content datatypes.JSON `json:"content"`
}

type UpdateTemplateRequest struct {
	Name    *string        `json:"name" validate:"omitempty,min=1,max=255"`
	Content datatypes.JSON `json:"content"`
}

type FromProgramRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// ApplyTemplateRequest overrides the stored title and sets the date of the
// program created from a template.
type ApplyTemplateRequest struct {
	Title *string      `json:"title" validate:"omitempty,max=255"`
	Date  *dbtime.Date `json:"date"`
}

// HasContent: JSON null or an empty body leaves content unchanged.
func HasContent(c datatypes.JSON) bool {
	return len(c) > 0 && string(c) != "null"
}

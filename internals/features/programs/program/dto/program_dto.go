package dto

import (
	"programpro_backend/internals/features/programs/ordering"
	"programpro_backend/internals/features/programs/program/model"
	"programpro_backend/internals/helpers/dbtime"
)

const DefaultProgramTitle = "Untitled Program"

/* ===============================
   Program
=================================*/

type CreateProgramRequest struct {
	Title    string       `json:"title" validate:"required,min=1,max=255"`
	Date     *dbtime.Date `json:"date"`
	Theme    *string      `json:"theme" validate:"omitempty,max=255"`
	IsActive *bool        `json:"is_active"`
}

func (r CreateProgramRequest) Fields(createdBy int64) ordering.ProgramPatch {
	return ordering.ProgramPatch{
		"title":      r.Title,
		"date":       r.Date.Ptr(),
		"theme":      r.Theme,
		"is_active":  r.IsActive,
		"created_by": createdBy,
	}
}

// UpdateProgramRequest: absent fields keep their value.
type UpdateProgramRequest struct {
	Title    *string      `json:"title" validate:"omitempty,min=1,max=255"`
	Date     *dbtime.Date `json:"date"`
	Theme    *string      `json:"theme" validate:"omitempty,max=255"`
	IsActive *bool        `json:"is_active"`
}

func (r UpdateProgramRequest) Patch() ordering.ProgramPatch {
	return ordering.ProgramPatch{
		"title":     r.Title,
		"date":      r.Date.Ptr(),
		"theme":     r.Theme,
		"is_active": r.IsActive,
	}
}

type ProgramDetail struct {
	model.ProgramModel
	ScheduleItems []model.ScheduleItemModel `json:"schedule_items"`
	SpecialGuests []model.SpecialGuestModel `json:"special_guests"`
}

type ProgramListQuery struct {
	ChurchID *int64
	IsActive *bool
	Offset   int
	Limit    int
}

/* ===============================
   Children
=================================*/

type ScheduleItemRequest struct {
	Title           *string `json:"title" validate:"omitempty,max=255"`
	Description     *string `json:"description"`
	StartTime       *string `json:"start_time" validate:"omitempty,max=16"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,min=0"`
	OrderIndex      *int    `json:"order_index"`
	Type            *string `json:"type" validate:"omitempty,max=50"`
}

func (r ScheduleItemRequest) Draft() ordering.Draft {
	var start *string
	if r.StartTime != nil {
		s := dbtime.NormalizeStartTime(*r.StartTime)
		start = &s
	}
	return ordering.Draft{
		"title":            r.Title,
		"description":      r.Description,
		"start_time":       start,
		"duration_minutes": r.DurationMinutes,
		"order_index":      r.OrderIndex,
		"type":             r.Type,
	}
}

type SpecialGuestRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=255"`
	Role         *string `json:"role" validate:"omitempty,max=255"`
	Description  *string `json:"description"`
	Bio          *string `json:"bio"`
	PhotoURL     *string `json:"photo_url" validate:"omitempty,max=500"`
	DisplayOrder *int    `json:"display_order"`
}

func (r SpecialGuestRequest) Draft() ordering.Draft {
	return ordering.Draft{
		"name":          r.Name,
		"role":          r.Role,
		"description":   r.Description,
		"bio":           r.Bio,
		"photo_url":     r.PhotoURL,
		"display_order": r.DisplayOrder,
	}
}

// ReorderEntry accepts the generic "position" or the column name of
// either collection.
type ReorderEntry struct {
	ID           *int64 `json:"id"`
	Position     *int   `json:"position"`
	OrderIndex   *int   `json:"order_index"`
	DisplayOrder *int   `json:"display_order"`
}

type ReorderRequest struct {
	Items []ReorderEntry `json:"items" validate:"required"`
}

func (r ReorderRequest) Moves() []ordering.Move {
	out := make([]ordering.Move, 0, len(r.Items))
	for _, it := range r.Items {
		pos := it.Position
		if pos == nil {
			pos = it.OrderIndex
		}
		if pos == nil {
			pos = it.DisplayOrder
		}
		out = append(out, ordering.Move{ID: it.ID, Position: pos})
	}
	return out
}

type ReorderResponse[T any] struct {
	Items  []T                  `json:"items"`
	Report ordering.BatchReport `json:"report"`
}

/* ===============================
   Bulk
=================================*/

// BulkProgramRequest is the body of bulk-import and of PUT /:id/full.
// Children are kept loose so one bad entry cannot reject the batch.
type BulkProgramRequest struct {
	Title         *string               `json:"title" validate:"omitempty,max=255"`
	Date          *dbtime.Date          `json:"date"`
	Theme         *string               `json:"theme" validate:"omitempty,max=255"`
	IsActive      *bool                 `json:"is_active"`
	ScheduleItems []ScheduleItemRequest `json:"schedule_items"`
	SpecialGuests []SpecialGuestRequest `json:"special_guests"`
}

func (r BulkProgramRequest) Patch() ordering.ProgramPatch {
	return ordering.ProgramPatch{
		"title":     r.Title,
		"date":      r.Date.Ptr(),
		"theme":     r.Theme,
		"is_active": r.IsActive,
	}
}

func (r BulkProgramRequest) Drafts() (schedule, guests []ordering.Draft) {
	schedule = make([]ordering.Draft, 0, len(r.ScheduleItems))
	for _, it := range r.ScheduleItems {
		schedule = append(schedule, it.Draft())
	}
	guests = make([]ordering.Draft, 0, len(r.SpecialGuests))
	for _, g := range r.SpecialGuests {
		guests = append(guests, g.Draft())
	}
	return schedule, guests
}

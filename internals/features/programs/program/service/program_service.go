// Package service applies the church ownership rules around the program
// store: reads are public, every write is checked against the caller's
// church before it reaches the ordered collections.
package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"gorm.io/gorm"

	"programpro_backend/internals/features/programs/ordering"
	"programpro_backend/internals/features/programs/program/dto"
	"programpro_backend/internals/features/programs/program/model"
	"programpro_backend/internals/helpers/schema"
)

// Authorize checks that programID exists and belongs to churchID.
func Authorize(ctx context.Context, db *gorm.DB, programID, churchID int64) error {
	var owner sql.NullInt64
	err := db.WithContext(ctx).
		Raw(`SELECT church_id FROM programs WHERE id = ?`, programID).
		Row().Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ordering.ErrNotFound
	}
	if err != nil {
		return err
	}
	if !owner.Valid || owner.Int64 != churchID {
		return ordering.ErrForbidden
	}
	return nil
}

/* ===============================
   Reads
=================================*/

// ListPrograms: newest first. The is_active filter needs the column; on an
// older schema every program counts as active.
func ListPrograms(ctx context.Context, db *gorm.DB, q dto.ProgramListQuery) ([]model.ProgramModel, int64, error) {
	cols := schema.Probe(ctx, db, model.ProgramsTable.Name, model.ProgramsTable.Minimal...)

	base := db.WithContext(ctx).Model(&model.ProgramModel{})
	if q.ChurchID != nil {
		base = base.Where("church_id = ?", *q.ChurchID)
	}
	if q.IsActive != nil && cols.Has("is_active") {
		if *q.IsActive {
			base = base.Where("COALESCE(is_active, TRUE) = ?", true)
		} else {
			base = base.Where("is_active = ?", false)
		}
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	out := make([]model.ProgramModel, 0)
	err := base.Session(&gorm.Session{}).
		Order("date DESC").
		Order("created_at DESC").
		Order("id DESC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func loadDetail(ctx context.Context, db *gorm.DB, id int64) (*dto.ProgramDetail, error) {
	var p model.ProgramModel
	if err := db.WithContext(ctx).Take(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ordering.ErrNotFound
		}
		return nil, err
	}
	items, err := ordering.List(ctx, db, id, ordering.ScheduleItems)
	if err != nil {
		return nil, err
	}
	guests, err := ordering.List(ctx, db, id, ordering.SpecialGuests)
	if err != nil {
		return nil, err
	}
	return &dto.ProgramDetail{ProgramModel: p, ScheduleItems: items, SpecialGuests: guests}, nil
}

// GetProgram returns a program with both ordered collections.
func GetProgram(ctx context.Context, db *gorm.DB, id int64) (*dto.ProgramDetail, error) {
	return loadDetail(ctx, db, id)
}

/* ===============================
   Writes
=================================*/

func CreateProgram(ctx context.Context, db *gorm.DB, churchID, userID int64, req dto.CreateProgramRequest) (*model.ProgramModel, error) {
	var out model.ProgramModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := ordering.InsertProgram(ctx, tx, churchID, req.Fields(userID))
		if err != nil {
			return err
		}
		return tx.Take(&out, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func UpdateProgram(ctx context.Context, db *gorm.DB, churchID, id int64, req dto.UpdateProgramRequest) (*model.ProgramModel, error) {
	var out model.ProgramModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := Authorize(ctx, tx, id, churchID); err != nil {
			return err
		}
		if _, err := schema.Update(ctx, tx, model.ProgramsTable, schema.Where{"id": id}, req.Patch()); err != nil {
			return err
		}
		return tx.Take(&out, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProgram removes the children first; the schema has no cascades.
func DeleteProgram(ctx context.Context, db *gorm.DB, churchID, id int64) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := Authorize(ctx, tx, id, churchID); err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM schedule_items WHERE program_id = ?`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM special_guests WHERE program_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM programs WHERE id = ?`, id).Error
	})
}

// BulkImport creates a whole program in the caller's church.
func BulkImport(ctx context.Context, db *gorm.DB, churchID, userID int64, req dto.BulkProgramRequest) (*ordering.BulkResult, error) {
	fields := req.Patch()
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		fields["title"] = dto.DefaultProgramTitle
	}
	fields["created_by"] = userID
	schedule, guests := req.Drafts()
	return ordering.ImportProgram(ctx, db, churchID, fields, schedule, guests)
}

// ReplaceProgram is the "save everything" path of the editor.
func ReplaceProgram(ctx context.Context, db *gorm.DB, churchID, id int64, req dto.BulkProgramRequest) (*ordering.BulkResult, error) {
	owned := func(ctx context.Context, tx *gorm.DB) error {
		return Authorize(ctx, tx, id, churchID)
	}
	schedule, guests := req.Drafts()
	return ordering.BulkReplace(ctx, db, id, req.Patch(), schedule, guests, owned)
}

package ordering

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"programpro_backend/internals/features/programs/program/model"
	"programpro_backend/internals/helpers/schema"
)

// ProgramPatch holds the program columns a bulk save sets explicitly.
type ProgramPatch = schema.Values

// BulkResult is a program reloaded after a bulk write, with both ordered
// collections and what happened to each submitted child.
type BulkResult struct {
	Program       model.ProgramModel        `json:"program"`
	ScheduleItems []model.ScheduleItemModel `json:"schedule_items"`
	SpecialGuests []model.SpecialGuestModel `json:"special_guests"`
	Schedule      BatchReport               `json:"schedule_report"`
	Guests        BatchReport               `json:"guests_report"`
}

// Guard runs first inside a bulk write transaction; an error aborts it.
type Guard func(ctx context.Context, tx *gorm.DB) error

// BulkReplace swaps every child of a program for the submitted ones in one
// transaction. Guards run first, then program fields in patch are applied.
// Each child is inserted under its own savepoint: a failing child is logged,
// reported and skipped. When children were submitted and none could be
// stored the whole transaction is rolled back with ErrBatchFailed.
func BulkReplace(ctx context.Context, db *gorm.DB, programID int64, patch ProgramPatch, schedule, guests []Draft, guards ...Guard) (*BulkResult, error) {
	var out *BulkResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, guard := range guards {
			if err := guard(ctx, tx); err != nil {
				return err
			}
		}
		n, err := schema.Update(ctx, tx, model.ProgramsTable, schema.Where{"id": programID}, patch)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}

		if err := deleteAll(ctx, tx, programID, ScheduleItems); err != nil {
			return err
		}
		if err := deleteAll(ctx, tx, programID, SpecialGuests); err != nil {
			return err
		}

		res, err := insertChildren(ctx, tx, programID, schedule, guests)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ImportProgram creates a program in churchID and stores its children
// through the same path as BulkReplace.
func ImportProgram(ctx context.Context, db *gorm.DB, churchID int64, fields ProgramPatch, schedule, guests []Draft) (*BulkResult, error) {
	var out *BulkResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		programID, err := InsertProgram(ctx, tx, churchID, fields)
		if err != nil {
			return err
		}
		res, err := insertChildren(ctx, tx, programID, schedule, guests)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// InsertProgram writes a program row through the tolerant writer.
func InsertProgram(ctx context.Context, tx *gorm.DB, churchID int64, fields ProgramPatch) (int64, error) {
	required := schema.Values{"church_id": churchID, "title": fields["title"]}
	optional := schema.Values{}
	for _, f := range model.ProgramFields {
		if f == "title" {
			continue
		}
		if v, ok := fields[f]; ok {
			optional[f] = v
		}
	}
	return schema.Insert(ctx, tx, model.ProgramsTable, required, optional)
}

func insertChildren(ctx context.Context, tx *gorm.DB, programID int64, schedule, guests []Draft) (*BulkResult, error) {
	res := &BulkResult{Schedule: newReport(), Guests: newReport()}

	insertEach(ctx, tx, programID, ScheduleItems, schedule, &res.Schedule)
	insertEach(ctx, tx, programID, SpecialGuests, guests, &res.Guests)

	supplied := len(schedule) + len(guests)
	stored := len(res.Schedule.Applied) + len(res.Guests.Applied)
	if supplied > 0 && stored == 0 {
		return nil, fmt.Errorf("%w: schedule [%s] guests [%s]", ErrBatchFailed, res.Schedule.Summary(), res.Guests.Summary())
	}

	if err := tx.WithContext(ctx).Take(&res.Program, "id = ?", programID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var err error
	if res.ScheduleItems, err = List(ctx, tx, programID, ScheduleItems); err != nil {
		return nil, err
	}
	if res.SpecialGuests, err = List(ctx, tx, programID, SpecialGuests); err != nil {
		return nil, err
	}
	return res, nil
}

// insertEach stores drafts one savepoint at a time so a failed statement
// does not poison the surrounding transaction.
func insertEach[T any](ctx context.Context, tx *gorm.DB, programID int64, k Kind[T], drafts []Draft, report *BatchReport) {
	for i, d := range drafts {
		var id int64
		err := tx.Transaction(func(sp *gorm.DB) error {
			var err error
			id, err = insertChild(ctx, sp, programID, k, d)
			return err
		})
		if err != nil {
			log.Printf("[WARN] bulk insert %s #%d into program %d skipped: %v", k.Name, i, programID, err)
			report.skip(i, nil, err.Error())
			continue
		}
		report.apply(id)
	}
}

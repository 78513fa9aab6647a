package ordering

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"programpro_backend/internals/helpers/schema"
)

// Move asks for one child to take a new position. Both fields are
// pointers so a missing value can be told apart from zero.
type Move struct {
	ID       *int64 `json:"id"`
	Position *int   `json:"position"`
}

func orderClause(cols schema.Columns, position string) string {
	if !cols.Has(position) {
		return "id ASC"
	}
	return fmt.Sprintf("COALESCE(%s, 0) ASC, id ASC", pq.QuoteIdentifier(position))
}

// List returns the children of a program by position, ties broken by id.
// Without the position column the order is id alone.
func List[T any](ctx context.Context, db *gorm.DB, programID int64, k Kind[T]) ([]T, error) {
	cols := schema.Probe(ctx, db, k.Table.Name, k.Table.Minimal...)

	out := make([]T, 0)
	err := db.WithContext(ctx).
		Table(k.Table.Name).
		Where("program_id = ?", programID).
		Order(orderClause(cols, k.Position)).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reorder sets the positions named in moves, all in one transaction.
// Entries without id or position, entries whose child is not in the
// program, and every entry when the position column is missing are
// skipped and reported. Positions are stored as given; nothing is
// renumbered.
func Reorder[T any](ctx context.Context, db *gorm.DB, programID int64, k Kind[T], moves []Move) (BatchReport, []T, error) {
	report := newReport()
	var items []T

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cols := schema.Probe(ctx, tx, k.Table.Name, k.Table.Minimal...)
		hasPosition := cols.Has(k.Position)
		if !hasPosition && len(moves) > 0 {
			log.Printf("[WARN] reorder %s: column %s missing, skipping %d moves", k.Table.Name, k.Position, len(moves))
		}

		for i, m := range moves {
			switch {
			case m.ID == nil:
				report.skip(i, nil, "missing id")
				continue
			case m.Position == nil:
				report.skip(i, m.ID, "missing position")
				continue
			case !hasPosition:
				report.skip(i, m.ID, "position column missing")
				continue
			}

			res := tx.Table(k.Table.Name).
				Where("id = ? AND program_id = ?", *m.ID, programID).
				Update(k.Position, *m.Position)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				report.skip(i, m.ID, "not in program")
				continue
			}
			report.apply(*m.ID)
		}

		var err error
		items, err = List(ctx, tx, programID, k)
		return err
	})
	if err != nil {
		return BatchReport{}, nil, err
	}
	return report, items, nil
}

func get[T any](ctx context.Context, db *gorm.DB, programID int64, k Kind[T], id int64) (*T, error) {
	var row T
	err := db.WithContext(ctx).
		Table(k.Table.Name).
		Where("id = ? AND program_id = ?", id, programID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Get returns one child of the program.
func Get[T any](ctx context.Context, db *gorm.DB, programID int64, k Kind[T], id int64) (*T, error) {
	return get(ctx, db, programID, k, id)
}

func insertChild[T any](ctx context.Context, tx *gorm.DB, programID int64, k Kind[T], d Draft) (int64, error) {
	required, optional := k.split(programID, d)
	return schema.Insert(ctx, tx, k.Table, required, optional)
}

// Create inserts a child through the tolerant writer and returns the row
// as stored, defaults included.
func Create[T any](ctx context.Context, db *gorm.DB, programID int64, k Kind[T], d Draft) (*T, error) {
	var out *T
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := insertChild(ctx, tx, programID, k, d)
		if err != nil {
			return err
		}
		out, err = get(ctx, tx, programID, k, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies the present fields of d to one child of the program.
func Update[T any](ctx context.Context, db *gorm.DB, programID int64, k Kind[T], id int64, d Draft) (*T, error) {
	var out *T
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := schema.Update(ctx, tx, k.Table, schema.Where{"id": id, "program_id": programID}, k.patch(d))
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		out, err = get(ctx, tx, programID, k, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes one child of the program.
func Delete[T any](ctx context.Context, db *gorm.DB, programID int64, k Kind[T], id int64) error {
	res := db.WithContext(ctx).Exec(
		"DELETE FROM "+pq.QuoteIdentifier(k.Table.Name)+" WHERE id = ? AND program_id = ?",
		id, programID,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func deleteAll[T any](ctx context.Context, tx *gorm.DB, programID int64, k Kind[T]) error {
	return tx.WithContext(ctx).Exec(
		"DELETE FROM "+pq.QuoteIdentifier(k.Table.Name)+" WHERE program_id = ?",
		programID,
	).Error
}

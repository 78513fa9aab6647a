// file: internals/helpers/schema/errors.go
package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrInvalid marks a write rejected because of a mandatory or malformed field.
var ErrInvalid = errors.New("invalid field")

// FieldError reports which field of which table made a write fail.
type FieldError struct {
	Table  string
	Field  string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	field := e.Field
	if field == "" {
		field = "record"
	}
	if e.Table != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", field, e.Reason)
}

func (e *FieldError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalid}
	}
	return []error{ErrInvalid, e.Err}
}

func requiredError(table, field string) *FieldError {
	return &FieldError{Table: table, Field: field, Reason: "is required"}
}

// postgres SQLSTATE codes that mean "the data was wrong", not "the server broke"
var pgFieldCodes = map[string]string{
	"23502": "must not be null",
	"23514": "violates a check constraint",
	"23503": "references a missing record",
	"22001": "is too long",
	"22003": "is out of range",
	"22007": "has an invalid date/time format",
	"22008": "is an invalid date/time",
	"22P02": "has an invalid format",
}

var sqliteFieldMessages = map[string]string{
	"NOT NULL constraint failed":    "must not be null",
	"CHECK constraint failed":       "violates a check constraint",
	"FOREIGN KEY constraint failed": "references a missing record",
}

// classify turns driver errors on a write into *FieldError. Anything else is
// returned untouched.
func classify(table string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		reason, ok := pgFieldCodes[pgErr.Code]
		if !ok {
			return err
		}
		field := pgErr.ColumnName
		if field == "" {
			field = pgErr.ConstraintName
		}
		return &FieldError{Table: table, Field: field, Reason: reason, Err: err}
	}

	msg := err.Error()
	for prefix, reason := range sqliteFieldMessages {
		idx := strings.Index(msg, prefix)
		if idx < 0 {
			continue
		}
		// "NOT NULL constraint failed: schedule_items.title"
		field := strings.TrimSpace(strings.TrimPrefix(msg[idx+len(prefix):], ":"))
		if dot := strings.LastIndex(field, "."); dot >= 0 {
			field = field[dot+1:]
		}
		return &FieldError{Table: table, Field: field, Reason: reason, Err: err}
	}
	return err
}

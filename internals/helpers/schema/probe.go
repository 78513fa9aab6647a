// file: internals/helpers/schema/probe.go
package schema

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// Columns is the set of column names a table currently has.
type Columns map[string]struct{}

func NewColumns(names ...string) Columns {
	out := make(Columns, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			out[n] = struct{}{}
		}
	}
	return out
}

func (c Columns) Has(name string) bool {
	_, ok := c[strings.ToLower(name)]
	return ok
}

// Names returns the column names sorted, mostly for logs and tests.
func (c Columns) Names() []string {
	out := make([]string, 0, len(c))
	for n := range c {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ListColumns reads the live column list of table. It is not cached:
// a migration may land between two requests.
func ListColumns(ctx context.Context, db *gorm.DB, table string) (Columns, error) {
	if db == nil {
		return nil, fmt.Errorf("schema: nil db")
	}
	table = strings.TrimSpace(table)
	if table == "" {
		return nil, fmt.Errorf("schema: empty table name")
	}

	q := db.WithContext(ctx)
	var names []string

	switch q.Dialector.Name() {
	case "postgres":
		if err := q.Raw(`
			SELECT column_name
			FROM information_schema.columns
			WHERE table_schema = current_schema()
			  AND table_name = ?
		`, table).Scan(&names).Error; err != nil {
			return nil, err
		}
	case "sqlite", "sqlite3":
		if err := q.Raw(`SELECT name FROM pragma_table_info(?)`, table).Scan(&names).Error; err != nil {
			return nil, err
		}
	default:
		types, err := q.Migrator().ColumnTypes(table)
		if err != nil {
			return nil, err
		}
		for _, ct := range types {
			names = append(names, ct.Name())
		}
	}

	return NewColumns(names...), nil
}

// Probe is ListColumns that never fails. When introspection errors or finds
// nothing it logs and falls back to the minimal column set, so the caller
// writes mandatory fields only.
func Probe(ctx context.Context, db *gorm.DB, table string, minimal ...string) Columns {
	cols, err := listIsolated(ctx, db, table)
	switch {
	case err != nil:
		log.Printf("[WARN] schema probe %s failed, using minimal columns %v: %v", table, minimal, err)
		return NewColumns(minimal...)
	case len(cols) == 0:
		log.Printf("[WARN] schema probe %s found no columns, using minimal columns %v", table, minimal)
		return NewColumns(minimal...)
	}
	return cols
}

// listIsolated runs ListColumns under a savepoint when db is a transaction.
// On postgres a failed statement aborts the whole transaction; the savepoint
// keeps a failed probe from taking the caller's write down with it.
func listIsolated(ctx context.Context, db *gorm.DB, table string) (Columns, error) {
	if db == nil {
		return nil, fmt.Errorf("schema: nil db")
	}
	if _, inTx := db.Statement.ConnPool.(gorm.TxCommitter); !inTx {
		return ListColumns(ctx, db, table)
	}
	var cols Columns
	err := db.WithContext(ctx).Transaction(func(sp *gorm.DB) error {
		var err error
		cols, err = ListColumns(ctx, sp, table)
		return err
	})
	return cols, err
}

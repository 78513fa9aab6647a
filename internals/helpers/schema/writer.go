// file: internals/helpers/schema/writer.go
package schema

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Values maps column name to value.
type Values map[string]any

// Where is an AND-ed set of equality conditions.
type Where map[string]any

// Table describes a table whose optional columns may not exist yet.
type Table struct {
	Name string
	Key  string
	// Minimal is what a failed probe falls back to: key, parent reference
	// and the mandatory label.
	Minimal []string
	// Defaults are written on insert when the column exists and the caller
	// left it absent.
	Defaults Values
	// Touch is set to now on every update when the column exists.
	Touch string
}

func (t Table) key() string {
	if t.Key == "" {
		return "id"
	}
	return t.Key
}

// Present reports whether v carries a value worth writing. Nil, nil
// pointers and blank strings are absent; numbers, zero included, and
// booleans are present.
func Present(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return strings.TrimSpace(rv.String()) != ""
	case reflect.Slice, reflect.Map:
		return !rv.IsNil()
	}
	return true
}

// deref hands the driver plain values instead of pointers.
func deref(v any) any {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

func sortedKeys[M ~map[string]any](m M) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Insert writes one row and returns its key. Required values are always
// written and must be present. Optional values are written only when the
// live table has the column and the value is present; otherwise the
// table default is used when one is declared and the column exists.
func Insert(ctx context.Context, tx *gorm.DB, t Table, required, optional Values) (int64, error) {
	cols := Probe(ctx, tx, t.Name, t.Minimal...)

	names := make([]string, 0, len(required)+len(optional))
	args := make([]any, 0, cap(names))
	seen := map[string]bool{}

	for _, k := range sortedKeys(required) {
		v := required[k]
		if !Present(v) {
			return 0, requiredError(t.Name, k)
		}
		names = append(names, k)
		args = append(args, deref(v))
		seen[k] = true
	}
	for _, k := range sortedKeys(optional) {
		if seen[k] || !cols.Has(k) || !Present(optional[k]) {
			continue
		}
		names = append(names, k)
		args = append(args, deref(optional[k]))
		seen[k] = true
	}
	for _, k := range sortedKeys(t.Defaults) {
		if seen[k] || !cols.Has(k) {
			continue
		}
		names = append(names, k)
		args = append(args, t.Defaults[k])
		seen[k] = true
	}

	quoted := make([]string, len(names))
	marks := make([]string, len(names))
	for i, n := range names {
		quoted[i] = pq.QuoteIdentifier(n)
		marks[i] = "?"
	}

	q := "INSERT INTO " + pq.QuoteIdentifier(t.Name) +
		" (" + strings.Join(quoted, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")" +
		" RETURNING " + pq.QuoteIdentifier(t.key())

	var id int64
	if err := tx.WithContext(ctx).Raw(q, args...).Row().Scan(&id); err != nil {
		return 0, classify(t.Name, err)
	}
	return id, nil
}

// Update applies the present values whose columns exist to the rows
// matching where, and returns how many rows matched. With nothing to set
// it only counts the matching rows.
func Update(ctx context.Context, tx *gorm.DB, t Table, where Where, values Values) (int64, error) {
	cols := Probe(ctx, tx, t.Name, t.Minimal...)

	sets := make([]string, 0, len(values)+1)
	args := make([]any, 0, len(values)+len(where)+1)
	for _, k := range sortedKeys(values) {
		if !cols.Has(k) || !Present(values[k]) {
			continue
		}
		sets = append(sets, pq.QuoteIdentifier(k)+" = ?")
		args = append(args, deref(values[k]))
	}

	conds := make([]string, 0, len(where))
	condArgs := make([]any, 0, len(where))
	for _, k := range sortedKeys(where) {
		conds = append(conds, pq.QuoteIdentifier(k)+" = ?")
		condArgs = append(condArgs, where[k])
	}
	whereSQL := ""
	if len(conds) > 0 {
		whereSQL = " WHERE " + strings.Join(conds, " AND ")
	}

	db := tx.WithContext(ctx)
	if len(sets) == 0 {
		var n int64
		err := db.Raw("SELECT COUNT(*) FROM "+pq.QuoteIdentifier(t.Name)+whereSQL, condArgs...).Row().Scan(&n)
		return n, err
	}
	if t.Touch != "" && cols.Has(t.Touch) {
		sets = append(sets, pq.QuoteIdentifier(t.Touch)+" = ?")
		args = append(args, time.Now().UTC())
	}

	q := "UPDATE " + pq.QuoteIdentifier(t.Name) + " SET " + strings.Join(sets, ", ") + whereSQL
	res := db.Exec(q, append(args, condArgs...)...)
	if res.Error != nil {
		return 0, classify(t.Name, res.Error)
	}
	return res.RowsAffected, nil
}

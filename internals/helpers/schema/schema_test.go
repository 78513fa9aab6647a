package schema_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"programpro_backend/internals/databases/migrations"
	"programpro_backend/internals/databases/testdb"
	"programpro_backend/internals/helpers/schema"
)

var scheduleTable = schema.Table{
	Name:     "schedule_items",
	Key:      "id",
	Minimal:  []string{"id", "program_id", "title"},
	Defaults: schema.Values{"order_index": 0, "type": "worship"},
}

func TestListColumnsSeesMigratedColumns(t *testing.T) {
	db := testdb.Open(t)

	cols, err := schema.ListColumns(context.Background(), db, "schedule_items")
	require.NoError(t, err)
	for _, c := range []string{"id", "program_id", "title", "order_index", "type", "duration_minutes"} {
		assert.True(t, cols.Has(c), c)
	}
}

func TestListColumnsOnPartialSchema(t *testing.T) {
	db := testdb.OpenAt(t, migrations.VersionProgramFields)

	cols, err := schema.ListColumns(context.Background(), db, "schedule_items")
	require.NoError(t, err)
	assert.True(t, cols.Has("title"))
	assert.False(t, cols.Has("order_index"))
}

func TestProbeFallsBackToMinimal(t *testing.T) {
	db := testdb.Open(t)

	cols := schema.Probe(context.Background(), db, "no_such_table", "id", "program_id", "title")
	assert.Equal(t, []string{"id", "program_id", "title"}, cols.Names())
}

func TestFailedProbeInsideTransactionKeepsWriting(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	program := testdb.SeedProgram(t, db, testdb.SeedChurch(t, db, "Grace"), "Sunday")

	var savepoints int
	require.NoError(t, db.Callback().Row().Before("gorm:row").Register("test:fail_introspection", func(d *gorm.DB) {
		if strings.Contains(d.Statement.SQL.String(), "pragma_table_info") {
			d.AddError(errors.New("introspection unavailable"))
		}
	}))
	require.NoError(t, db.Callback().Raw().Before("gorm:raw").Register("test:count_savepoints", func(d *gorm.DB) {
		if strings.HasPrefix(strings.ToUpper(d.Statement.SQL.String()), "SAVEPOINT") {
			savepoints++
		}
	}))

	var id int64
	err := db.Transaction(func(tx *gorm.DB) error {
		cols := schema.Probe(ctx, tx, "schedule_items", "id", "program_id", "title")
		assert.Equal(t, []string{"id", "program_id", "title"}, cols.Names())

		var err error
		id, err = schema.Insert(ctx, tx, scheduleTable,
			schema.Values{"program_id": program, "title": "Opening Hymn"},
			schema.Values{"description": "all stand"},
		)
		return err
	})
	require.NoError(t, err)

	var title string
	var desc *string
	require.NoError(t, db.Raw(`SELECT title, description FROM schedule_items WHERE id = ?`, id).Row().Scan(&title, &desc))
	assert.Equal(t, "Opening Hymn", title)
	assert.Nil(t, desc)
	assert.Positive(t, savepoints)
}

func TestPresent(t *testing.T) {
	empty := ""
	blank := "   "
	zero := 0
	word := "x"
	var nilInt *int

	assert.False(t, schema.Present(nil))
	assert.False(t, schema.Present(nilInt))
	assert.False(t, schema.Present(&empty))
	assert.False(t, schema.Present(blank))
	assert.True(t, schema.Present(&zero))
	assert.True(t, schema.Present(0))
	assert.True(t, schema.Present(false))
	assert.True(t, schema.Present(&word))
}

func TestInsertWritesDefaultsAndSkipsAbsent(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	church := testdb.SeedChurch(t, db, "Grace")
	program := testdb.SeedProgram(t, db, church, "Sunday")

	id, err := schema.Insert(ctx, db, scheduleTable,
		schema.Values{"program_id": program, "title": "Opening Hymn"},
		schema.Values{"description": "", "duration_minutes": nil},
	)
	require.NoError(t, err)
	require.NotZero(t, id)

	var row struct {
		OrderIndex      *int
		Type            *string
		Description     *string
		DurationMinutes *int
	}
	require.NoError(t, db.Table("schedule_items").Where("id = ?", id).Take(&row).Error)
	require.NotNil(t, row.OrderIndex)
	assert.Equal(t, 0, *row.OrderIndex)
	require.NotNil(t, row.Type)
	assert.Equal(t, "worship", *row.Type)
	assert.Nil(t, row.Description)
	assert.Nil(t, row.DurationMinutes)
}

func TestInsertKeepsExplicitZero(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	program := testdb.SeedProgram(t, db, testdb.SeedChurch(t, db, "Grace"), "Sunday")

	zero := 0
	id, err := schema.Insert(ctx, db, scheduleTable,
		schema.Values{"program_id": program, "title": "Call to Worship"},
		schema.Values{"duration_minutes": &zero, "type": "sermon"},
	)
	require.NoError(t, err)

	var row struct {
		DurationMinutes *int
		Type            string
	}
	require.NoError(t, db.Table("schedule_items").Where("id = ?", id).Take(&row).Error)
	require.NotNil(t, row.DurationMinutes)
	assert.Equal(t, 0, *row.DurationMinutes)
	assert.Equal(t, "sermon", row.Type)
}

func TestInsertOmitsMissingOptionalColumns(t *testing.T) {
	db := testdb.OpenAt(t, migrations.VersionProgramFields)
	ctx := context.Background()
	program := testdb.SeedProgram(t, db, testdb.SeedChurch(t, db, "Grace"), "Sunday")

	id, err := schema.Insert(ctx, db, scheduleTable,
		schema.Values{"program_id": program, "title": "Opening Hymn"},
		schema.Values{"order_index": 3, "type": "worship", "description": "all stand"},
	)
	require.NoError(t, err)

	var desc string
	require.NoError(t, db.Raw(`SELECT description FROM schedule_items WHERE id = ?`, id).Row().Scan(&desc))
	assert.Equal(t, "all stand", desc)
}

func TestInsertRejectsMissingRequired(t *testing.T) {
	db := testdb.Open(t)
	program := testdb.SeedProgram(t, db, testdb.SeedChurch(t, db, "Grace"), "Sunday")

	_, err := schema.Insert(context.Background(), db, scheduleTable,
		schema.Values{"program_id": program, "title": "  "},
		nil,
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrInvalid)

	var fe *schema.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "title", fe.Field)
}

func TestUpdatePartialAndCount(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	program := testdb.SeedProgram(t, db, testdb.SeedChurch(t, db, "Grace"), "Sunday")

	id, err := schema.Insert(ctx, db, scheduleTable,
		schema.Values{"program_id": program, "title": "Opening Hymn"}, nil)
	require.NoError(t, err)

	title := "Closing Hymn"
	n, err := schema.Update(ctx, db, scheduleTable,
		schema.Where{"id": id, "program_id": program},
		schema.Values{"title": &title, "description": nil, "not_a_column": "x"},
	)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var got string
	require.NoError(t, db.Raw(`SELECT title FROM schedule_items WHERE id = ?`, id).Row().Scan(&got))
	assert.Equal(t, "Closing Hymn", got)

	// nothing to set: just reports whether the row matched
	n, err = schema.Update(ctx, db, scheduleTable, schema.Where{"id": id, "program_id": program + 1}, schema.Values{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestUpdateTouchesWhenColumnExists(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	program := testdb.SeedProgram(t, db, testdb.SeedChurch(t, db, "Grace"), "Sunday")

	programs := schema.Table{Name: "programs", Minimal: []string{"id", "church_id", "title"}, Touch: "updated_at"}
	n, err := schema.Update(ctx, db, programs, schema.Where{"id": program}, schema.Values{"theme": "Hope"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var touched int64
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM programs WHERE id = ? AND updated_at IS NOT NULL`, program).Row().Scan(&touched))
	assert.EqualValues(t, 1, touched)
}

func TestFieldErrorFromPostgresCode(t *testing.T) {
	err := &schema.FieldError{Table: "special_guests", Field: "name", Reason: "must not be null", Err: &pgconn.PgError{Code: "23502"}}
	assert.ErrorIs(t, err, schema.ErrInvalid)
	assert.Equal(t, "special_guests.name: must not be null", err.Error())
}

package ordering_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"programpro_backend/internals/databases/migrations"
	"programpro_backend/internals/databases/testdb"
	"programpro_backend/internals/features/programs/ordering"
	"programpro_backend/internals/features/programs/program/model"
)

func i64(v int64) *int64 { return &v }
func iptr(v int) *int    { return &v }

func setup(t *testing.T) (*gorm.DB, int64) {
	t.Helper()
	db := testdb.Open(t)
	church := testdb.SeedChurch(t, db, "Grace Community Church")
	return db, testdb.SeedProgram(t, db, church, "Sunday Worship")
}

func addItem(t *testing.T, db *gorm.DB, programID int64, title string, pos int) int64 {
	t.Helper()
	it, err := ordering.Create(context.Background(), db, programID, ordering.ScheduleItems,
		ordering.Draft{"title": title, "order_index": pos})
	require.NoError(t, err)
	return it.ID
}

func titles(items []model.ScheduleItemModel) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestReorderScenario(t *testing.T) {
	db, p := setup(t)
	ctx := context.Background()

	a := addItem(t, db, p, "A", 0)
	addItem(t, db, p, "B", 1)
	c := addItem(t, db, p, "C", 2)

	report, items, err := ordering.Reorder(ctx, db, p, ordering.ScheduleItems, []ordering.Move{
		{ID: i64(a), Position: iptr(2)},
		{ID: i64(c), Position: iptr(0)},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{a, c}, report.Applied)
	assert.Empty(t, report.Skipped)
	assert.Equal(t, []string{"C", "B", "A"}, titles(items))

	listed, err := ordering.List(ctx, db, p, ordering.ScheduleItems)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, titles(listed))
}

func TestReorderIsIdempotent(t *testing.T) {
	db, p := setup(t)
	ctx := context.Background()

	one := addItem(t, db, p, "one", 0)
	two := addItem(t, db, p, "two", 0)
	addItem(t, db, p, "three", 3)

	moves := []ordering.Move{{ID: i64(one), Position: iptr(5)}, {ID: i64(two), Position: iptr(1)}}

	_, first, err := ordering.Reorder(ctx, db, p, ordering.ScheduleItems, moves)
	require.NoError(t, err)
	_, second, err := ordering.Reorder(ctx, db, p, ordering.ScheduleItems, moves)
	require.NoError(t, err)

	assert.Equal(t, titles(first), titles(second))
	assert.Equal(t, []string{"two", "three", "one"}, titles(second))
}

func TestReorderSkipsForeignChildren(t *testing.T) {
	db, p := setup(t)
	ctx := context.Background()
	other := testdb.SeedProgram(t, db, testdb.SeedChurch(t, db, "Other"), "Other program")

	mine := addItem(t, db, p, "mine", 0)
	theirs := addItem(t, db, other, "theirs", 0)

	report, _, err := ordering.Reorder(ctx, db, p, ordering.ScheduleItems, []ordering.Move{
		{ID: i64(theirs), Position: iptr(9)},
		{ID: i64(mine), Position: iptr(4)},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{mine}, report.Applied)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, 0, report.Skipped[0].Index)
	assert.Equal(t, "not in program", report.Skipped[0].Reason)

	untouched, err := ordering.Get(ctx, db, other, ordering.ScheduleItems, theirs)
	require.NoError(t, err)
	require.NotNil(t, untouched.OrderIndex)
	assert.Equal(t, 0, *untouched.OrderIndex)
}

func TestReorderSkipsIncompleteMoves(t *testing.T) {
	db, p := setup(t)
	id := addItem(t, db, p, "only", 0)

	report, _, err := ordering.Reorder(context.Background(), db, p, ordering.ScheduleItems, []ordering.Move{
		{Position: iptr(1)},
		{ID: i64(id)},
	})
	require.NoError(t, err)
	assert.Empty(t, report.Applied)
	require.Len(t, report.Skipped, 2)
	assert.Equal(t, "missing id", report.Skipped[0].Reason)
	assert.Equal(t, "missing position", report.Skipped[1].Reason)
}

func TestTieBreakByID(t *testing.T) {
	db, p := setup(t)
	ctx := context.Background()

	first := addItem(t, db, p, "first", 1)
	second := addItem(t, db, p, "second", 1)
	zero := addItem(t, db, p, "zero", 0)

	for i := 0; i < 3; i++ {
		items, err := ordering.List(ctx, db, p, ordering.ScheduleItems)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, []int64{zero, first, second}, []int64{items[0].ID, items[1].ID, items[2].ID})
	}
}

func TestNullPositionSortsAsZero(t *testing.T) {
	db, p := setup(t)
	ctx := context.Background()

	one := addItem(t, db, p, "one", 1)
	// a row written before positions were set
	require.NoError(t, db.Exec(`INSERT INTO schedule_items (program_id, title, order_index) VALUES (?, ?, NULL)`, p, "legacy").Error)

	items, err := ordering.List(ctx, db, p, ordering.ScheduleItems)
	require.NoError(t, err)
	assert.Equal(t, []string{"legacy", "one"}, titles(items))
	assert.Equal(t, one, items[1].ID)
}

func TestFallbackOrderingWithoutPositionColumn(t *testing.T) {
	db := testdb.OpenAt(t, migrations.VersionProgramFields)
	ctx := context.Background()
	p := testdb.SeedProgram(t, db, testdb.SeedChurch(t, db, "Grace"), "Sunday")

	a := addItem(t, db, p, "A", 9)
	b := addItem(t, db, p, "B", 1)

	items, err := ordering.List(ctx, db, p, ordering.ScheduleItems)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, titles(items))
	assert.Nil(t, items[0].OrderIndex)

	report, items, err := ordering.Reorder(ctx, db, p, ordering.ScheduleItems, []ordering.Move{
		{ID: i64(b), Position: iptr(0)},
		{ID: i64(a), Position: iptr(1)},
	})
	require.NoError(t, err)
	assert.Empty(t, report.Applied)
	require.Len(t, report.Skipped, 2)
	assert.Equal(t, "position column missing", report.Skipped[0].Reason)
	assert.Equal(t, []string{"A", "B"}, titles(items))
}

func TestCreateResolvesDefaults(t *testing.T) {
	db, p := setup(t)
	ctx := context.Background()

	item, err := ordering.Create(ctx, db, p, ordering.ScheduleItems, ordering.Draft{"title": "Opening Hymn"})
	require.NoError(t, err)
	assert.Equal(t, "Opening Hymn", item.Title)
	require.NotNil(t, item.OrderIndex)
	assert.Equal(t, 0, *item.OrderIndex)
	require.NotNil(t, item.Type)
	assert.Equal(t, model.ScheduleTypeWorship, *item.Type)

	guest, err := ordering.Create(ctx, db, p, ordering.SpecialGuests, ordering.Draft{"name": "Pastor Kim"})
	require.NoError(t, err)
	require.NotNil(t, guest.DisplayOrder)
	assert.Equal(t, 0, *guest.DisplayOrder)
}

func TestCreateOnPartialSchemaOmitsMissingFields(t *testing.T) {
	db := testdb.OpenAt(t, migrations.VersionProgramFields)
	p := testdb.SeedProgram(t, db, testdb.SeedChurch(t, db, "Grace"), "Sunday")

	guest, err := ordering.Create(context.Background(), db, p, ordering.SpecialGuests, ordering.Draft{
		"name":          "Choir",
		"role":          "music",
		"bio":           "not migrated yet",
		"display_order": 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "Choir", guest.Name)
	require.NotNil(t, guest.Role)
	assert.Equal(t, "music", *guest.Role)
	assert.Nil(t, guest.Bio)
	assert.Nil(t, guest.DisplayOrder)
}

func TestCreateWithoutLabelIsInvalid(t *testing.T) {
	db, p := setup(t)

	_, err := ordering.Create(context.Background(), db, p, ordering.ScheduleItems, ordering.Draft{"description": "no title"})
	require.Error(t, err)

	n := int64(-1)
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM schedule_items`).Row().Scan(&n))
	assert.Zero(t, n)
}

func TestUpdateAndDeleteScopedToProgram(t *testing.T) {
	db, p := setup(t)
	ctx := context.Background()
	other := testdb.SeedProgram(t, db, testdb.SeedChurch(t, db, "Other"), "Other")

	id := addItem(t, db, p, "Welcome", 0)

	_, err := ordering.Update(ctx, db, other, ordering.ScheduleItems, id, ordering.Draft{"title": "Hijack"})
	assert.ErrorIs(t, err, ordering.ErrNotFound)

	updated, err := ordering.Update(ctx, db, p, ordering.ScheduleItems, id, ordering.Draft{"title": "Welcome & Prayer", "duration_minutes": 5})
	require.NoError(t, err)
	assert.Equal(t, "Welcome & Prayer", updated.Title)
	require.NotNil(t, updated.DurationMinutes)
	assert.Equal(t, 5, *updated.DurationMinutes)

	assert.ErrorIs(t, ordering.Delete(ctx, db, other, ordering.ScheduleItems, id), ordering.ErrNotFound)
	require.NoError(t, ordering.Delete(ctx, db, p, ordering.ScheduleItems, id))
	assert.ErrorIs(t, ordering.Delete(ctx, db, p, ordering.ScheduleItems, id), ordering.ErrNotFound)
}

func TestBulkReplaceEmptyClearsChildrenAndSetsFields(t *testing.T) {
	db, p := setup(t)
	ctx := context.Background()

	addItem(t, db, p, "old item", 0)
	_, err := ordering.Create(ctx, db, p, ordering.SpecialGuests, ordering.Draft{"name": "old guest"})
	require.NoError(t, err)

	date := time.Date(2026, 12, 24, 19, 0, 0, 0, time.UTC)
	res, err := ordering.BulkReplace(ctx, db, p, ordering.ProgramPatch{
		"title": "Christmas Eve",
		"theme": "Light",
		"date":  date,
	}, nil, nil)
	require.NoError(t, err)

	assert.Empty(t, res.ScheduleItems)
	assert.Empty(t, res.SpecialGuests)
	assert.Equal(t, "Christmas Eve", res.Program.Title)
	require.NotNil(t, res.Program.Theme)
	assert.Equal(t, "Light", *res.Program.Theme)
	require.NotNil(t, res.Program.Date)
	assert.True(t, date.Equal(*res.Program.Date))
}

func TestBulkReplaceSkipsBadItems(t *testing.T) {
	db, p := setup(t)
	ctx := context.Background()
	addItem(t, db, p, "old", 0)

	res, err := ordering.BulkReplace(ctx, db, p, nil,
		[]ordering.Draft{
			{"title": "Prelude", "order_index": 0},
			{"description": "missing title"},
			{"title": "Sermon", "order_index": 1, "type": "sermon"},
		},
		[]ordering.Draft{{"name": "Guest Choir", "display_order": 0}},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"Prelude", "Sermon"}, titles(res.ScheduleItems))
	require.Len(t, res.Schedule.Skipped, 1)
	assert.Equal(t, 1, res.Schedule.Skipped[0].Index)
	assert.Len(t, res.Schedule.Applied, 2)
	require.Len(t, res.SpecialGuests, 1)
	assert.Equal(t, "Guest Choir", res.SpecialGuests[0].Name)
	assert.Equal(t, "Sunday Worship", res.Program.Title)
}

func TestBulkReplaceAllFailedRollsBack(t *testing.T) {
	db, p := setup(t)
	ctx := context.Background()
	addItem(t, db, p, "keep me", 0)

	_, err := ordering.BulkReplace(ctx, db, p, ordering.ProgramPatch{"title": "Changed"},
		[]ordering.Draft{{"description": "no title"}}, nil)
	require.ErrorIs(t, err, ordering.ErrBatchFailed)

	items, err := ordering.List(ctx, db, p, ordering.ScheduleItems)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep me"}, titles(items))

	var title string
	require.NoError(t, db.Raw(`SELECT title FROM programs WHERE id = ?`, p).Row().Scan(&title))
	assert.Equal(t, "Sunday Worship", title)
}

func TestBulkReplaceUnknownProgram(t *testing.T) {
	db, _ := setup(t)
	_, err := ordering.BulkReplace(context.Background(), db, 9999, nil, nil, nil)
	assert.ErrorIs(t, err, ordering.ErrNotFound)
}

func TestBulkReplaceGuardRunsInsideTransaction(t *testing.T) {
	db, p := setup(t)
	ctx := context.Background()
	addItem(t, db, p, "keep me", 0)

	var guarded bool
	deny := func(ctx context.Context, tx *gorm.DB) error {
		var n int64
		require.NoError(t, tx.Raw(`SELECT COUNT(*) FROM schedule_items WHERE program_id = ?`, p).Row().Scan(&n))
		assert.EqualValues(t, 1, n, "guard sees the children before they are replaced")
		guarded = true
		return ordering.ErrForbidden
	}

	_, err := ordering.BulkReplace(ctx, db, p, ordering.ProgramPatch{"title": "Changed"},
		[]ordering.Draft{{"title": "new"}}, nil, deny)
	require.ErrorIs(t, err, ordering.ErrForbidden)
	assert.True(t, guarded)

	items, err := ordering.List(ctx, db, p, ordering.ScheduleItems)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep me"}, titles(items))

	allow := func(context.Context, *gorm.DB) error { return nil }
	res, err := ordering.BulkReplace(ctx, db, p, nil, []ordering.Draft{{"title": "new"}}, nil, allow)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, titles(res.ScheduleItems))
}

func TestImportProgram(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	church := testdb.SeedChurch(t, db, "Grace")

	res, err := ordering.ImportProgram(ctx, db, church, ordering.ProgramPatch{"title": "Easter"},
		[]ordering.Draft{{"title": "Hymn", "order_index": 1}, {"title": "Call to Worship", "order_index": 0}},
		[]ordering.Draft{{"name": "Rev. Lee", "role": "speaker"}},
	)
	require.NoError(t, err)
	assert.NotZero(t, res.Program.ID)
	assert.Equal(t, church, res.Program.ChurchID)
	require.NotNil(t, res.Program.IsActive)
	assert.True(t, *res.Program.IsActive)
	assert.Equal(t, []string{"Call to Worship", "Hymn"}, titles(res.ScheduleItems))
	require.Len(t, res.SpecialGuests, 1)
}

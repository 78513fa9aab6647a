// file: internals/databases/migrations/migrations.go
package migrations

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/GuiaBolso/darwin"
)

// Scripts are written once and rendered per dialect. Placeholders:
//
//	{{pk}}   auto-increment primary key column type
//	{{ts}}   timestamp column type
//	{{now}}  default clause for timestamps added by ALTER TABLE
const (
	initialSchema = `
CREATE TABLE IF NOT EXISTS churches (
    id {{pk}},
    name VARCHAR(255) NOT NULL,
    created_at {{ts}} DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS users (
    id {{pk}},
    username VARCHAR(50) NOT NULL UNIQUE,
    email VARCHAR(255) UNIQUE,
    password_hash VARCHAR(255) NOT NULL,
    role VARCHAR(50) DEFAULT 'user',
    church_id BIGINT REFERENCES churches(id),
    created_at {{ts}} DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS programs (
    id {{pk}},
    church_id BIGINT NOT NULL REFERENCES churches(id),
    title VARCHAR(255) NOT NULL,
    date {{ts}},
    theme VARCHAR(255),
    created_at {{ts}} DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS schedule_items (
    id {{pk}},
    program_id BIGINT NOT NULL REFERENCES programs(id),
    title VARCHAR(255) NOT NULL,
    description TEXT,
    start_time VARCHAR(16),
    created_at {{ts}} DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS special_guests (
    id {{pk}},
    program_id BIGINT NOT NULL REFERENCES programs(id),
    name VARCHAR(255) NOT NULL,
    role VARCHAR(255),
    created_at {{ts}} DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS program_templates (
    id {{pk}},
    church_id BIGINT REFERENCES churches(id),
    name VARCHAR(255) NOT NULL,
    content TEXT,
    created_at {{ts}} DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_programs_church ON programs(church_id);
CREATE INDEX IF NOT EXISTS idx_schedule_items_program ON schedule_items(program_id);
CREATE INDEX IF NOT EXISTS idx_special_guests_program ON special_guests(program_id);
CREATE INDEX IF NOT EXISTS idx_program_templates_church ON program_templates(church_id);
`

	churchAddress = `ALTER TABLE churches ADD COLUMN address TEXT;`

	programFields = `
ALTER TABLE programs ADD COLUMN is_active BOOLEAN DEFAULT TRUE;
ALTER TABLE programs ADD COLUMN created_by BIGINT REFERENCES users(id);
ALTER TABLE programs ADD COLUMN updated_at {{ts}}{{now}};
`

	scheduleGuestFields = `
ALTER TABLE schedule_items ADD COLUMN duration_minutes INTEGER;
ALTER TABLE schedule_items ADD COLUMN order_index INTEGER;
ALTER TABLE schedule_items ADD COLUMN type VARCHAR(50) DEFAULT 'worship';
ALTER TABLE special_guests ADD COLUMN description TEXT;
ALTER TABLE special_guests ADD COLUMN bio TEXT;
ALTER TABLE special_guests ADD COLUMN photo_url VARCHAR(500);
ALTER TABLE special_guests ADD COLUMN display_order INTEGER DEFAULT 0;
`

	churchOptionalFields = `
ALTER TABLE churches ADD COLUMN short_name VARCHAR(255);
ALTER TABLE churches ADD COLUMN description TEXT;
ALTER TABLE churches ADD COLUMN theme_config TEXT;
`

	tokenBlacklist = `
CREATE TABLE IF NOT EXISTS token_blacklist (
    id {{pk}},
    token VARCHAR(128) NOT NULL UNIQUE,
    expired_at {{ts}} NOT NULL,
    created_at {{ts}} DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_token_blacklist_expired ON token_blacklist(expired_at);
`

	orderingIndexes = `
CREATE INDEX IF NOT EXISTS idx_schedule_items_program_order ON schedule_items(program_id, order_index, id);
CREATE INDEX IF NOT EXISTS idx_special_guests_program_order ON special_guests(program_id, display_order, id);
`
)

// Versions, in schema history order. Tests stop the chain at one of these to
// reproduce a partially migrated database.
const (
	VersionInitial             = 1.0
	VersionChurchAddress       = 2.0
	VersionProgramFields       = 3.0
	VersionScheduleGuestFields = 4.0
	VersionChurchOptional      = 5.0
	VersionTokenBlacklist      = 6.0
	VersionOrderingIndexes     = 7.0
)

var all = []darwin.Migration{
	{Version: VersionInitial, Description: "initial schema", Script: initialSchema},
	{Version: VersionChurchAddress, Description: "add churches.address", Script: churchAddress},
	{Version: VersionProgramFields, Description: "add programs is_active, created_by, updated_at", Script: programFields},
	{Version: VersionScheduleGuestFields, Description: "add schedule item and special guest fields", Script: scheduleGuestFields},
	{Version: VersionChurchOptional, Description: "add church optional fields", Script: churchOptionalFields},
	{Version: VersionTokenBlacklist, Description: "create token_blacklist", Script: tokenBlacklist},
	{Version: VersionOrderingIndexes, Description: "ordering indexes", Script: orderingIndexes},
}

type dialectSQL struct {
	darwin  darwin.Dialect
	replace *strings.Replacer
}

func resolve(dialect string) (dialectSQL, error) {
	switch dialect {
	case "postgres":
		return dialectSQL{
			darwin: darwin.PostgresDialect{},
			replace: strings.NewReplacer(
				"{{pk}}", "BIGSERIAL PRIMARY KEY",
				"{{ts}}", "TIMESTAMPTZ",
				"{{now}}", " DEFAULT CURRENT_TIMESTAMP",
			),
		}, nil
	case "sqlite", "sqlite3":
		// SQLite refuses non-constant defaults on ALTER TABLE ADD COLUMN.
		return dialectSQL{
			darwin: darwin.SqliteDialect{},
			replace: strings.NewReplacer(
				"{{pk}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
				"{{ts}}", "TIMESTAMP",
				"{{now}}", "",
			),
		}, nil
	default:
		return dialectSQL{}, fmt.Errorf("migrations: unsupported dialect %q", dialect)
	}
}

// List renders the migrations up to and including maxVersion
// (maxVersion <= 0 means all of them).
func List(dialect string, maxVersion float64) ([]darwin.Migration, error) {
	d, err := resolve(dialect)
	if err != nil {
		return nil, err
	}
	out := make([]darwin.Migration, 0, len(all))
	for _, m := range all {
		if maxVersion > 0 && m.Version > maxVersion {
			continue
		}
		out = append(out, darwin.Migration{
			Version:     m.Version,
			Description: m.Description,
			Script:      d.replace.Replace(m.Script),
		})
	}
	return out, nil
}

func Run(db *sql.DB, dialect string) error {
	return RunUpTo(db, dialect, 0)
}

func RunUpTo(db *sql.DB, dialect string, maxVersion float64) error {
	d, err := resolve(dialect)
	if err != nil {
		return err
	}
	list, err := List(dialect, maxVersion)
	if err != nil {
		return err
	}

	info := make(chan darwin.MigrationInfo, len(list))
	driver := darwin.NewGenericDriver(db, d.darwin)
	err = darwin.New(driver, list, info).Migrate()
	close(info)

	for mi := range info {
		if mi.Error != nil {
			log.Printf("[ERROR] migration %.1f (%s): %v", mi.Migration.Version, mi.Migration.Description, mi.Error)
			continue
		}
		log.Printf("[INFO] migration %.1f applied: %s", mi.Migration.Version, mi.Migration.Description)
	}
	return err
}

// Package ordering keeps the per-program child lists (schedule items and
// special guests) in caller-defined order and writes them against a schema
// that may be only partly migrated.
package ordering

import (
	"programpro_backend/internals/features/programs/program/model"
	"programpro_backend/internals/helpers/schema"
)

// Kind describes one child collection of a program. T is the row type.
type Kind[T any] struct {
	Name     string
	Table    schema.Table
	Label    string
	Position string
	Fields   []string
}

var ScheduleItems = Kind[model.ScheduleItemModel]{
	Name:     "schedule item",
	Table:    model.ScheduleItemsTable,
	Label:    "title",
	Position: "order_index",
	Fields:   model.ScheduleItemFields,
}

var SpecialGuests = Kind[model.SpecialGuestModel]{
	Name:     "special guest",
	Table:    model.SpecialGuestsTable,
	Label:    "name",
	Position: "display_order",
	Fields:   model.SpecialGuestFields,
}

// Draft holds the column values of a child to write. The label key is
// mandatory on create; every other key is optional.
type Draft = schema.Values

// split separates the mandatory and optional values of d for kind k.
// Keys that are not columns of the kind are dropped.
func (k Kind[T]) split(programID int64, d Draft) (required, optional schema.Values) {
	required = schema.Values{"program_id": programID, k.Label: d[k.Label]}
	optional = schema.Values{}
	for _, f := range k.Fields {
		if v, ok := d[f]; ok {
			optional[f] = v
		}
	}
	return required, optional
}

// patch keeps the label and optional fields of d, for partial updates.
func (k Kind[T]) patch(d Draft) schema.Values {
	out := schema.Values{}
	if v, ok := d[k.Label]; ok {
		out[k.Label] = v
	}
	for _, f := range k.Fields {
		if v, ok := d[f]; ok {
			out[f] = v
		}
	}
	return out
}

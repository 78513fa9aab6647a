package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"programpro_backend/internals/features/programs/ordering"
	"programpro_backend/internals/features/programs/program/controller"
	"programpro_backend/internals/features/programs/program/dto"
	"programpro_backend/internals/features/programs/program/model"
	"programpro_backend/internals/features/programs/program/service"
	authMiddleware "programpro_backend/internals/middlewares/auth"
)

// ProgramRoutes mounts /api/programs on router. Reads are public, writes
// need a token and are checked against the caller's church.
func ProgramRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewProgramController(db)
	auth := authMiddleware.AuthMiddleware(db)

	schedule := &controller.ChildrenController[model.ScheduleItemModel, dto.ScheduleItemRequest]{
		Svc:   service.NewChildren(db, ordering.ScheduleItems),
		Param: "item_id",
		Noun:  "Schedule item",
	}
	guests := &controller.ChildrenController[model.SpecialGuestModel, dto.SpecialGuestRequest]{
		Svc:   service.NewChildren(db, ordering.SpecialGuests),
		Param: "guest_id",
		Noun:  "Special guest",
	}

	g := router.Group("/programs")

	// 🔓 Public
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.Get)
	g.Get("/:id/schedule", schedule.List)
	g.Get("/:id/guests", guests.List)

	// 🔐 Protected
	g.Post("/", auth, ctrl.Create)
	g.Post("/bulk-import", auth, ctrl.BulkImport)
	g.Put("/:id", auth, ctrl.Update)
	g.Delete("/:id", auth, ctrl.Delete)
	g.Put("/:id/full", auth, ctrl.ReplaceFull)

	g.Post("/:id/schedule", auth, schedule.Create)
	g.Put("/:id/schedule/reorder", auth, schedule.Reorder)
	g.Patch("/:id/schedule/:item_id", auth, schedule.Update)
	g.Delete("/:id/schedule/:item_id", auth, schedule.Delete)

	g.Post("/:id/guests", auth, guests.Create)
	g.Put("/:id/guests/reorder", auth, guests.Reorder)
	g.Patch("/:id/guests/:guest_id", auth, guests.Update)
	g.Delete("/:id/guests/:guest_id", auth, guests.Delete)
}

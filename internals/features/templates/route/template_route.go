package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"programpro_backend/internals/features/templates/controller"
	authMiddleware "programpro_backend/internals/middlewares/auth"
)

// TemplateRoutes mounts /api/templates on router. Every route is scoped to
// the caller's church.
func TemplateRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTemplateController(db)

	g := router.Group("/templates", authMiddleware.AuthMiddleware(db))
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Post("/from-program/:program_id", ctrl.FromProgram)
	g.Get("/:id", ctrl.Get)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
	g.Post("/:id/apply", ctrl.Apply)
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"programpro_backend/internals/features/church/controller"
	helperAuth "programpro_backend/internals/helpers/auth"
	authMiddleware "programpro_backend/internals/middlewares/auth"
)

// ChurchRoutes mounts /api/church on router.
func ChurchRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewChurchController(db)

	g := router.Group("/church")
	g.Get("/info", ctrl.GetInfo)

	auth := authMiddleware.AuthMiddleware(db)
	g.Get("/settings", auth, ctrl.GetSettings)
	g.Put("/settings", auth,
		authMiddleware.OnlyRolesSlice("Only church admins can change settings", []string{helperAuth.RoleAdmin}),
		ctrl.UpdateSettings,
	)
}

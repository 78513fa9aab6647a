// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	churchRoute "programpro_backend/internals/features/church/route"
	programRoute "programpro_backend/internals/features/programs/program/route"
	templateRoute "programpro_backend/internals/features/templates/route"
	authRoute "programpro_backend/internals/features/users/auth/route"
	"programpro_backend/internals/middlewares"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== API =====================
	api := app.Group("/api", middlewares.GlobalRateLimiter())

	log.Println("[INFO] Mounting Auth routes...")
	authRoute.AuthRoutes(api, db)

	log.Println("[INFO] Mounting Church routes...")
	churchRoute.ChurchRoutes(api, db)

	log.Println("[INFO] Mounting Program routes...")
	programRoute.ProgramRoutes(api, db)

	log.Println("[INFO] Mounting Template routes...")
	templateRoute.TemplateRoutes(api, db)
}

// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolgrid_backend/internals/constants"
	"schoolgrid_backend/internals/middlewares"
	authMiddleware "schoolgrid_backend/internals/middlewares/auth"
	routeDetails "schoolgrid_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", authMiddleware.AuthMiddleware())

	// ===================== ADMIN (per school) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck + RenderLimiter)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("render grid"), constants.AdminAndOwner...),
		middlewares.RenderRateLimiter(),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Grid routes...")
	routeDetails.GridUserRoutes(private, db)
	routeDetails.GridAdminRoutes(admin, db)
}

// internals/route/details/grid_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	GridRoutes "schoolgrid_backend/internals/features/school/grids/route"
)

/* ===================== USER (PRIVATE) ===================== */
func GridUserRoutes(r fiber.Router, db *gorm.DB) {
	GridRoutes.GridUserRoutes(r, db)
}

/* ===================== ADMIN ===================== */
func GridAdminRoutes(r fiber.Router, db *gorm.DB) {
	GridRoutes.GridAdminRoutes(r, db)
}

// file: internals/features/school/grids/route/grid_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolgrid_backend/internals/constants"
	"schoolgrid_backend/internals/features/school/grids/controller"
	authMiddleware "schoolgrid_backend/internals/middlewares/auth"
)

// GridAdminRoutes — render grid dari payload (hasil solver, belum disimpan).
//
//	admin := app.Group("/api/a")
//	route.GridAdminRoutes(admin, db)
func GridAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.New(db, nil)
	g := admin.Group("/grids")

	g.Post("/timetable/render", ctl.RenderTimetable)
	g.Post("/seating/render", ctl.RenderSeating)
}

// GridUserRoutes — read-only, data diambil dari DB sesuai school di token.
func GridUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.New(db, nil)
	g := user.Group("/grids")

	g.Get("/timetable", ctl.SchoolTimetables)
	g.Get("/sections/:section_id/timetable", ctl.SectionTimetable)
	// denah ujian memuat data semua siswa → teacher ke atas
	g.Get("/exams/:exam_id/seating",
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("denah ujian"), constants.TeacherAndAbove...),
		ctl.ExamSeating,
	)
}

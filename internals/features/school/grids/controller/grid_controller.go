// file: internals/features/school/grids/controller/grid_controller.go
package controller

import (
	"context"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolgrid_backend/internals/configs"
	"schoolgrid_backend/internals/features/school/grids/dto"
	"schoolgrid_backend/internals/features/school/grids/repository"
	"schoolgrid_backend/internals/features/school/grids/service"
	helper "schoolgrid_backend/internals/helpers"
	"schoolgrid_backend/internals/helpers/authctx"
)

/* =======================================================
   CONTROLLER
   ======================================================= */

type GridController struct {
	Service  *service.GridService
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *GridController {
	return NewWithService(service.New(repository.New(db), configs.Grid), v)
}

func NewWithService(svc *service.GridService, v *validator.Validate) *GridController {
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}
	return &GridController{Service: svc, Validate: v}
}

func reqCtx(c *fiber.Ctx) context.Context {
	if uc := c.UserContext(); uc != nil {
		return uc
	}
	return context.Background()
}

// caller: user id dari token untuk log, "-" kalau tidak ada.
func caller(c *fiber.Ctx) string {
	id, err := authctx.GetUserIDFromToken(c)
	if err != nil {
		return "-"
	}
	return id.String()
}

// respond: findings tidak menggagalkan request kecuali ?strict=true.
func respond(c *fiber.Ctx, message string, data any, findings dto.FindingsResponse) error {
	if c.QueryBool("strict") && !findings.Empty() {
		return helper.JsonConflict(c, "Grid memiliki konflik / record ditolak", data)
	}
	return helper.JsonOK(c, message, data)
}

/* =======================================================
   ADMIN: render dari payload
   ======================================================= */

// POST /api/a/grids/timetable/render
func (ctl *GridController) RenderTimetable(c *fiber.Ctx) error {
	var req dto.RenderTimetableRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	grid, err := ctl.Service.RenderTimetable(req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return respond(c, "Timetable berhasil dirender", grid, grid.Findings)
}

// POST /api/a/grids/seating/render
func (ctl *GridController) RenderSeating(c *fiber.Ctx) error {
	var req dto.RenderSeatingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	grid, err := ctl.Service.RenderSeating(req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return respond(c, "Denah ujian berhasil dirender", grid, grid.Findings)
}

/* =======================================================
   USER: render dari database
   ======================================================= */

// GET /api/u/grids/sections/:section_id/timetable
func (ctl *GridController) SectionTimetable(c *fiber.Ctx) error {
	schoolID, err := authctx.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	sectionID, err := authctx.ParseUUIDParam(c, "section_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	cfg := ctl.Service.TimetableConfig(c.QueryInt("working_days"), c.QueryInt("periods_per_day"))
	grid, err := ctl.Service.SectionTimetable(reqCtx(c), schoolID, sectionID, cfg)
	if err != nil {
		log.Printf("[ERROR] section timetable %s (user=%s): %v", sectionID, caller(c), err)
		return helper.FromFiberError(c, err)
	}
	return respond(c, "Timetable section", grid, grid.Findings)
}

// GET /api/u/grids/timetable
func (ctl *GridController) SchoolTimetables(c *fiber.Ctx) error {
	schoolID, err := authctx.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	cfg := ctl.Service.TimetableConfig(c.QueryInt("working_days"), c.QueryInt("periods_per_day"))
	grids, err := ctl.Service.SchoolTimetables(reqCtx(c), schoolID, cfg)
	if err != nil {
		log.Printf("[ERROR] school timetables %s (user=%s): %v", schoolID, caller(c), err)
		return helper.FromFiberError(c, err)
	}

	merged := dto.FindingsResponse{}
	for _, g := range grids {
		merged.Rejected = append(merged.Rejected, g.Findings.Rejected...)
		merged.Duplicates = append(merged.Duplicates, g.Findings.Duplicates...)
		merged.OverCapacity = append(merged.OverCapacity, g.Findings.OverCapacity...)
	}
	return respond(c, "Timetable semua section", fiber.Map{"sections": grids, "total": len(grids)}, merged)
}

// GET /api/u/grids/exams/:exam_id/seating
func (ctl *GridController) ExamSeating(c *fiber.Ctx) error {
	schoolID, err := authctx.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	examID, err := authctx.ParseUUIDParam(c, "exam_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	grid, err := ctl.Service.ExamSeating(reqCtx(c), schoolID, examID)
	if err != nil {
		log.Printf("[ERROR] exam seating %s (user=%s): %v", examID, caller(c), err)
		return helper.FromFiberError(c, err)
	}
	return respond(c, "Denah ujian", grid, grid.Findings)
}

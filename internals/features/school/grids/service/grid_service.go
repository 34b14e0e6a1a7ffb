// file: internals/features/school/grids/service/grid_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"schoolgrid_backend/internals/configs"
	"schoolgrid_backend/internals/features/school/grids/dto"
	"schoolgrid_backend/internals/features/school/grids/engine"
	"schoolgrid_backend/internals/features/school/grids/model"
)

// Store: sumber data grid (diimplementasikan repository.GridRepository).
type Store interface {
	ListSectionSlots(ctx context.Context, schoolID, sectionID uuid.UUID) ([]model.TimetableSlotModel, error)
	ListSchoolSectionIDs(ctx context.Context, schoolID uuid.UUID) ([]uuid.UUID, error)
	ListSlotsForSections(ctx context.Context, schoolID uuid.UUID, sectionIDs []uuid.UUID) (map[uuid.UUID][]model.TimetableSlotModel, error)
	GetExam(ctx context.Context, schoolID, examID uuid.UUID) (model.ExamModel, error)
	ListExamRooms(ctx context.Context, examID uuid.UUID) ([]model.ExamRoomModel, error)
	ListExamSeats(ctx context.Context, examID uuid.UUID) ([]model.ExamSeatModel, error)
	LookupNames(ctx context.Context, schoolID uuid.UUID, subjectCodes, facultyIDs []string) (engine.MapResolver, error)
}

type GridService struct {
	Store    Store
	Defaults configs.GridDefaults
}

func New(store Store, defaults configs.GridDefaults) *GridService {
	return &GridService{Store: store, Defaults: defaults}
}

// TimetableConfig: nilai 0 jatuh ke default sekolah.
func (s *GridService) TimetableConfig(workingDays, periodsPerDay int) engine.TimetableConfig {
	if workingDays <= 0 {
		workingDays = s.Defaults.WorkingDays
	}
	if periodsPerDay <= 0 {
		periodsPerDay = s.Defaults.PeriodsPerDay
	}
	return engine.TimetableConfig{
		WorkingDays:   workingDays,
		PeriodsPerDay: periodsPerDay,
		Spans:         dto.SpansFromMap(s.Defaults.Spans),
	}
}

/* =========================
   Render dari payload
========================= */

func (s *GridService) RenderTimetable(req dto.RenderTimetableRequest) (dto.TimetableGridResponse, error) {
	cfg := req.Config()
	if cfg.Spans == nil {
		cfg.Spans = dto.SpansFromMap(s.Defaults.Spans)
	}
	res, err := engine.BuildTimetable(req.Raws(), cfg)
	if err != nil {
		return dto.TimetableGridResponse{}, badConfig(err)
	}
	return dto.FromTimetableResult(res), nil
}

func (s *GridService) RenderSeating(req dto.RenderSeatingRequest) (dto.SeatingGridResponse, error) {
	res, err := engine.BuildSeating(req.Raws(), req.Config())
	if err != nil {
		return dto.SeatingGridResponse{}, badConfig(err)
	}
	return dto.FromSeatingResult(res), nil
}

/* =========================
   Render dari database
========================= */

func (s *GridService) SectionTimetable(ctx context.Context, schoolID, sectionID uuid.UUID, cfg engine.TimetableConfig) (dto.TimetableGridResponse, error) {
	rows, err := s.Store.ListSectionSlots(ctx, schoolID, sectionID)
	if err != nil {
		return dto.TimetableGridResponse{}, fmt.Errorf("list section slots: %w", err)
	}
	resolver, err := s.resolverFor(ctx, schoolID, rows)
	if err != nil {
		return dto.TimetableGridResponse{}, err
	}

	out, err := renderRows(rows, cfg, resolver)
	if err != nil {
		return out, err
	}
	out.SectionID = sectionID.String()
	return out, nil
}

// SchoolTimetables merender semua section paralel, dibatasi GRID_CONCURRENCY.
// Urutan hasil mengikuti urutan section id.
func (s *GridService) SchoolTimetables(ctx context.Context, schoolID uuid.UUID, cfg engine.TimetableConfig) ([]dto.TimetableGridResponse, error) {
	if err := cfg.Validate(); err != nil {
		return nil, badConfig(err)
	}

	sectionIDs, err := s.Store.ListSchoolSectionIDs(ctx, schoolID)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	sort.Slice(sectionIDs, func(i, j int) bool { return sectionIDs[i].String() < sectionIDs[j].String() })

	bySection, err := s.Store.ListSlotsForSections(ctx, schoolID, sectionIDs)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	var all []model.TimetableSlotModel
	for _, id := range sectionIDs {
		all = append(all, bySection[id]...)
	}
	resolver, err := s.resolverFor(ctx, schoolID, all)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TimetableGridResponse, len(sectionIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.Defaults.Concurrency))
	for i, id := range sectionIDs {
		i, id := i, id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			grid, err := renderRows(bySection[id], cfg, resolver)
			if err != nil {
				return err
			}
			grid.SectionID = id.String()
			out[i] = grid
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Printf("[INFO] grid: %d section dirender untuk school %s", len(out), schoolID)
	return out, nil
}

func (s *GridService) ExamSeating(ctx context.Context, schoolID, examID uuid.UUID) (dto.SeatingGridResponse, error) {
	exam, err := s.Store.GetExam(ctx, schoolID, examID)
	if err != nil {
		return dto.SeatingGridResponse{}, err
	}
	rooms, err := s.Store.ListExamRooms(ctx, examID)
	if err != nil {
		return dto.SeatingGridResponse{}, fmt.Errorf("list exam rooms: %w", err)
	}
	seats, err := s.Store.ListExamSeats(ctx, examID)
	if err != nil {
		return dto.SeatingGridResponse{}, fmt.Errorf("list exam seats: %w", err)
	}

	codeByRoom := make(map[uuid.UUID]string, len(rooms))
	for _, r := range rooms {
		codeByRoom[r.ExamRoomID] = r.ExamRoomCode
	}
	raws := make([]engine.RawSeat, 0, len(seats))
	for _, st := range seats {
		raws = append(raws, dto.SeatFromModel(st, codeByRoom[st.ExamSeatRoomID]))
	}

	res, err := engine.BuildSeating(raws, dto.SeatingConfigFromModels(exam, rooms))
	if err != nil {
		return dto.SeatingGridResponse{}, badConfig(err)
	}
	out := dto.FromSeatingResult(res)
	out.ExamID = exam.ExamID.String()
	return out, nil
}

/* =========================
   Helpers
========================= */

func renderRows(rows []model.TimetableSlotModel, cfg engine.TimetableConfig, resolver engine.NameResolver) (dto.TimetableGridResponse, error) {
	raws := make([]engine.RawTimeSlot, 0, len(rows))
	for _, r := range rows {
		raws = append(raws, dto.TimeSlotFromModel(r))
	}
	res, err := engine.BuildTimetable(raws, cfg, engine.WithResolver(resolver))
	if err != nil {
		return dto.TimetableGridResponse{}, badConfig(err)
	}
	return dto.FromTimetableResult(res), nil
}

// resolverFor hanya query master kalau ada snapshot nama yang kosong.
func (s *GridService) resolverFor(ctx context.Context, schoolID uuid.UUID, rows []model.TimetableSlotModel) (engine.NameResolver, error) {
	codes := map[string]struct{}{}
	faculties := map[string]struct{}{}
	for _, r := range rows {
		if model.SnapshotString(r.TimetableSlotSnapshot, "subject_name") == "" && r.TimetableSlotSubjectCode != "" {
			codes[r.TimetableSlotSubjectCode] = struct{}{}
		}
		if r.TimetableSlotFacultyID != nil && model.SnapshotString(r.TimetableSlotSnapshot, "faculty_name") == "" {
			faculties[r.TimetableSlotFacultyID.String()] = struct{}{}
		}
	}
	if len(codes) == 0 && len(faculties) == 0 {
		return engine.MapResolver{}, nil
	}

	res, err := s.Store.LookupNames(ctx, schoolID, keys(codes), keys(faculties))
	if err != nil {
		return nil, fmt.Errorf("lookup names: %w", err)
	}
	return res, nil
}

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func badConfig(err error) error {
	if errors.Is(err, engine.ErrInvalidConfig) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}

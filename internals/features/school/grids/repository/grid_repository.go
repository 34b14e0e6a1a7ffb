// file: internals/features/school/grids/repository/grid_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"schoolgrid_backend/internals/features/school/grids/engine"
	"schoolgrid_backend/internals/features/school/grids/model"
)

// GridRepository hanya membaca. Engine tidak pernah menulis balik ke tabel.
type GridRepository struct{ DB *gorm.DB }

func New(db *gorm.DB) *GridRepository { return &GridRepository{DB: db} }

/* =========================
   Timetable
========================= */

func (r *GridRepository) ListSectionSlots(ctx context.Context, schoolID, sectionID uuid.UUID) ([]model.TimetableSlotModel, error) {
	var rows []model.TimetableSlotModel
	err := r.DB.WithContext(ctx).
		Where("timetable_slot_school_id = ? AND timetable_slot_section_id = ?", schoolID, sectionID).
		Order("timetable_slot_day_index ASC, timetable_slot_period_index ASC").
		Find(&rows).Error
	return rows, err
}

// ListSchoolSectionIDs: section yang punya minimal satu slot aktif.
func (r *GridRepository) ListSchoolSectionIDs(ctx context.Context, schoolID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.DB.WithContext(ctx).
		Model(&model.TimetableSlotModel{}).
		Where("timetable_slot_school_id = ?", schoolID).
		Distinct("timetable_slot_section_id").
		Order("timetable_slot_section_id").
		Pluck("timetable_slot_section_id", &ids).Error
	return ids, err
}

// ListSlotsForSections: satu query untuk banyak section, hasil dikelompokkan per section.
func (r *GridRepository) ListSlotsForSections(ctx context.Context, schoolID uuid.UUID, sectionIDs []uuid.UUID) (map[uuid.UUID][]model.TimetableSlotModel, error) {
	out := make(map[uuid.UUID][]model.TimetableSlotModel, len(sectionIDs))
	if len(sectionIDs) == 0 {
		return out, nil
	}
	ids := make([]string, 0, len(sectionIDs))
	for _, id := range sectionIDs {
		ids = append(ids, id.String())
	}

	var rows []model.TimetableSlotModel
	err := r.DB.WithContext(ctx).
		Where("timetable_slot_school_id = ?", schoolID).
		Where("timetable_slot_section_id::text = ANY(?)", pq.Array(ids)).
		Order("timetable_slot_day_index ASC, timetable_slot_period_index ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.TimetableSlotSectionID] = append(out[row.TimetableSlotSectionID], row)
	}
	return out, nil
}

/* =========================
   Exam seating
========================= */

func (r *GridRepository) GetExam(ctx context.Context, schoolID, examID uuid.UUID) (model.ExamModel, error) {
	var exam model.ExamModel
	err := r.DB.WithContext(ctx).
		Where("exam_id = ? AND exam_school_id = ?", examID, schoolID).
		First(&exam).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return exam, fiber.NewError(fiber.StatusNotFound, "Ujian tidak ditemukan")
	}
	return exam, err
}

func (r *GridRepository) ListExamRooms(ctx context.Context, examID uuid.UUID) ([]model.ExamRoomModel, error) {
	var rooms []model.ExamRoomModel
	err := r.DB.WithContext(ctx).
		Where("exam_room_exam_id = ?", examID).
		Order("exam_room_order ASC, exam_room_code ASC").
		Find(&rooms).Error
	return rooms, err
}

func (r *GridRepository) ListExamSeats(ctx context.Context, examID uuid.UUID) ([]model.ExamSeatModel, error) {
	var seats []model.ExamSeatModel
	err := r.DB.WithContext(ctx).
		Where("exam_seat_exam_id = ?", examID).
		Find(&seats).Error
	return seats, err
}

/* =========================
   Name lookup (fallback kalau snapshot kosong)
========================= */

// LookupNames mengisi resolver dari tabel master subjects & school_teachers.
func (r *GridRepository) LookupNames(ctx context.Context, schoolID uuid.UUID, subjectCodes, facultyIDs []string) (engine.MapResolver, error) {
	res := engine.MapResolver{
		Faculties: map[string]string{},
		Subjects:  map[string]string{},
		Students:  map[string]string{},
	}

	if len(subjectCodes) > 0 {
		var rows []struct {
			Code string `gorm:"column:code"`
			Name string `gorm:"column:name"`
		}
		q := `
SELECT subject_code AS code, subject_name AS name
FROM subjects
WHERE subject_school_id = ?
  AND subject_code = ANY(?)
  AND subject_deleted_at IS NULL`
		if err := r.DB.WithContext(ctx).Raw(q, schoolID, pq.Array(subjectCodes)).Scan(&rows).Error; err != nil {
			return res, err
		}
		for _, row := range rows {
			res.Subjects[row.Code] = row.Name
		}
	}

	if len(facultyIDs) > 0 {
		var rows []struct {
			ID   string `gorm:"column:id"`
			Name string `gorm:"column:name"`
		}
		q := `
SELECT school_teacher_id::text AS id, school_teacher_name AS name
FROM school_teachers
WHERE school_teacher_school_id = ?
  AND school_teacher_id::text = ANY(?)
  AND school_teacher_deleted_at IS NULL`
		if err := r.DB.WithContext(ctx).Raw(q, schoolID, pq.Array(facultyIDs)).Scan(&rows).Error; err != nil {
			return res, err
		}
		for _, row := range rows {
			res.Faculties[row.ID] = row.Name
		}
	}

	return res, nil
}

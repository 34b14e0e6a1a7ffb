// file: internals/features/school/grids/model/timetable_slot_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SubjectTypeEnum string

const (
	SubjectTypeTheory  SubjectTypeEnum = "theory"
	SubjectTypeLab     SubjectTypeEnum = "lab"
	SubjectTypeProject SubjectTypeEnum = "project"
)

// TimetableSlotModel: satu baris hasil solver timetable (hari × jam ke-).
// Grid dibangun dari snapshot tabel ini; tabel tidak pernah diubah oleh engine.
type TimetableSlotModel struct {
	TimetableSlotID uuid.UUID `gorm:"column:timetable_slot_id;type:uuid;default:gen_random_uuid();primaryKey" json:"timetable_slot_id"`

	// Tenant & section
	TimetableSlotSchoolID  uuid.UUID `gorm:"column:timetable_slot_school_id;type:uuid;not null;index" json:"timetable_slot_school_id"`
	TimetableSlotSectionID uuid.UUID `gorm:"column:timetable_slot_section_id;type:uuid;not null;index" json:"timetable_slot_section_id"`

	// Koordinat (0-based)
	TimetableSlotDayIndex    int `gorm:"column:timetable_slot_day_index;not null" json:"timetable_slot_day_index"`
	TimetableSlotPeriodIndex int `gorm:"column:timetable_slot_period_index;not null" json:"timetable_slot_period_index"`

	TimetableSlotSubjectCode string          `gorm:"column:timetable_slot_subject_code;type:varchar(40);not null" json:"timetable_slot_subject_code"`
	TimetableSlotSubjectType SubjectTypeEnum `gorm:"column:timetable_slot_subject_type;type:varchar(20);not null;default:'theory'" json:"timetable_slot_subject_type"`
	TimetableSlotIsTheory    *bool           `gorm:"column:timetable_slot_is_theory" json:"timetable_slot_is_theory,omitempty"`
	TimetableSlotBatchNumber *int            `gorm:"column:timetable_slot_batch_number" json:"timetable_slot_batch_number,omitempty"`

	TimetableSlotFacultyID *uuid.UUID `gorm:"column:timetable_slot_faculty_id;type:uuid" json:"timetable_slot_faculty_id,omitempty"`
	TimetableSlotRoomID    *uuid.UUID `gorm:"column:timetable_slot_room_id;type:uuid" json:"timetable_slot_room_id,omitempty"`

	// Snapshot nama (subject_name, faculty_name, room_name) diisi saat publish jadwal
	TimetableSlotSnapshot datatypes.JSONMap `gorm:"column:timetable_slot_snapshot;type:jsonb" json:"timetable_slot_snapshot,omitempty"`

	// Audit
	TimetableSlotCreatedAt time.Time      `gorm:"column:timetable_slot_created_at;type:timestamptz;not null;autoCreateTime" json:"timetable_slot_created_at"`
	TimetableSlotUpdatedAt time.Time      `gorm:"column:timetable_slot_updated_at;type:timestamptz;not null;autoUpdateTime" json:"timetable_slot_updated_at"`
	TimetableSlotDeletedAt gorm.DeletedAt `gorm:"column:timetable_slot_deleted_at;index" json:"timetable_slot_deleted_at,omitempty"`
}

func (TimetableSlotModel) TableName() string { return "timetable_slots" }

// SnapshotString membaca key string dari jsonb snapshot.
func SnapshotString(m datatypes.JSONMap, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

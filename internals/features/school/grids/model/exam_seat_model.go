// file: internals/features/school/grids/model/exam_seat_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ExamTypeEnum string

const (
	ExamTypeExternal ExamTypeEnum = "external"
	ExamTypeInternal ExamTypeEnum = "internal"
)

type ExamModel struct {
	ExamID       uuid.UUID    `gorm:"column:exam_id;type:uuid;default:gen_random_uuid();primaryKey" json:"exam_id"`
	ExamSchoolID uuid.UUID    `gorm:"column:exam_school_id;type:uuid;not null;index" json:"exam_school_id"`
	ExamName     string       `gorm:"column:exam_name;type:varchar(160);not null" json:"exam_name"`
	ExamType     ExamTypeEnum `gorm:"column:exam_type;type:varchar(20);not null;default:'external'" json:"exam_type"`

	ExamCreatedAt time.Time      `gorm:"column:exam_created_at;type:timestamptz;not null;autoCreateTime" json:"exam_created_at"`
	ExamUpdatedAt time.Time      `gorm:"column:exam_updated_at;type:timestamptz;not null;autoUpdateTime" json:"exam_updated_at"`
	ExamDeletedAt gorm.DeletedAt `gorm:"column:exam_deleted_at;index" json:"exam_deleted_at,omitempty"`
}

func (ExamModel) TableName() string { return "exams" }

// ExamRoomModel: ruangan yang dipakai satu ujian, lengkap dengan denah meja.
type ExamRoomModel struct {
	ExamRoomID     uuid.UUID `gorm:"column:exam_room_id;type:uuid;default:gen_random_uuid();primaryKey" json:"exam_room_id"`
	ExamRoomExamID uuid.UUID `gorm:"column:exam_room_exam_id;type:uuid;not null;index" json:"exam_room_exam_id"`

	ExamRoomCode    string `gorm:"column:exam_room_code;type:varchar(40);not null" json:"exam_room_code"`
	ExamRoomRows    int    `gorm:"column:exam_room_rows;not null" json:"exam_room_rows"`
	ExamRoomColumns int    `gorm:"column:exam_room_columns;not null" json:"exam_room_columns"`
	ExamRoomOrder   int    `gorm:"column:exam_room_order;not null;default:0" json:"exam_room_order"`

	ExamRoomCreatedAt time.Time      `gorm:"column:exam_room_created_at;type:timestamptz;not null;autoCreateTime" json:"exam_room_created_at"`
	ExamRoomDeletedAt gorm.DeletedAt `gorm:"column:exam_room_deleted_at;index" json:"exam_room_deleted_at,omitempty"`
}

func (ExamRoomModel) TableName() string { return "exam_rooms" }

type ExamSeatModel struct {
	ExamSeatID     uuid.UUID `gorm:"column:exam_seat_id;type:uuid;default:gen_random_uuid();primaryKey" json:"exam_seat_id"`
	ExamSeatExamID uuid.UUID `gorm:"column:exam_seat_exam_id;type:uuid;not null;index" json:"exam_seat_exam_id"`
	ExamSeatRoomID uuid.UUID `gorm:"column:exam_seat_room_id;type:uuid;not null;index" json:"exam_seat_room_id"`

	ExamSeatRow    *int `gorm:"column:exam_seat_row" json:"exam_seat_row"`
	ExamSeatColumn *int `gorm:"column:exam_seat_column" json:"exam_seat_column"`

	ExamSeatStudentID   uuid.UUID `gorm:"column:exam_seat_student_id;type:uuid;not null" json:"exam_seat_student_id"`
	ExamSeatStudentUSN  *string   `gorm:"column:exam_seat_student_usn;type:varchar(40)" json:"exam_seat_student_usn,omitempty"`
	ExamSeatSubjectCode string    `gorm:"column:exam_seat_subject_code;type:varchar(40);not null" json:"exam_seat_subject_code"`

	// Snapshot nama (student_name, subject_name)
	ExamSeatSnapshot datatypes.JSONMap `gorm:"column:exam_seat_snapshot;type:jsonb" json:"exam_seat_snapshot,omitempty"`

	ExamSeatCreatedAt time.Time      `gorm:"column:exam_seat_created_at;type:timestamptz;not null;autoCreateTime" json:"exam_seat_created_at"`
	ExamSeatDeletedAt gorm.DeletedAt `gorm:"column:exam_seat_deleted_at;index" json:"exam_seat_deleted_at,omitempty"`
}

func (ExamSeatModel) TableName() string { return "exam_seats" }

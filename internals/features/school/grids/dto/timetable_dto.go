// file: internals/features/school/grids/dto/timetable_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	"schoolgrid_backend/internals/features/school/grids/engine"
	"schoolgrid_backend/internals/features/school/grids/model"
)

/* =========================================================
   1) REQUESTS
   ========================================================= */

// Validasi di sini hanya untuk envelope. Record per slot divalidasi engine
// supaya satu record rusak tidak menggagalkan seluruh grid.
type RenderTimetableRequest struct {
	WorkingDays   int                    `json:"working_days"    yaml:"working_days"    validate:"required,min=1,max=7"`
	PeriodsPerDay int                    `json:"periods_per_day" yaml:"periods_per_day" validate:"required,min=1,max=16"`
	Spans         map[string]int         `json:"spans,omitempty" yaml:"spans,omitempty" validate:"omitempty,dive,keys,oneof=LAB PROJECT CAPSTONE lab project capstone,endkeys,min=1,max=8"`
	Slots         []TimetableSlotRequest `json:"slots"           yaml:"slots"           validate:"max=5000"`
}

type TimetableSlotRequest struct {
	Day         *int   `json:"day"                    yaml:"day"`
	Period      *int   `json:"period"                 yaml:"period"`
	SubjectCode string `json:"subject_code"           yaml:"subject_code"`
	SubjectName string `json:"subject_name,omitempty" yaml:"subject_name,omitempty"`
	SubjectType string `json:"subject_type"           yaml:"subject_type"`
	FacultyID   string `json:"faculty_id,omitempty"   yaml:"faculty_id,omitempty"`
	FacultyName string `json:"faculty_name,omitempty" yaml:"faculty_name,omitempty"`
	SectionID   string `json:"section_id,omitempty"   yaml:"section_id,omitempty"`
	RoomID      string `json:"room_id,omitempty"      yaml:"room_id,omitempty"`
	BatchNumber *int   `json:"batch_number,omitempty" yaml:"batch_number,omitempty"`
	IsTheory    *bool  `json:"is_theory,omitempty"    yaml:"is_theory,omitempty"`
}

func (r TimetableSlotRequest) ToRaw() engine.RawTimeSlot {
	return engine.RawTimeSlot{
		Day:         r.Day,
		Period:      r.Period,
		SubjectCode: r.SubjectCode,
		SubjectName: r.SubjectName,
		SubjectType: r.SubjectType,
		FacultyID:   r.FacultyID,
		FacultyName: r.FacultyName,
		SectionID:   r.SectionID,
		RoomID:      r.RoomID,
		BatchNumber: r.BatchNumber,
		IsTheory:    r.IsTheory,
	}
}

func (r RenderTimetableRequest) Config() engine.TimetableConfig {
	return engine.TimetableConfig{
		WorkingDays:   r.WorkingDays,
		PeriodsPerDay: r.PeriodsPerDay,
		Spans:         SpansFromMap(r.Spans),
	}
}

func (r RenderTimetableRequest) Raws() []engine.RawTimeSlot {
	out := make([]engine.RawTimeSlot, 0, len(r.Slots))
	for _, s := range r.Slots {
		out = append(out, s.ToRaw())
	}
	return out
}

// SpansFromMap: key tidak dikenal diabaikan; nil kalau kosong (pakai default engine).
func SpansFromMap(in map[string]int) engine.Spans {
	if len(in) == 0 {
		return nil
	}
	out := engine.DefaultSpans()
	for k, v := range in {
		if st, ok := engine.ParseSubjectType(k); ok && st != engine.SubjectTheory {
			out[st] = v
		}
	}
	return out
}

// TimeSlotFromModel: baris DB → record mentah engine. Nama diambil dari snapshot.
func TimeSlotFromModel(m model.TimetableSlotModel) engine.RawTimeSlot {
	day := m.TimetableSlotDayIndex
	period := m.TimetableSlotPeriodIndex
	return engine.RawTimeSlot{
		Day:         &day,
		Period:      &period,
		SubjectCode: m.TimetableSlotSubjectCode,
		SubjectName: model.SnapshotString(m.TimetableSlotSnapshot, "subject_name"),
		SubjectType: strings.ToUpper(string(m.TimetableSlotSubjectType)),
		FacultyID:   uuidString(m.TimetableSlotFacultyID),
		FacultyName: model.SnapshotString(m.TimetableSlotSnapshot, "faculty_name"),
		SectionID:   m.TimetableSlotSectionID.String(),
		RoomID:      uuidString(m.TimetableSlotRoomID),
		BatchNumber: m.TimetableSlotBatchNumber,
		IsTheory:    m.TimetableSlotIsTheory,
	}
}

func uuidString(id *uuid.UUID) string {
	if id == nil || *id == uuid.Nil {
		return ""
	}
	return id.String()
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

type SlotOccupantResponse struct {
	SubjectCode  string `json:"subject_code"`
	SubjectName  string `json:"subject_name,omitempty"`
	SubjectType  string `json:"subject_type"`
	FacultyID    string `json:"faculty_id,omitempty"`
	FacultyName  string `json:"faculty_name,omitempty"`
	SectionID    string `json:"section_id,omitempty"`
	RoomID       string `json:"room_id,omitempty"`
	BatchNumber  *int   `json:"batch_number,omitempty"`
	IsTheory     bool   `json:"is_theory"`
	Part         int    `json:"part"`
	Span         int    `json:"span"`
	Continuation bool   `json:"is_continuation"`
}

type SlotCellResponse struct {
	Day            int                    `json:"day"`
	Period         int                    `json:"period"`
	Classification string                 `json:"classification"`
	Occupants      []SlotOccupantResponse `json:"occupants"`
	Continued      []SlotOccupantResponse `json:"continued,omitempty"`
	Fresh          []SlotOccupantResponse `json:"fresh,omitempty"`
}

type TimetableDayResponse struct {
	Day   int                `json:"day"`
	Cells []SlotCellResponse `json:"cells"`
}

type TimetableGridResponse struct {
	WorkingDays   int                    `json:"working_days"`
	PeriodsPerDay int                    `json:"periods_per_day"`
	SectionID     string                 `json:"section_id,omitempty"`
	Days          []TimetableDayResponse `json:"days"`
	Findings      FindingsResponse       `json:"findings"`
}

func fromOccupants(in []engine.SlotOccupant) []SlotOccupantResponse {
	out := make([]SlotOccupantResponse, 0, len(in))
	for _, o := range in {
		out = append(out, SlotOccupantResponse{
			SubjectCode:  o.SubjectCode,
			SubjectName:  o.SubjectName,
			SubjectType:  string(o.SubjectType),
			FacultyID:    o.FacultyID,
			FacultyName:  o.FacultyName,
			SectionID:    o.SectionID,
			RoomID:       o.RoomID,
			BatchNumber:  o.BatchNumber,
			IsTheory:     o.IsTheory,
			Part:         o.Part,
			Span:         o.Span,
			Continuation: o.IsContinuation(),
		})
	}
	return out
}

func FromSlotCell(cell engine.SlotCell) SlotCellResponse {
	out := SlotCellResponse{
		Day:            cell.Coord.Day,
		Period:         cell.Coord.Period,
		Classification: string(cell.Content.Classification()),
		Occupants:      fromOccupants(cell.Content.Occupants()),
	}
	switch c := cell.Content.(type) {
	case engine.ContinuationSlot:
		out.Continued = fromOccupants(c.Continued)
		out.Fresh = fromOccupants(c.Fresh)
	case engine.EmptySlot, engine.StartSlot, engine.ParallelSlot:
	}
	return out
}

func FromTimetableResult(res engine.TimetableResult) TimetableGridResponse {
	days := make([]TimetableDayResponse, 0, len(res.Days))
	for _, d := range res.Days {
		cells := make([]SlotCellResponse, 0, len(d.Cells))
		for _, c := range d.Cells {
			cells = append(cells, FromSlotCell(c))
		}
		days = append(days, TimetableDayResponse{Day: d.Day, Cells: cells})
	}
	return TimetableGridResponse{
		WorkingDays:   res.Config.WorkingDays,
		PeriodsPerDay: res.Config.PeriodsPerDay,
		Days:          days,
		Findings:      FromFindings(res.Findings),
	}
}

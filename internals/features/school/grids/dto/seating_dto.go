// file: internals/features/school/grids/dto/seating_dto.go
package dto

import (
	"strings"

	"schoolgrid_backend/internals/features/school/grids/engine"
	"schoolgrid_backend/internals/features/school/grids/model"
)

/* =========================================================
   1) REQUESTS
   ========================================================= */

type RenderSeatingRequest struct {
	ExamType string              `json:"exam_type" yaml:"exam_type" validate:"required,oneof=EXTERNAL INTERNAL external internal"`
	Rooms    []RoomLayoutRequest `json:"rooms"     yaml:"rooms"     validate:"required,min=1,max=100,dive"`
	Seats    []SeatRequest       `json:"seats"     yaml:"seats"     validate:"max=20000"`
}

type RoomLayoutRequest struct {
	RoomID  string `json:"room_id" yaml:"room_id" validate:"required,max=40"`
	Rows    int    `json:"rows"    yaml:"rows"    validate:"required,min=1,max=100"`
	Columns int    `json:"columns" yaml:"columns" validate:"required,min=1,max=100"`
}

type SeatRequest struct {
	RoomID      string `json:"room_id"                yaml:"room_id"`
	Row         *int   `json:"row"                    yaml:"row"`
	Column      *int   `json:"column"                 yaml:"column"`
	StudentID   string `json:"student_id"             yaml:"student_id"`
	StudentName string `json:"student_name,omitempty" yaml:"student_name,omitempty"`
	SubjectCode string `json:"subject_code"           yaml:"subject_code"`
	SubjectName string `json:"subject_name,omitempty" yaml:"subject_name,omitempty"`
}

func (r SeatRequest) ToRaw() engine.RawSeat {
	return engine.RawSeat{
		RoomID:      r.RoomID,
		Row:         r.Row,
		Column:      r.Column,
		StudentID:   r.StudentID,
		StudentName: r.StudentName,
		SubjectCode: r.SubjectCode,
		SubjectName: r.SubjectName,
	}
}

func (r RenderSeatingRequest) Config() engine.SeatingConfig {
	rooms := make([]engine.RoomLayout, 0, len(r.Rooms))
	for _, room := range r.Rooms {
		rooms = append(rooms, engine.RoomLayout{RoomID: room.RoomID, Rows: room.Rows, Columns: room.Columns})
	}
	return engine.SeatingConfig{
		ExamType: engine.ExamType(strings.ToUpper(strings.TrimSpace(r.ExamType))),
		Rooms:    rooms,
	}
}

func (r RenderSeatingRequest) Raws() []engine.RawSeat {
	out := make([]engine.RawSeat, 0, len(r.Seats))
	for _, s := range r.Seats {
		out = append(out, s.ToRaw())
	}
	return out
}

// SeatingConfigFromModels: urutan ruangan mengikuti exam_room_order.
func SeatingConfigFromModels(exam model.ExamModel, rooms []model.ExamRoomModel) engine.SeatingConfig {
	layouts := make([]engine.RoomLayout, 0, len(rooms))
	for _, r := range rooms {
		layouts = append(layouts, engine.RoomLayout{
			RoomID:  r.ExamRoomCode,
			Rows:    r.ExamRoomRows,
			Columns: r.ExamRoomColumns,
		})
	}
	return engine.SeatingConfig{
		ExamType: engine.ExamType(strings.ToUpper(string(exam.ExamType))),
		Rooms:    layouts,
	}
}

// SeatFromModel: roomCode = kode ruangan untuk exam_seat_room_id (kosong kalau ruangan tidak ditemukan).
// Student id pakai USN kalau ada.
func SeatFromModel(m model.ExamSeatModel, roomCode string) engine.RawSeat {
	studentID := m.ExamSeatStudentID.String()
	if m.ExamSeatStudentUSN != nil && strings.TrimSpace(*m.ExamSeatStudentUSN) != "" {
		studentID = *m.ExamSeatStudentUSN
	}
	return engine.RawSeat{
		RoomID:      roomCode,
		Row:         m.ExamSeatRow,
		Column:      m.ExamSeatColumn,
		StudentID:   studentID,
		StudentName: model.SnapshotString(m.ExamSeatSnapshot, "student_name"),
		SubjectCode: m.ExamSeatSubjectCode,
		SubjectName: model.SnapshotString(m.ExamSeatSnapshot, "subject_name"),
	}
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

type SeatOccupantResponse struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name,omitempty"`
	SubjectCode string `json:"subject_code"`
	SubjectName string `json:"subject_name,omitempty"`
}

type SeatCellResponse struct {
	Row            int                    `json:"row"`
	Column         int                    `json:"column"`
	Classification string                 `json:"classification"`
	Occupants      []SeatOccupantResponse `json:"occupants"`
}

type RoomGridResponse struct {
	RoomID  string               `json:"room_id"`
	Rows    int                  `json:"rows"`
	Columns int                  `json:"columns"`
	Cells   [][]SeatCellResponse `json:"cells"`
}

type SeatingGridResponse struct {
	ExamID   string             `json:"exam_id,omitempty"`
	ExamType string             `json:"exam_type"`
	Rooms    []RoomGridResponse `json:"rooms"`
	Findings FindingsResponse   `json:"findings"`
}

func FromSeatCell(cell engine.SeatCell) SeatCellResponse {
	occ := make([]SeatOccupantResponse, 0, len(cell.Occupants))
	for _, s := range cell.Occupants {
		occ = append(occ, SeatOccupantResponse{
			StudentID:   s.StudentID,
			StudentName: s.StudentName,
			SubjectCode: s.SubjectCode,
			SubjectName: s.SubjectName,
		})
	}
	return SeatCellResponse{
		Row:            cell.Coord.Row,
		Column:         cell.Coord.Column,
		Classification: string(cell.Classification),
		Occupants:      occ,
	}
}

func FromSeatingResult(res engine.SeatingResult) SeatingGridResponse {
	rooms := make([]RoomGridResponse, 0, len(res.Rooms))
	for _, room := range res.Rooms {
		rows := make([][]SeatCellResponse, 0, len(room.Rows))
		for _, row := range room.Rows {
			cells := make([]SeatCellResponse, 0, len(row))
			for _, c := range row {
				cells = append(cells, FromSeatCell(c))
			}
			rows = append(rows, cells)
		}
		rooms = append(rooms, RoomGridResponse{
			RoomID:  room.Layout.RoomID,
			Rows:    room.Layout.Rows,
			Columns: room.Layout.Columns,
			Cells:   rows,
		})
	}
	return SeatingGridResponse{
		ExamType: string(res.ExamType),
		Rooms:    rooms,
		Findings: FromFindings(res.Findings),
	}
}

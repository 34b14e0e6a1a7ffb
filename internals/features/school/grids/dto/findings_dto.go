// file: internals/features/school/grids/dto/findings_dto.go
package dto

import "schoolgrid_backend/internals/features/school/grids/engine"

type RejectedRecordResponse struct {
	Index  int    `json:"index"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type DuplicateResponse struct {
	Day     *int   `json:"day,omitempty"`
	Period  *int   `json:"period,omitempty"`
	RoomID  string `json:"room_id,omitempty"`
	Row     *int   `json:"row,omitempty"`
	Column  *int   `json:"column,omitempty"`
	Key     string `json:"key"`
	Count   int    `json:"count"`
	Message string `json:"message"`
}

type OverCapacityResponse struct {
	RoomID        string `json:"room_id"`
	Row           int    `json:"row"`
	Column        int    `json:"column"`
	ExamType      string `json:"exam_type"`
	Capacity      int    `json:"capacity"`
	Occupants     int    `json:"occupants"`
	SharedSubject string `json:"shared_subject,omitempty"`
	Message       string `json:"message"`
}

type FindingsResponse struct {
	Rejected     []RejectedRecordResponse `json:"rejected"`
	Duplicates   []DuplicateResponse      `json:"duplicates"`
	OverCapacity []OverCapacityResponse   `json:"over_capacity"`
	HasConflicts bool                     `json:"has_conflicts"`
}

func (f FindingsResponse) Empty() bool {
	return len(f.Rejected) == 0 && len(f.Duplicates) == 0 && len(f.OverCapacity) == 0
}

func FromFindings(f engine.Findings) FindingsResponse {
	out := FindingsResponse{
		Rejected:     make([]RejectedRecordResponse, 0, len(f.Rejected)),
		Duplicates:   make([]DuplicateResponse, 0, len(f.Duplicates)),
		OverCapacity: make([]OverCapacityResponse, 0, len(f.OverCapacity)),
		HasConflicts: f.HasConflicts(),
	}
	for _, r := range f.Rejected {
		out.Rejected = append(out.Rejected, RejectedRecordResponse{Index: r.Index, Field: r.Err.Field, Reason: r.Err.Reason})
	}
	for i := range f.Duplicates {
		d := f.Duplicates[i]
		resp := DuplicateResponse{Key: d.Key, Count: d.Count, Message: d.Error()}
		if d.Slot != nil {
			day, period := d.Slot.Day, d.Slot.Period
			resp.Day, resp.Period = &day, &period
		}
		if d.Seat != nil {
			row, col := d.Seat.Row, d.Seat.Column
			resp.RoomID, resp.Row, resp.Column = d.Seat.Room, &row, &col
		}
		out.Duplicates = append(out.Duplicates, resp)
	}
	for i := range f.OverCapacity {
		o := f.OverCapacity[i]
		out.OverCapacity = append(out.OverCapacity, OverCapacityResponse{
			RoomID:        o.Seat.Room,
			Row:           o.Seat.Row,
			Column:        o.Seat.Column,
			ExamType:      string(o.ExamType),
			Capacity:      o.Capacity,
			Occupants:     o.Occupants,
			SharedSubject: o.SharedSubject,
			Message:       o.Error(),
		})
	}
	return out
}

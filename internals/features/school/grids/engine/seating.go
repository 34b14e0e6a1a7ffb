// file: internals/features/school/grids/engine/seating.go
package engine

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type ExamType string

const (
	ExamExternal ExamType = "EXTERNAL"
	ExamInternal ExamType = "INTERNAL"
)

func ParseExamType(s string) (ExamType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "EXTERNAL":
		return ExamExternal, true
	case "INTERNAL":
		return ExamInternal, true
	}
	return "", false
}

// Capacity: jumlah peserta maksimum per meja.
func (t ExamType) Capacity() int {
	if t == ExamInternal {
		return 2
	}
	return 1
}

type RoomLayout struct {
	RoomID  string
	Rows    int
	Columns int
}

type SeatingConfig struct {
	ExamType ExamType
	Rooms    []RoomLayout
}

func (c SeatingConfig) Validate() error {
	if _, ok := ParseExamType(string(c.ExamType)); !ok {
		return fmt.Errorf("%w: unknown exam_type %q", ErrInvalidConfig, c.ExamType)
	}
	if len(c.Rooms) == 0 {
		return fmt.Errorf("%w: at least one room is required", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(c.Rooms))
	for _, r := range c.Rooms {
		id := strings.TrimSpace(r.RoomID)
		if id == "" {
			return fmt.Errorf("%w: room_id is required", ErrInvalidConfig)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: room %q listed twice", ErrInvalidConfig, id)
		}
		seen[id] = struct{}{}
		if r.Rows <= 0 || r.Columns <= 0 {
			return fmt.Errorf("%w: room %q needs rows and columns > 0", ErrInvalidConfig, id)
		}
	}
	return nil
}

func (c SeatingConfig) room(id string) (RoomLayout, bool) {
	for _, r := range c.Rooms {
		if strings.TrimSpace(r.RoomID) == id {
			return r, true
		}
	}
	return RoomLayout{}, false
}

type Seat struct {
	RoomID      string
	Row         int
	Column      int
	StudentID   string
	StudentName string
	SubjectCode string
	SubjectName string
}

func (s Seat) Coord() SeatCoord { return SeatCoord{Room: s.RoomID, Row: s.Row, Column: s.Column} }

type RawSeat struct {
	RoomID      string
	Row         *int
	Column      *int
	StudentID   string
	StudentName string
	SubjectCode string
	SubjectName string
}

// NormalizeSeat memvalidasi satu seat terhadap layout ruangan di cfg.
func NormalizeSeat(raw RawSeat, cfg SeatingConfig) (Seat, error) {
	roomID := strings.TrimSpace(raw.RoomID)
	if roomID == "" {
		return Seat{}, invalid("room_id", "missing")
	}
	layout, ok := cfg.room(roomID)
	if !ok {
		return Seat{}, invalid("room_id", "room %q is not part of this exam", roomID)
	}
	if raw.Row == nil {
		return Seat{}, invalid("row", "missing")
	}
	if *raw.Row < 0 || *raw.Row >= layout.Rows {
		return Seat{}, invalid("row", "%d out of range [0,%d)", *raw.Row, layout.Rows)
	}
	if raw.Column == nil {
		return Seat{}, invalid("column", "missing")
	}
	if *raw.Column < 0 || *raw.Column >= layout.Columns {
		return Seat{}, invalid("column", "%d out of range [0,%d)", *raw.Column, layout.Columns)
	}
	studentID := strings.TrimSpace(raw.StudentID)
	if studentID == "" {
		return Seat{}, invalid("student_id", "missing")
	}
	code := strings.TrimSpace(raw.SubjectCode)
	if code == "" {
		return Seat{}, invalid("subject_code", "missing")
	}
	return Seat{
		RoomID:      roomID,
		Row:         *raw.Row,
		Column:      *raw.Column,
		StudentID:   studentID,
		StudentName: strings.TrimSpace(raw.StudentName),
		SubjectCode: code,
		SubjectName: strings.TrimSpace(raw.SubjectName),
	}, nil
}

func compareSeats(a, b Seat) int {
	if c := strings.Compare(a.SubjectCode, b.SubjectCode); c != 0 {
		return c
	}
	if c := strings.Compare(a.StudentID, b.StudentID); c != 0 {
		return c
	}
	if c := strings.Compare(a.StudentName, b.StudentName); c != 0 {
		return c
	}
	return strings.Compare(a.SubjectName, b.SubjectName)
}

// SortSeats: subject code, lalu student id.
func SortSeats(seats []Seat) {
	slices.SortStableFunc(seats, compareSeats)
}

// CheckCapacity mengembalikan *OverCapacityError kalau meja kelebihan isi
// atau (INTERNAL) dua peserta satu meja dari mapel yang sama.
func CheckCapacity(coord SeatCoord, examType ExamType, occupants []Seat) error {
	limit := examType.Capacity()
	if len(occupants) > limit {
		return &OverCapacityError{Seat: coord, ExamType: examType, Capacity: limit, Occupants: len(occupants)}
	}
	if examType == ExamInternal {
		seen := make(map[string]struct{}, len(occupants))
		for _, s := range occupants {
			if _, dup := seen[s.SubjectCode]; dup {
				return &OverCapacityError{
					Seat: coord, ExamType: examType, Capacity: limit,
					Occupants: len(occupants), SharedSubject: s.SubjectCode,
				}
			}
			seen[s.SubjectCode] = struct{}{}
		}
	}
	return nil
}

func seatDuplicates(coord SeatCoord, occupants []Seat) []DuplicateAssignmentError {
	if len(occupants) < 2 {
		return nil
	}
	counts := make(map[string]int, len(occupants))
	var order []string
	for _, s := range occupants {
		if counts[s.StudentID] == 0 {
			order = append(order, s.StudentID)
		}
		counts[s.StudentID]++
	}
	slices.Sort(order)

	var out []DuplicateAssignmentError
	for _, id := range order {
		if counts[id] < 2 {
			continue
		}
		c := coord
		out = append(out, DuplicateAssignmentError{Seat: &c, Key: id, Count: counts[id]})
	}
	return out
}

/* =========================
   Materializer
========================= */

type SeatCell struct {
	Coord          SeatCoord
	Classification Classification
	Occupants      []Seat
}

type RoomGrid struct {
	Layout RoomLayout
	Rows   [][]SeatCell
}

type SeatingResult struct {
	ExamType ExamType
	Rooms    []RoomGrid
	Findings Findings
}

// Cell mengambil sel di koordinat tertentu.
func (r SeatingResult) Cell(c SeatCoord) (SeatCell, bool) {
	for _, room := range r.Rooms {
		if room.Layout.RoomID != c.Room {
			continue
		}
		if c.Row < 0 || c.Row >= len(room.Rows) || c.Column < 0 || c.Column >= len(room.Rows[c.Row]) {
			return SeatCell{}, false
		}
		return room.Rows[c.Row][c.Column], true
	}
	return SeatCell{}, false
}

func seatClassification(n int) Classification {
	switch {
	case n == 0:
		return ClassEmpty
	case n == 1:
		return ClassStart
	default:
		return ClassParallel
	}
}

// BuildSeating membangun grid per ruangan (urut sesuai cfg.Rooms), total
// atas rows × columns tiap ruangan. Over-capacity tetap dirender lengkap.
func BuildSeating(raws []RawSeat, cfg SeatingConfig, opts ...Option) (SeatingResult, error) {
	if err := cfg.Validate(); err != nil {
		return SeatingResult{}, err
	}
	examType, _ := ParseExamType(string(cfg.ExamType))
	cfg.ExamType = examType
	o := buildOptions(opts)

	findings := newFindings()
	seats := make([]Seat, 0, len(raws))
	for i, raw := range raws {
		s, err := NormalizeSeat(raw, cfg)
		if err != nil {
			findings.reject(i, err)
			continue
		}
		seats = append(seats, o.resolveSeat(s))
	}

	idx := Index(seats, Seat.Coord)

	rooms := make([]RoomGrid, 0, len(cfg.Rooms))
	for _, layout := range cfg.Rooms {
		layout.RoomID = strings.TrimSpace(layout.RoomID)
		grid := RoomGrid{Layout: layout, Rows: make([][]SeatCell, layout.Rows)}
		for r := 0; r < layout.Rows; r++ {
			row := make([]SeatCell, layout.Columns)
			for c := 0; c < layout.Columns; c++ {
				coord := SeatCoord{Room: layout.RoomID, Row: r, Column: c}
				occ := idx[coord]
				SortSeats(occ)
				findings.Duplicates = append(findings.Duplicates, seatDuplicates(coord, occ)...)
				var oc *OverCapacityError
				if errors.As(CheckCapacity(coord, examType, occ), &oc) {
					findings.OverCapacity = append(findings.OverCapacity, *oc)
				}
				row[c] = SeatCell{Coord: coord, Classification: seatClassification(len(occ)), Occupants: occ}
			}
			grid.Rows[r] = row
		}
		rooms = append(rooms, grid)
	}

	return SeatingResult{ExamType: examType, Rooms: rooms, Findings: findings}, nil
}

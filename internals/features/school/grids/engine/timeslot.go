// file: internals/features/school/grids/engine/timeslot.go
package engine

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

type SubjectType string

const (
	SubjectTheory  SubjectType = "THEORY"
	SubjectLab     SubjectType = "LAB"
	SubjectProject SubjectType = "PROJECT"
)

// ParseSubjectType menerima case apa pun; CAPSTONE = PROJECT.
func ParseSubjectType(s string) (SubjectType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "THEORY":
		return SubjectTheory, true
	case "LAB":
		return SubjectLab, true
	case "PROJECT", "CAPSTONE":
		return SubjectProject, true
	}
	return "", false
}

// rank: theory dulu, lab, project paling akhir.
func (t SubjectType) rank() int {
	switch t {
	case SubjectTheory:
		return 0
	case SubjectLab:
		return 1
	case SubjectProject:
		return 2
	}
	return 3
}

// Spans: panjang blok (jumlah jam) per tipe sesi. Blok yang sudah mencapai
// span-nya tidak dilanjutkan lagi; record berikutnya dengan kode (dan batch)
// yang sama memulai blok baru. THEORY selalu 1.
type Spans map[SubjectType]int

func DefaultSpans() Spans {
	return Spans{
		SubjectTheory:  1,
		SubjectLab:     2,
		SubjectProject: 3,
	}
}

func (s Spans) of(t SubjectType) int {
	if t == SubjectTheory {
		return 1
	}
	if n, ok := s[t]; ok && n > 0 {
		return n
	}
	return DefaultSpans()[t]
}

// TimeSlot adalah record timetable yang sudah dinormalisasi.
type TimeSlot struct {
	Day         int
	Period      int
	SubjectCode string
	SubjectName string
	SubjectType SubjectType
	FacultyID   string
	FacultyName string
	SectionID   string
	RoomID      string
	BatchNumber *int
	IsTheory    bool
}

func (s TimeSlot) Coord() SlotCoord { return SlotCoord{Day: s.Day, Period: s.Period} }

// Batch: tanpa batch dianggap 0.
func (s TimeSlot) Batch() int {
	if s.BatchNumber == nil {
		return 0
	}
	return *s.BatchNumber
}

// RawTimeSlot: bentuk mentah dari data-fetch layer. Pointer = boleh kosong.
type RawTimeSlot struct {
	Day         *int
	Period      *int
	SubjectCode string
	SubjectName string
	SubjectType string
	FacultyID   string
	FacultyName string
	SectionID   string
	RoomID      string
	BatchNumber *int
	IsTheory    *bool
}

// NormalizeTimeSlot memvalidasi & merapikan satu record. Error selalu *ValidationError.
func NormalizeTimeSlot(raw RawTimeSlot, cfg TimetableConfig) (TimeSlot, error) {
	if raw.Day == nil {
		return TimeSlot{}, invalid("day", "missing")
	}
	if *raw.Day < 0 || *raw.Day >= cfg.WorkingDays {
		return TimeSlot{}, invalid("day", "%d out of range [0,%d)", *raw.Day, cfg.WorkingDays)
	}
	if raw.Period == nil {
		return TimeSlot{}, invalid("period", "missing")
	}
	if *raw.Period < 0 || *raw.Period >= cfg.PeriodsPerDay {
		return TimeSlot{}, invalid("period", "%d out of range [0,%d)", *raw.Period, cfg.PeriodsPerDay)
	}

	code := strings.TrimSpace(raw.SubjectCode)
	if code == "" {
		return TimeSlot{}, invalid("subject_code", "missing")
	}

	st, ok := ParseSubjectType(raw.SubjectType)
	if !ok {
		return TimeSlot{}, invalid("subject_type", "unknown value %q", raw.SubjectType)
	}

	isTheory := st == SubjectTheory
	if raw.IsTheory != nil && *raw.IsTheory != isTheory {
		return TimeSlot{}, invalid("is_theory", "%t does not agree with subject_type %s", *raw.IsTheory, st)
	}

	var batch *int
	if raw.BatchNumber != nil {
		if isTheory {
			return TimeSlot{}, invalid("batch_number", "theory sessions are not split into batches")
		}
		if *raw.BatchNumber < 1 {
			return TimeSlot{}, invalid("batch_number", "must be >= 1, got %d", *raw.BatchNumber)
		}
		b := *raw.BatchNumber
		batch = &b
	}

	return TimeSlot{
		Day:         *raw.Day,
		Period:      *raw.Period,
		SubjectCode: code,
		SubjectName: strings.TrimSpace(raw.SubjectName),
		SubjectType: st,
		FacultyID:   strings.TrimSpace(raw.FacultyID),
		FacultyName: strings.TrimSpace(raw.FacultyName),
		SectionID:   strings.TrimSpace(raw.SectionID),
		RoomID:      strings.TrimSpace(raw.RoomID),
		BatchNumber: batch,
		IsTheory:    isTheory,
	}, nil
}

/* =========================
   Intra-cell ordering
========================= */

func compareSlots(a, b TimeSlot) int {
	if c := cmp.Compare(a.SubjectType.rank(), b.SubjectType.rank()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Batch(), b.Batch()); c != 0 {
		return c
	}
	if c := strings.Compare(a.SubjectCode, b.SubjectCode); c != 0 {
		return c
	}
	// sisa field cuma supaya duplikat pun urutannya stabil
	if c := strings.Compare(a.FacultyID, b.FacultyID); c != 0 {
		return c
	}
	if c := strings.Compare(a.SectionID, b.SectionID); c != 0 {
		return c
	}
	if c := strings.Compare(a.RoomID, b.RoomID); c != 0 {
		return c
	}
	if c := strings.Compare(a.SubjectName, b.SubjectName); c != 0 {
		return c
	}
	return strings.Compare(a.FacultyName, b.FacultyName)
}

// SortSlots mengurutkan occupant satu koordinat: kategori, batch, kode mapel.
func SortSlots(slots []TimeSlot) {
	slices.SortStableFunc(slots, compareSlots)
}

type slotIdentity struct {
	code  string
	batch int
}

// slotDuplicates mengasumsikan occupants sudah terurut.
func slotDuplicates(coord SlotCoord, occupants []TimeSlot) []DuplicateAssignmentError {
	if len(occupants) < 2 {
		return nil
	}
	counts := make(map[slotIdentity]int, len(occupants))
	var order []slotIdentity
	for _, s := range occupants {
		id := slotIdentity{code: s.SubjectCode, batch: s.Batch()}
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}

	var out []DuplicateAssignmentError
	for _, id := range order {
		if counts[id] < 2 {
			continue
		}
		key := id.code
		if id.batch > 0 {
			key = key + " batch " + strconv.Itoa(id.batch)
		}
		c := coord
		out = append(out, DuplicateAssignmentError{Slot: &c, Key: key, Count: counts[id]})
	}
	return out
}

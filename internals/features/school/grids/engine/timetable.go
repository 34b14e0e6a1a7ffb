// file: internals/features/school/grids/engine/timetable.go
package engine

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("invalid grid config")

type TimetableConfig struct {
	WorkingDays   int
	PeriodsPerDay int
	Spans         Spans // nil → DefaultSpans()
}

func (c TimetableConfig) Validate() error {
	if c.WorkingDays <= 0 {
		return fmt.Errorf("%w: working_days must be > 0, got %d", ErrInvalidConfig, c.WorkingDays)
	}
	if c.PeriodsPerDay <= 0 {
		return fmt.Errorf("%w: periods_per_day must be > 0, got %d", ErrInvalidConfig, c.PeriodsPerDay)
	}
	for t, n := range c.Spans {
		if n < 1 {
			return fmt.Errorf("%w: span for %s must be >= 1, got %d", ErrInvalidConfig, t, n)
		}
	}
	return nil
}

type SlotCell struct {
	Coord   SlotCoord
	Content SlotContent
}

type DayRow struct {
	Day   int
	Cells []SlotCell
}

type TimetableResult struct {
	Config   TimetableConfig
	Days     []DayRow
	Findings Findings
}

// Cell mengambil sel di koordinat tertentu; ok=false kalau di luar domain.
func (r TimetableResult) Cell(c SlotCoord) (SlotCell, bool) {
	if c.Day < 0 || c.Day >= len(r.Days) {
		return SlotCell{}, false
	}
	cells := r.Days[c.Day].Cells
	if c.Period < 0 || c.Period >= len(cells) {
		return SlotCell{}, false
	}
	return cells[c.Period], true
}

// BuildTimetable: normalize → index → order → classify → materialize.
// Error hanya untuk config yang tidak valid; masalah data masuk ke Findings.
func BuildTimetable(raws []RawTimeSlot, cfg TimetableConfig, opts ...Option) (TimetableResult, error) {
	if err := cfg.Validate(); err != nil {
		return TimetableResult{}, err
	}
	if cfg.Spans == nil {
		cfg.Spans = DefaultSpans()
	}
	o := buildOptions(opts)

	findings := newFindings()
	slots := make([]TimeSlot, 0, len(raws))
	for i, raw := range raws {
		s, err := NormalizeTimeSlot(raw, cfg)
		if err != nil {
			findings.reject(i, err)
			continue
		}
		slots = append(slots, o.resolveSlot(s))
	}

	idx := Index(slots, TimeSlot.Coord)

	days := make([]DayRow, cfg.WorkingDays)
	for d := 0; d < cfg.WorkingDays; d++ {
		row := DayRow{Day: d, Cells: make([]SlotCell, cfg.PeriodsPerDay)}
		var prev []SlotOccupant
		for p := 0; p < cfg.PeriodsPerDay; p++ {
			coord := SlotCoord{Day: d, Period: p}
			cur := idx[coord]
			SortSlots(cur)
			findings.Duplicates = append(findings.Duplicates, slotDuplicates(coord, cur)...)

			content := ClassifySlot(prev, cur, cfg.Spans)
			row.Cells[p] = SlotCell{Coord: coord, Content: content}
			prev = content.Occupants()
		}
		days[d] = row
	}

	return TimetableResult{Config: cfg, Days: days, Findings: findings}, nil
}

/* =========================
   Options & name resolver
========================= */

// NameResolver mengisi nama tampilan dari id/kode. Return ok=false kalau tidak ketemu.
type NameResolver interface {
	FacultyName(id string) (string, bool)
	SubjectName(code string) (string, bool)
	StudentName(id string) (string, bool)
}

// MapResolver: NameResolver sederhana berbasis map.
type MapResolver struct {
	Faculties map[string]string
	Subjects  map[string]string
	Students  map[string]string
}

func (m MapResolver) FacultyName(id string) (string, bool) {
	v, ok := m.Faculties[id]
	return v, ok
}

func (m MapResolver) SubjectName(code string) (string, bool) {
	v, ok := m.Subjects[code]
	return v, ok
}

func (m MapResolver) StudentName(id string) (string, bool) {
	v, ok := m.Students[id]
	return v, ok
}

type Option func(*options)

type options struct {
	resolver NameResolver
}

// WithResolver: nama yang sudah terisi di record tidak ditimpa.
func WithResolver(r NameResolver) Option {
	return func(o *options) { o.resolver = r }
}

func buildOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func (o options) resolveSlot(s TimeSlot) TimeSlot {
	if o.resolver == nil {
		return s
	}
	if s.SubjectName == "" {
		if name, ok := o.resolver.SubjectName(s.SubjectCode); ok {
			s.SubjectName = name
		}
	}
	if s.FacultyName == "" && s.FacultyID != "" {
		if name, ok := o.resolver.FacultyName(s.FacultyID); ok {
			s.FacultyName = name
		}
	}
	return s
}

func (o options) resolveSeat(s Seat) Seat {
	if o.resolver == nil {
		return s
	}
	if s.SubjectName == "" {
		if name, ok := o.resolver.SubjectName(s.SubjectCode); ok {
			s.SubjectName = name
		}
	}
	if s.StudentName == "" {
		if name, ok := o.resolver.StudentName(s.StudentID); ok {
			s.StudentName = name
		}
	}
	return s
}

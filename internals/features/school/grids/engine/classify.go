// file: internals/features/school/grids/engine/classify.go
package engine

import "slices"

type Classification string

const (
	ClassEmpty        Classification = "empty"
	ClassStart        Classification = "start"
	ClassContinuation Classification = "continuation"
	ClassParallel     Classification = "parallel"
)

// SlotOccupant adalah TimeSlot + posisinya di dalam blok multi-jam.
// Part 1 = awal blok; Part > 1 = lanjutan.
type SlotOccupant struct {
	TimeSlot
	Part int
	Span int
}

func (o SlotOccupant) IsContinuation() bool { return o.Part > 1 }

// SlotContent adalah isi satu sel timetable. Hanya empat varian di file ini
// yang memenuhi interface ini.
type SlotContent interface {
	Classification() Classification
	Occupants() []SlotOccupant
	slotContent()
}

type EmptySlot struct{}

// StartSlot: semua occupant memulai sesi baru.
type StartSlot struct {
	Slots []SlotOccupant
}

// ContinuationSlot: minimal satu occupant melanjutkan sesi dari jam sebelumnya.
// Fresh berisi occupant lain yang mulai di jam yang sama (sel campuran).
type ContinuationSlot struct {
	Continued []SlotOccupant
	Fresh     []SlotOccupant
}

// ParallelSlot: beberapa batch lab/project independen di jam yang sama.
type ParallelSlot struct {
	Slots []SlotOccupant
}

func (EmptySlot) Classification() Classification        { return ClassEmpty }
func (StartSlot) Classification() Classification        { return ClassStart }
func (ContinuationSlot) Classification() Classification { return ClassContinuation }
func (ParallelSlot) Classification() Classification     { return ClassParallel }

func (EmptySlot) Occupants() []SlotOccupant      { return nil }
func (s StartSlot) Occupants() []SlotOccupant    { return s.Slots }
func (s ParallelSlot) Occupants() []SlotOccupant { return s.Slots }

// Occupants menggabungkan Continued dan Fresh kembali ke urutan intra-sel
// (kategori, batch, kode). Duplikat identik: yang lanjut lebih dulu.
func (s ContinuationSlot) Occupants() []SlotOccupant {
	out := make([]SlotOccupant, 0, len(s.Continued)+len(s.Fresh))
	out = append(out, s.Continued...)
	out = append(out, s.Fresh...)
	slices.SortStableFunc(out, func(a, b SlotOccupant) int {
		return compareSlots(a.TimeSlot, b.TimeSlot)
	})
	return out
}

func (EmptySlot) slotContent()        {}
func (StartSlot) slotContent()        {}
func (ContinuationSlot) slotContent() {}
func (ParallelSlot) slotContent()     {}

// continues: apakah cur melanjutkan blok prev.
//   - PROJECT ↔ PROJECT dengan subject code sama
//   - LAB ↔ LAB dengan subject code dan batch sama
//
// Theory tidak pernah lanjut. Blok yang sudah mencapai span-nya juga tidak.
func continues(prev SlotOccupant, cur TimeSlot) bool {
	if prev.Part >= prev.Span {
		return false
	}
	switch cur.SubjectType {
	case SubjectProject:
		return prev.SubjectType == SubjectProject && prev.SubjectCode == cur.SubjectCode
	case SubjectLab:
		return prev.SubjectType == SubjectLab &&
			prev.SubjectCode == cur.SubjectCode &&
			prev.Batch() == cur.Batch()
	}
	return false
}

// ClassifySlot membandingkan occupant (day, period) dengan occupant
// (day, period-1). cur harus sudah terurut (SortSlots); prev adalah hasil
// Occupants() dari sel sebelumnya, nil untuk period 0.
func ClassifySlot(prev []SlotOccupant, cur []TimeSlot, spans Spans) SlotContent {
	if len(cur) == 0 {
		return EmptySlot{}
	}

	used := make([]bool, len(prev))
	var continued, fresh []SlotOccupant
	for _, s := range cur {
		matched := -1
		for j, p := range prev {
			if !used[j] && continues(p, s) {
				matched = j
				break
			}
		}
		if matched >= 0 {
			used[matched] = true
			continued = append(continued, SlotOccupant{
				TimeSlot: s,
				Part:     prev[matched].Part + 1,
				Span:     prev[matched].Span,
			})
			continue
		}
		fresh = append(fresh, SlotOccupant{TimeSlot: s, Part: 1, Span: spans.of(s.SubjectType)})
	}

	if len(continued) > 0 {
		return ContinuationSlot{Continued: continued, Fresh: fresh}
	}
	if isParallel(fresh) {
		return ParallelSlot{Slots: fresh}
	}
	return StartSlot{Slots: fresh}
}

// isParallel: >1 occupant LAB/PROJECT dengan batch number berbeda semua.
func isParallel(occupants []SlotOccupant) bool {
	seen := make(map[int]struct{}, len(occupants))
	n := 0
	for _, o := range occupants {
		if o.SubjectType == SubjectTheory {
			continue
		}
		b := o.Batch()
		if _, dup := seen[b]; dup {
			return false
		}
		seen[b] = struct{}{}
		n++
	}
	return n > 1
}

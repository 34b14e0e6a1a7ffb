// file: internals/features/school/grids/engine/errors.go
package engine

import (
	"errors"
	"fmt"
)

// ValidationError: satu record mentah gagal normalisasi.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// RejectedRecord menyimpan posisi record di input beserta alasannya.
type RejectedRecord struct {
	Index int
	Err   *ValidationError
}

func (r RejectedRecord) Error() string {
	return fmt.Sprintf("record #%d: %s", r.Index, r.Err.Error())
}

func (r RejectedRecord) Unwrap() error { return r.Err }

// DuplicateAssignmentError: beberapa record mengklaim koordinat dan identitas
// yang sama. Semua record tetap tampil di sel.
type DuplicateAssignmentError struct {
	Slot  *SlotCoord
	Seat  *SeatCoord
	Key   string
	Count int
}

func (e *DuplicateAssignmentError) Error() string {
	return fmt.Sprintf("duplicate assignment %q at %s (%d records)", e.Key, e.coord(), e.Count)
}

func (e *DuplicateAssignmentError) coord() string {
	switch {
	case e.Slot != nil:
		return e.Slot.String()
	case e.Seat != nil:
		return e.Seat.String()
	}
	return "unknown coordinate"
}

// OverCapacityError: meja ujian berisi lebih banyak peserta dari yang
// diizinkan exam type, atau dua peserta INTERNAL dengan mapel yang sama.
type OverCapacityError struct {
	Seat          SeatCoord
	ExamType      ExamType
	Capacity      int
	Occupants     int
	SharedSubject string
}

func (e *OverCapacityError) Error() string {
	if e.SharedSubject != "" {
		return fmt.Sprintf("%s: %s desk shared by students of the same subject %q",
			e.Seat.String(), e.ExamType, e.SharedSubject)
	}
	return fmt.Sprintf("%s: %d occupants exceed %s capacity %d",
		e.Seat.String(), e.Occupants, e.ExamType, e.Capacity)
}

/* =========================
   Findings
========================= */

// Findings adalah temuan kualitas data yang dikembalikan bersama grid.
// Tidak ada yang fatal; caller memutuskan mau blok render atau tampilkan warning.
type Findings struct {
	Rejected     []RejectedRecord
	Duplicates   []DuplicateAssignmentError
	OverCapacity []OverCapacityError
}

func newFindings() Findings {
	return Findings{
		Rejected:     []RejectedRecord{},
		Duplicates:   []DuplicateAssignmentError{},
		OverCapacity: []OverCapacityError{},
	}
}

func (f *Findings) reject(index int, err error) {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		ve = &ValidationError{Field: "record", Reason: err.Error()}
	}
	f.Rejected = append(f.Rejected, RejectedRecord{Index: index, Err: ve})
}

func (f Findings) Empty() bool {
	return len(f.Rejected) == 0 && len(f.Duplicates) == 0 && len(f.OverCapacity) == 0
}

// HasConflicts: ada duplicate atau over-capacity (rejected tidak dihitung).
func (f Findings) HasConflicts() bool {
	return len(f.Duplicates) > 0 || len(f.OverCapacity) > 0
}

// Err menggabungkan semua temuan jadi satu error, nil kalau bersih.
func (f Findings) Err() error {
	if f.Empty() {
		return nil
	}
	errs := make([]error, 0, len(f.Rejected)+len(f.Duplicates)+len(f.OverCapacity))
	for _, r := range f.Rejected {
		errs = append(errs, r)
	}
	for i := range f.Duplicates {
		errs = append(errs, &f.Duplicates[i])
	}
	for i := range f.OverCapacity {
		errs = append(errs, &f.OverCapacity[i])
	}
	return errors.Join(errs...)
}

// file: internals/features/school/grids/engine/coordinate.go
package engine

import (
	"fmt"
	"strings"
)

// SlotCoord adalah koordinat satu sel timetable (hari ke-, jam ke-), 0-based.
type SlotCoord struct {
	Day    int
	Period int
}

func (a SlotCoord) Less(b SlotCoord) bool {
	if a.Day != b.Day {
		return a.Day < b.Day
	}
	return a.Period < b.Period
}

func (a SlotCoord) String() string {
	return fmt.Sprintf("day=%d period=%d", a.Day, a.Period)
}

// SeatCoord adalah koordinat satu meja ujian (ruang, baris, kolom).
type SeatCoord struct {
	Room   string
	Row    int
	Column int
}

func (a SeatCoord) Less(b SeatCoord) bool {
	if c := strings.Compare(a.Room, b.Room); c != 0 {
		return c < 0
	}
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Column < b.Column
}

func (a SeatCoord) String() string {
	return fmt.Sprintf("room=%s row=%d column=%d", a.Room, a.Row, a.Column)
}

// Index mengelompokkan record per koordinat. Urutan input di dalam satu
// koordinat dipertahankan; tidak ada dedup.
func Index[K comparable, R any](records []R, key func(R) K) map[K][]R {
	out := make(map[K][]R, len(records))
	for _, r := range records {
		k := key(r)
		out[k] = append(out[k], r)
	}
	return out
}

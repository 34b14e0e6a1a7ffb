package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seat(room string, row, col int, student, subject string) RawSeat {
	return RawSeat{RoomID: room, Row: intp(row), Column: intp(col), StudentID: student, SubjectCode: subject}
}

func hall(examType ExamType, rooms ...RoomLayout) SeatingConfig {
	return SeatingConfig{ExamType: examType, Rooms: rooms}
}

func TestBuildSeating_ExternalOverCapacity(t *testing.T) {
	raws := []RawSeat{
		seat("R1", 0, 0, "1RV21CS001", "CS301"),
		seat("R1", 0, 0, "1RV21EC014", "EC205"),
	}
	res, err := BuildSeating(raws, hall(ExamExternal, RoomLayout{RoomID: "R1", Rows: 2, Columns: 2}))
	require.NoError(t, err)

	require.Len(t, res.Findings.OverCapacity, 1)
	oc := res.Findings.OverCapacity[0]
	assert.Equal(t, SeatCoord{Room: "R1", Row: 0, Column: 0}, oc.Seat)
	assert.Equal(t, 1, oc.Capacity)
	assert.Equal(t, 2, oc.Occupants)

	// tetap dirender lengkap supaya overbooking kelihatan
	cell, ok := res.Cell(SeatCoord{Room: "R1", Row: 0, Column: 0})
	require.True(t, ok)
	assert.Len(t, cell.Occupants, 2)

	var target *OverCapacityError
	assert.True(t, errors.As(res.Findings.Err(), &target))
}

func TestBuildSeating_InternalSharedDesk(t *testing.T) {
	raws := []RawSeat{
		seat("R1", 0, 0, "1RV21EC014", "EC205"),
		seat("R1", 0, 0, "1RV21CS001", "CS301"),
	}
	res, err := BuildSeating(raws, hall(ExamInternal, RoomLayout{RoomID: "R1", Rows: 2, Columns: 2}))
	require.NoError(t, err)
	assert.True(t, res.Findings.Empty())

	cell, ok := res.Cell(SeatCoord{Room: "R1", Row: 0, Column: 0})
	require.True(t, ok)
	assert.Equal(t, ClassParallel, cell.Classification)
	require.Len(t, cell.Occupants, 2)
	assert.Equal(t, "CS301", cell.Occupants[0].SubjectCode)
	assert.Equal(t, "EC205", cell.Occupants[1].SubjectCode)
}

func TestBuildSeating_InternalSameSubjectConflict(t *testing.T) {
	raws := []RawSeat{
		seat("R1", 1, 1, "S1", "CS301"),
		seat("R1", 1, 1, "S2", "CS301"),
	}
	res, err := BuildSeating(raws, hall("internal", RoomLayout{RoomID: "R1", Rows: 2, Columns: 2}))
	require.NoError(t, err)
	require.Len(t, res.Findings.OverCapacity, 1)
	assert.Equal(t, "CS301", res.Findings.OverCapacity[0].SharedSubject)
	assert.Equal(t, ExamInternal, res.ExamType)
}

func TestBuildSeating_InternalThreeOccupants(t *testing.T) {
	raws := []RawSeat{
		seat("R1", 0, 1, "S1", "A"),
		seat("R1", 0, 1, "S2", "B"),
		seat("R1", 0, 1, "S3", "C"),
	}
	res, err := BuildSeating(raws, hall(ExamInternal, RoomLayout{RoomID: "R1", Rows: 1, Columns: 2}))
	require.NoError(t, err)
	require.Len(t, res.Findings.OverCapacity, 1)
	assert.Equal(t, 3, res.Findings.OverCapacity[0].Occupants)
	assert.Empty(t, res.Findings.OverCapacity[0].SharedSubject)
}

func TestBuildSeating_TotalityAcrossRooms(t *testing.T) {
	cfg := hall(ExamExternal,
		RoomLayout{RoomID: "A-101", Rows: 3, Columns: 4},
		RoomLayout{RoomID: "A-102", Rows: 2, Columns: 5},
	)
	res, err := BuildSeating([]RawSeat{seat("A-102", 1, 4, "S1", "CS301")}, cfg)
	require.NoError(t, err)
	require.Len(t, res.Rooms, 2)
	assert.Equal(t, "A-101", res.Rooms[0].Layout.RoomID)

	total := 0
	for _, room := range res.Rooms {
		for r, row := range room.Rows {
			for c, cell := range row {
				total++
				assert.Equal(t, SeatCoord{Room: room.Layout.RoomID, Row: r, Column: c}, cell.Coord)
			}
		}
	}
	assert.Equal(t, 3*4+2*5, total)

	empty, _ := res.Cell(SeatCoord{Room: "A-101", Row: 0, Column: 0})
	assert.Equal(t, ClassEmpty, empty.Classification)
	assert.Empty(t, empty.Occupants)

	taken, _ := res.Cell(SeatCoord{Room: "A-102", Row: 1, Column: 4})
	assert.Equal(t, ClassStart, taken.Classification)
}

func TestBuildSeating_RejectsInvalidSeats(t *testing.T) {
	raws := []RawSeat{
		seat("", 0, 0, "S1", "A"),
		seat("R9", 0, 0, "S1", "A"),
		{RoomID: "R1", Column: intp(0), StudentID: "S1", SubjectCode: "A"},
		seat("R1", 5, 0, "S1", "A"),
		seat("R1", 0, -1, "S1", "A"),
		seat("R1", 0, 0, " ", "A"),
		seat("R1", 0, 0, "S1", ""),
		seat(" R1 ", 0, 0, " S1 ", " A "),
	}
	res, err := BuildSeating(raws, hall(ExamExternal, RoomLayout{RoomID: "R1", Rows: 2, Columns: 2}))
	require.NoError(t, err)

	fields := make([]string, 0, len(res.Findings.Rejected))
	for _, r := range res.Findings.Rejected {
		fields = append(fields, r.Err.Field)
	}
	assert.Equal(t, []string{"room_id", "room_id", "row", "row", "column", "student_id", "subject_code"}, fields)

	cell, _ := res.Cell(SeatCoord{Room: "R1", Row: 0, Column: 0})
	require.Len(t, cell.Occupants, 1)
	assert.Equal(t, "S1", cell.Occupants[0].StudentID)
	assert.Equal(t, "A", cell.Occupants[0].SubjectCode)
}

func TestBuildSeating_DuplicateStudentSameDesk(t *testing.T) {
	raws := []RawSeat{
		seat("R1", 0, 0, "S1", "A"),
		seat("R1", 0, 0, "S1", "A"),
	}
	res, err := BuildSeating(raws, hall(ExamInternal, RoomLayout{RoomID: "R1", Rows: 1, Columns: 1}))
	require.NoError(t, err)

	require.Len(t, res.Findings.Duplicates, 1)
	assert.Equal(t, "S1", res.Findings.Duplicates[0].Key)
	require.NotNil(t, res.Findings.Duplicates[0].Seat)
	// satu meja, dua temuan independen: duplikat + mapel sama
	require.Len(t, res.Findings.OverCapacity, 1)
}

func TestBuildSeating_ResolverAndInvalidConfig(t *testing.T) {
	res, err := BuildSeating(
		[]RawSeat{seat("R1", 0, 0, "S1", "CS301")},
		hall(ExamExternal, RoomLayout{RoomID: "R1", Rows: 1, Columns: 1}),
		WithResolver(MapResolver{Students: map[string]string{"S1": "Siti"}, Subjects: map[string]string{"CS301": "Compilers"}}),
	)
	require.NoError(t, err)
	cell, _ := res.Cell(SeatCoord{Room: "R1"})
	assert.Equal(t, "Siti", cell.Occupants[0].StudentName)
	assert.Equal(t, "Compilers", cell.Occupants[0].SubjectName)

	for _, cfg := range []SeatingConfig{
		hall("MIDTERM", RoomLayout{RoomID: "R1", Rows: 1, Columns: 1}),
		hall(ExamExternal),
		hall(ExamExternal, RoomLayout{RoomID: "R1", Rows: 0, Columns: 1}),
		hall(ExamExternal, RoomLayout{RoomID: "R1", Rows: 1, Columns: 1}, RoomLayout{RoomID: "R1", Rows: 1, Columns: 1}),
		hall(ExamExternal, RoomLayout{RoomID: " ", Rows: 1, Columns: 1}),
	} {
		_, err := BuildSeating(nil, cfg)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	}
}

func TestBuildSeating_DeterministicUnderPermutation(t *testing.T) {
	raws := []RawSeat{
		seat("A-101", 0, 0, "S3", "MA101"),
		seat("A-101", 0, 0, "S1", "CS301"),
		seat("A-101", 0, 1, "S2", "CS301"),
		seat("A-101", 0, 1, "S7", "CS301"),
		seat("A-101", 1, 2, "S4", "EE220"),
		seat("A-101", 1, 2, "S5", "MA101"),
		seat("A-101", 1, 2, "S6", "CS301"),
		seat("B-202", 0, 0, "S8", "EN105"),
		seat("B-202", 0, 0, "S8", "EN105"),
		seat("B-202", 1, 1, "S9", "PH110"),
	}
	cfg := hall(ExamInternal,
		RoomLayout{RoomID: "A-101", Rows: 2, Columns: 3},
		RoomLayout{RoomID: "B-202", Rows: 2, Columns: 2},
	)

	base, err := BuildSeating(raws, cfg)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 20; i++ {
		shuffled := append([]RawSeat(nil), raws...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := BuildSeating(shuffled, cfg)
		require.NoError(t, err)
		if diff := cmp.Diff(base.Rooms, got.Rooms); diff != "" {
			t.Fatalf("seating differs after shuffle %d (-want +got):\n%s", i, diff)
		}
		assert.Equal(t, len(base.Findings.OverCapacity), len(got.Findings.OverCapacity))
		assert.Equal(t, len(base.Findings.Duplicates), len(got.Findings.Duplicates))
	}
}

package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"schoolgrid_backend/internals/features/school/grids/engine"
	"schoolgrid_backend/internals/features/school/grids/model"
)

func intp(v int) *int { return &v }

func TestRenderTimetableRequest_Validation(t *testing.T) {
	v := validator.New(validator.WithRequiredStructEnabled())

	ok := RenderTimetableRequest{WorkingDays: 5, PeriodsPerDay: 8, Spans: map[string]int{"LAB": 3}}
	assert.NoError(t, v.Struct(ok))

	cases := []RenderTimetableRequest{
		{WorkingDays: 0, PeriodsPerDay: 8},
		{WorkingDays: 8, PeriodsPerDay: 8},
		{WorkingDays: 5, PeriodsPerDay: 17},
		{WorkingDays: 5, PeriodsPerDay: 8, Spans: map[string]int{"THEORY": 2}},
		{WorkingDays: 5, PeriodsPerDay: 8, Spans: map[string]int{"LAB": 0}},
	}
	for i, c := range cases {
		assert.Error(t, v.Struct(c), "case %d", i)
	}
}

func TestSpansFromMap(t *testing.T) {
	assert.Nil(t, SpansFromMap(nil))

	spans := SpansFromMap(map[string]int{"capstone": 4, "THEORY": 5, "bogus": 9})
	assert.Equal(t, 4, spans[engine.SubjectProject])
	assert.Equal(t, engine.DefaultSpans()[engine.SubjectLab], spans[engine.SubjectLab])
	assert.Equal(t, 1, spans[engine.SubjectTheory])
}

func TestTimeSlotFromModel(t *testing.T) {
	fac := uuid.New()
	section := uuid.New()
	m := model.TimetableSlotModel{
		TimetableSlotSectionID:   section,
		TimetableSlotDayIndex:    2,
		TimetableSlotPeriodIndex: 4,
		TimetableSlotSubjectCode: "CS301",
		TimetableSlotSubjectType: model.SubjectTypeLab,
		TimetableSlotBatchNumber: intp(2),
		TimetableSlotFacultyID:   &fac,
		TimetableSlotSnapshot:    datatypes.JSONMap{"subject_name": "Networks Lab", "faculty_name": 42},
	}

	raw := TimeSlotFromModel(m)
	assert.Equal(t, 2, *raw.Day)
	assert.Equal(t, 4, *raw.Period)
	assert.Equal(t, "LAB", raw.SubjectType)
	assert.Equal(t, "Networks Lab", raw.SubjectName)
	assert.Empty(t, raw.FacultyName)
	assert.Equal(t, fac.String(), raw.FacultyID)
	assert.Equal(t, section.String(), raw.SectionID)
	assert.Empty(t, raw.RoomID)
}

func TestSeatFromModel_PrefersUSN(t *testing.T) {
	student := uuid.New()
	usn := "1RV22CS042"
	m := model.ExamSeatModel{ExamSeatStudentID: student, ExamSeatRow: intp(1), ExamSeatColumn: intp(0), ExamSeatSubjectCode: "MA101"}

	assert.Equal(t, student.String(), SeatFromModel(m, "A101").StudentID)

	m.ExamSeatStudentUSN = &usn
	raw := SeatFromModel(m, "A101")
	assert.Equal(t, usn, raw.StudentID)
	assert.Equal(t, "A101", raw.RoomID)
}

func TestFromTimetableResult_MixedContinuation(t *testing.T) {
	res, err := engine.BuildTimetable([]engine.RawTimeSlot{
		{Day: intp(0), Period: intp(0), SubjectCode: "CS301", SubjectType: "LAB", BatchNumber: intp(1)},
		{Day: intp(0), Period: intp(1), SubjectCode: "CS301", SubjectType: "LAB", BatchNumber: intp(1)},
		{Day: intp(0), Period: intp(1), SubjectCode: "MA101", SubjectType: "THEORY"},
		{Day: intp(0), Period: intp(1)},
	}, engine.TimetableConfig{WorkingDays: 1, PeriodsPerDay: 2})
	require.NoError(t, err)

	out := FromTimetableResult(res)
	cell := out.Days[0].Cells[1]
	assert.Equal(t, "continuation", cell.Classification)
	require.Len(t, cell.Occupants, 2)
	// urutan intra-sel: THEORY sebelum LAB, walau LAB-nya lanjutan
	assert.Equal(t, "MA101", cell.Occupants[0].SubjectCode)
	assert.False(t, cell.Occupants[0].Continuation)
	assert.Equal(t, "CS301", cell.Occupants[1].SubjectCode)
	assert.True(t, cell.Occupants[1].Continuation)
	require.Len(t, cell.Continued, 1)
	require.Len(t, cell.Fresh, 1)
	assert.Equal(t, 2, cell.Continued[0].Part)
	assert.True(t, cell.Continued[0].Continuation)
	assert.Equal(t, "MA101", cell.Fresh[0].SubjectCode)

	assert.Nil(t, out.Days[0].Cells[0].Continued)
	require.Len(t, out.Findings.Rejected, 1)
	assert.Equal(t, 3, out.Findings.Rejected[0].Index)
	assert.Equal(t, "subject_code", out.Findings.Rejected[0].Field)
	assert.False(t, out.Findings.HasConflicts)
}

func TestFromFindings_Seating(t *testing.T) {
	res, err := engine.BuildSeating([]engine.RawSeat{
		{RoomID: "A101", Row: intp(0), Column: intp(0), StudentID: "S1", SubjectCode: "CS301"},
		{RoomID: "A101", Row: intp(0), Column: intp(0), StudentID: "S1", SubjectCode: "CS301"},
	}, engine.SeatingConfig{ExamType: engine.ExamExternal, Rooms: []engine.RoomLayout{{RoomID: "A101", Rows: 1, Columns: 1}}})
	require.NoError(t, err)

	out := FromSeatingResult(res)
	require.Len(t, out.Findings.Duplicates, 1)
	d := out.Findings.Duplicates[0]
	assert.Equal(t, "A101", d.RoomID)
	assert.Equal(t, 0, *d.Row)
	assert.Nil(t, d.Day)
	require.Len(t, out.Findings.OverCapacity, 1)
	assert.True(t, out.Findings.HasConflicts)
	assert.False(t, out.Findings.Empty())
}

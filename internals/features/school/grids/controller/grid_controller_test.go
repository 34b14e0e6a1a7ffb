package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolgrid_backend/internals/configs"
	"schoolgrid_backend/internals/features/school/grids/dto"
	"schoolgrid_backend/internals/features/school/grids/engine"
	"schoolgrid_backend/internals/features/school/grids/model"
	"schoolgrid_backend/internals/features/school/grids/service"
	"schoolgrid_backend/internals/helpers/authctx"
)

type stubStore struct {
	slots []model.TimetableSlotModel
}

func (s stubStore) ListSectionSlots(context.Context, uuid.UUID, uuid.UUID) ([]model.TimetableSlotModel, error) {
	return s.slots, nil
}
func (s stubStore) ListSchoolSectionIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}
func (s stubStore) ListSlotsForSections(context.Context, uuid.UUID, []uuid.UUID) (map[uuid.UUID][]model.TimetableSlotModel, error) {
	return map[uuid.UUID][]model.TimetableSlotModel{}, nil
}
func (s stubStore) GetExam(context.Context, uuid.UUID, uuid.UUID) (model.ExamModel, error) {
	return model.ExamModel{}, fiber.NewError(fiber.StatusNotFound, "Ujian tidak ditemukan")
}
func (s stubStore) ListExamRooms(context.Context, uuid.UUID) ([]model.ExamRoomModel, error) {
	return nil, nil
}
func (s stubStore) ListExamSeats(context.Context, uuid.UUID) ([]model.ExamSeatModel, error) {
	return nil, nil
}
func (s stubStore) LookupNames(context.Context, uuid.UUID, []string, []string) (engine.MapResolver, error) {
	return engine.MapResolver{}, nil
}

type envelope[T any] struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ErrorCode string              `json:"error_code"`
	Errors    map[string][]string `json:"errors"`
	Data      T                   `json:"data"`
}

func newApp(store service.Store, schoolID string) *fiber.App {
	defaults := configs.DefaultGrid()
	defaults.WorkingDays, defaults.PeriodsPerDay = 1, 4
	ctl := NewWithService(service.New(store, defaults), nil)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if schoolID != "" {
			c.Locals(authctx.LocSchoolID, schoolID)
		}
		return c.Next()
	})
	app.Post("/timetable/render", ctl.RenderTimetable)
	app.Post("/seating/render", ctl.RenderSeating)
	app.Get("/sections/:section_id/timetable", ctl.SectionTimetable)
	app.Get("/timetable", ctl.SchoolTimetables)
	app.Get("/exams/:exam_id/seating", ctl.ExamSeating)
	return app
}

func do[T any](t *testing.T, app *fiber.App, method, target, body string) (int, envelope[T]) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

const labPayload = `{
  "working_days": 1,
  "periods_per_day": 3,
  "slots": [
    {"day": 0, "period": 0, "subject_code": "CS301", "subject_type": "LAB", "batch_number": 1},
    {"day": 0, "period": 1, "subject_code": "CS301", "subject_type": "LAB", "batch_number": 1},
    {"day": 0, "period": 1, "subject_code": "CS302", "subject_type": "LAB", "batch_number": 2}
  ]
}`

func TestRenderTimetable_OK(t *testing.T) {
	app := newApp(stubStore{}, "")
	status, env := do[dto.TimetableGridResponse](t, app, http.MethodPost, "/timetable/render", labPayload)

	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	cells := env.Data.Days[0].Cells
	assert.Equal(t, "start", cells[0].Classification)
	assert.Equal(t, "continuation", cells[1].Classification)
	require.Len(t, cells[1].Continued, 1)
	require.Len(t, cells[1].Fresh, 1)
	assert.Equal(t, "CS302", cells[1].Fresh[0].SubjectCode)
	assert.Equal(t, "empty", cells[2].Classification)
}

func TestRenderTimetable_StrictConflict(t *testing.T) {
	app := newApp(stubStore{}, "")
	body := `{"working_days":1,"periods_per_day":1,"slots":[
	  {"day":0,"period":0,"subject_code":"MA101","subject_type":"THEORY"},
	  {"day":0,"period":0,"subject_code":"MA101","subject_type":"THEORY"}]}`

	status, env := do[dto.TimetableGridResponse](t, app, http.MethodPost, "/timetable/render?strict=true", body)
	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", env.ErrorCode)
	require.Len(t, env.Data.Findings.Duplicates, 1)
	assert.Equal(t, 2, env.Data.Findings.Duplicates[0].Count)

	// tanpa strict tetap 200 dengan findings
	status, env = do[dto.TimetableGridResponse](t, app, http.MethodPost, "/timetable/render", body)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Data.Findings.HasConflicts)
}

func TestRenderTimetable_Validation(t *testing.T) {
	app := newApp(stubStore{}, "")

	status, env := do[any](t, app, http.MethodPost, "/timetable/render", `{"working_days":9,"periods_per_day":4,"slots":[]}`)
	require.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Errors, "workingdays")

	status, _ = do[any](t, app, http.MethodPost, "/timetable/render", `{not json`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRenderSeating_OverCapacity(t *testing.T) {
	app := newApp(stubStore{}, "")
	body := `{"exam_type":"EXTERNAL","rooms":[{"room_id":"A101","rows":1,"columns":2}],"seats":[
	  {"room_id":"A101","row":0,"column":0,"student_id":"S1","subject_code":"CS301"},
	  {"room_id":"A101","row":0,"column":0,"student_id":"S2","subject_code":"MA101"}]}`

	status, env := do[dto.SeatingGridResponse](t, app, http.MethodPost, "/seating/render", body)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, env.Data.Rooms, 1)
	assert.Equal(t, "parallel", env.Data.Rooms[0].Cells[0][0].Classification)
	assert.Equal(t, "empty", env.Data.Rooms[0].Cells[0][1].Classification)
	require.Len(t, env.Data.Findings.OverCapacity, 1)
	assert.Equal(t, 1, env.Data.Findings.OverCapacity[0].Capacity)
}

func TestSectionTimetable_RequiresSchool(t *testing.T) {
	app := newApp(stubStore{}, "")
	status, env := do[any](t, app, http.MethodGet, "/sections/"+uuid.NewString()+"/timetable", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)
}

func TestSectionTimetable_FromStore(t *testing.T) {
	section := uuid.New()
	store := stubStore{slots: []model.TimetableSlotModel{{
		TimetableSlotSectionID:   section,
		TimetableSlotDayIndex:    0,
		TimetableSlotPeriodIndex: 2,
		TimetableSlotSubjectCode: "MA101",
		TimetableSlotSubjectType: model.SubjectTypeTheory,
	}}}
	app := newApp(store, uuid.NewString())

	status, env := do[dto.TimetableGridResponse](t, app, http.MethodGet, "/sections/"+section.String()+"/timetable", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, section.String(), env.Data.SectionID)
	assert.Equal(t, 4, env.Data.PeriodsPerDay)
	assert.Equal(t, "start", env.Data.Days[0].Cells[2].Classification)

	status, _ = do[any](t, app, http.MethodGet, "/sections/not-a-uuid/timetable", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSchoolTimetables_Empty(t *testing.T) {
	app := newApp(stubStore{}, uuid.NewString())
	status, env := do[map[string]any](t, app, http.MethodGet, "/timetable", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, env.Data["total"])
}

func TestExamSeating_NotFound(t *testing.T) {
	app := newApp(stubStore{}, uuid.NewString())
	status, env := do[any](t, app, http.MethodGet, "/exams/"+uuid.NewString()+"/seating", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.ErrorCode)
}

func TestCaller(t *testing.T) {
	app := fiber.New()
	user := uuid.New()
	app.Get("/with", func(c *fiber.Ctx) error {
		c.Locals(authctx.LocUserID, user.String())
		return c.SendString(caller(c))
	})
	app.Get("/without", func(c *fiber.Ctx) error {
		return c.SendString(caller(c))
	})

	for target, want := range map[string]string{"/with": user.String(), "/without": "-"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, want, string(body), target)
	}
}

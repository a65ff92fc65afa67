package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examtrack/core/internal/adapters/celebration"
	"github.com/examtrack/core/internal/adapters/repository"
	"github.com/examtrack/core/internal/application/services"
	"github.com/examtrack/core/internal/domain/entities"
	"github.com/examtrack/core/internal/infrastructure/logger"
)

var testNow = time.Date(2025, time.November, 30, 10, 0, 0, 0, time.UTC)

type handlerFixture struct {
	echo    *echo.Echo
	courses *CourseHandler
	today   *TodayHandler
}

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	fixture := []entities.Course{
		{
			ID:       "mech",
			Name:     "Mechanics",
			ExamDate: testNow.AddDate(0, 0, 5).Format("Jan 2"),
			Color:    "#BA68C8",
			Notes: []entities.Note{
				{ID: "mech-n1", Title: "Kinematics"},
				{ID: "mech-n2", Title: "Dynamics"},
				{ID: "mech-n3", Title: "Energy"},
				{ID: "mech-n4", Title: "Momentum"},
			},
		},
	}

	kv := repository.NewMemoryKVStore()
	require.NoError(t, repository.NewCourseRepository(kv).Save(context.Background(), fixture))

	log := logger.NewNop()
	courseService := services.NewCourseService(repository.NewCourseRepository(kv), log)
	planner := services.NewPlannerService(courseService, repository.NewSnapshotRepository(kv), celebration.Noop{}, log, func() time.Time { return testNow })

	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}

	return &handlerFixture{
		echo:    e,
		courses: NewCourseHandler(courseService, log),
		today:   NewTodayHandler(planner, log),
	}
}

func (f *handlerFixture) request(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return f.echo.NewContext(req, rec), rec
}

func TestListCourses(t *testing.T) {
	f := newHandlerFixture(t)
	c, rec := f.request(http.MethodGet, "/api/v1/courses", "")

	require.NoError(t, f.courses.ListCourses(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got []CourseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Mechanics", got[0].Name)
	assert.Equal(t, 0, got[0].Progress)
}

func TestGetCourse_NotFound(t *testing.T) {
	f := newHandlerFixture(t)
	c, _ := f.request(http.MethodGet, "/api/v1/courses/nope", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")

	err := f.courses.GetCourse(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestCreateCourse(t *testing.T) {
	f := newHandlerFixture(t)

	t.Run("unparseable exam date", func(t *testing.T) {
		c, _ := f.request(http.MethodPost, "/api/v1/courses", `{"name":"Calculus","examDate":"whenever"}`)
		err := f.courses.CreateCourse(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("valid", func(t *testing.T) {
		c, rec := f.request(http.MethodPost, "/api/v1/courses", `{"name":"Calculus","examDate":"Dec 12","color":"#4FC3F7"}`)
		require.NoError(t, f.courses.CreateCourse(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var got CourseResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, "Calculus", got.Name)
	})
}

func TestAddTask(t *testing.T) {
	f := newHandlerFixture(t)

	t.Run("missing text fails validation", func(t *testing.T) {
		c, _ := f.request(http.MethodPost, "/api/v1/courses/mech/tasks", `{}`)
		c.SetParamNames("id")
		c.SetParamValues("mech")

		err := f.courses.AddTask(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("unknown course", func(t *testing.T) {
		c, _ := f.request(http.MethodPost, "/api/v1/courses/nope/tasks", `{"text":"review"}`)
		c.SetParamNames("id")
		c.SetParamValues("nope")

		err := f.courses.AddTask(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
	})

	t.Run("created", func(t *testing.T) {
		c, rec := f.request(http.MethodPost, "/api/v1/courses/mech/tasks", `{"text":"redo tutorial"}`)
		c.SetParamNames("id")
		c.SetParamValues("mech")

		require.NoError(t, f.courses.AddTask(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var task entities.Task
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
		assert.Equal(t, "redo tutorial", task.Text)
		assert.NotEmpty(t, task.ID)
	})
}

func TestDeleteTask_NoContent(t *testing.T) {
	f := newHandlerFixture(t)
	c, rec := f.request(http.MethodDelete, "/api/v1/courses/mech/tasks/nope", "")
	c.SetParamNames("id", "taskId")
	c.SetParamValues("mech", "nope")

	require.NoError(t, f.courses.DeleteTask(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetCertainty(t *testing.T) {
	f := newHandlerFixture(t)
	c, rec := f.request(http.MethodGet, "/api/v1/certainty", "")

	require.NoError(t, f.courses.GetCertainty(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got CertaintyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 0, got.Certainty)
}

func TestGetTodayAndToggle(t *testing.T) {
	f := newHandlerFixture(t)

	c, rec := f.request(http.MethodGet, "/api/v1/today", "")
	require.NoError(t, f.today.GetToday(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var view services.TodayView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "2025-11-30", view.Date)
	require.Len(t, view.Items, 1) // ceil(4/5)
	itemID := view.Items[0].ID

	c, rec = f.request(http.MethodPost, "/api/v1/today/items/"+itemID+"/toggle", "")
	c.SetParamNames("id")
	c.SetParamValues(itemID)
	require.NoError(t, f.today.ToggleItem(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var result services.ToggleResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Found)
	assert.True(t, result.InToday)
	assert.True(t, result.Completed)

	c, rec = f.request(http.MethodGet, "/api/v1/today/completed", "")
	require.NoError(t, f.today.GetCompletedToday(c))
	var done []entities.ScheduledItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &done))
	require.Len(t, done, 1)
	assert.Equal(t, itemID, done[0].ID)
}

func TestToggleUnknownItem(t *testing.T) {
	f := newHandlerFixture(t)
	c, rec := f.request(http.MethodPost, "/api/v1/today/items/nope/toggle", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")

	require.NoError(t, f.today.ToggleItem(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var result services.ToggleResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Found)
}

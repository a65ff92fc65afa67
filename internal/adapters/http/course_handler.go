package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/examtrack/core/internal/application/services"
	"github.com/examtrack/core/internal/domain/entities"
	"github.com/examtrack/core/internal/infrastructure/logger"
	"github.com/examtrack/core/internal/ports"
)

// MessageResponse is a generic message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// CourseResponse is a course plus its completion percentage.
type CourseResponse struct {
	entities.Course
	Progress int `json:"progress"`
}

// CertaintyResponse carries the global completion metric.
type CertaintyResponse struct {
	Certainty int `json:"certainty"`
}

// CourseHandler handles course-related requests
type CourseHandler struct {
	courseService *services.CourseService
	logger        *logger.Logger
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseService *services.CourseService, logger *logger.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		logger:        logger,
	}
}

// ListCourses returns every course with its progress
func (h *CourseHandler) ListCourses(c echo.Context) error {
	courses := h.courseService.List(c.Request().Context())

	response := make([]CourseResponse, len(courses))
	for i, course := range courses {
		response[i] = CourseResponse{Course: course, Progress: course.Progress()}
	}
	return c.JSON(http.StatusOK, response)
}

// GetCourse returns one course by id
func (h *CourseHandler) GetCourse(c echo.Context) error {
	course, err := h.courseService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, entities.ErrCourseNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Course not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, CourseResponse{Course: course, Progress: course.Progress()})
}

// CreateCourse registers a new course
func (h *CourseHandler) CreateCourse(c echo.Context) error {
	var req ports.CreateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.courseService.Create(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrUnparseableExamDate) {
			return echo.NewHTTPError(http.StatusBadRequest, "Exam date must be a month/day string like \"Dec 5\"")
		}
		h.logger.Error("Course creation failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Course creation failed")
	}

	return c.JSON(http.StatusCreated, CourseResponse{Course: course, Progress: course.Progress()})
}

// AddTask appends an ad-hoc task to a course
func (h *CourseHandler) AddTask(c echo.Context) error {
	var req ports.AddTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.courseService.AddTask(c.Request().Context(), c.Param("id"), req.Text)
	if err != nil {
		if errors.Is(err, entities.ErrCourseNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Course not found")
		}
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

// DeleteTask removes a task from a course. Unknown ids are a no-op.
func (h *CourseHandler) DeleteTask(c echo.Context) error {
	if err := h.courseService.DeleteTask(c.Request().Context(), c.Param("id"), c.Param("taskId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetCertainty returns the global completion metric
func (h *CourseHandler) GetCertainty(c echo.Context) error {
	return c.JSON(http.StatusOK, CertaintyResponse{
		Certainty: h.courseService.Certainty(c.Request().Context()),
	})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuslink/campus-chat-api/internal/core/ports"
)

// UserHandler handles HTTP requests for the user directory.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// --- Request types ---

type createStudentRequest struct {
	Email      string `json:"email" validate:"required,email"`
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	ProfileURL string `json:"profileUrl"`
	StudentID  string `json:"studentId" validate:"required,alphanum"`
	Course     string `json:"course"`
	Year       int    `json:"year"`
}

type createInstructorRequest struct {
	Email        string   `json:"email" validate:"required,email"`
	FirstName    string   `json:"firstName" validate:"required"`
	LastName     string   `json:"lastName" validate:"required"`
	ProfileURL   string   `json:"profileUrl"`
	InstructorID string   `json:"instructorId" validate:"required,alphanum"`
	Department   string   `json:"department" validate:"required"`
	Subjects     []string `json:"subjects"`
}

type updateProfileRequest struct {
	ProfileURL string `json:"profileUrl" validate:"required"`
}

// CreateStudent handles POST /api/users/students.
//
// @Summary      Register a student
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createStudentRequest  true  "Student details"
// @Success      201   {object}  domain.Student
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/users/students [post]
func (h *UserHandler) CreateStudent(c echo.Context) error {
	var req createStudentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	student, err := h.service.CreateStudent(c.Request().Context(), ports.CreateStudentInput{
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		ProfileURL: req.ProfileURL,
		StudentID:  req.StudentID,
		Course:     req.Course,
		Year:       req.Year,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, student)
}

// CreateInstructor handles POST /api/users/instructors.
//
// @Summary      Register an instructor
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createInstructorRequest  true  "Instructor details"
// @Success      201   {object}  domain.Instructor
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/users/instructors [post]
func (h *UserHandler) CreateInstructor(c echo.Context) error {
	var req createInstructorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	instructor, err := h.service.CreateInstructor(c.Request().Context(), ports.CreateInstructorInput{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		ProfileURL:   req.ProfileURL,
		InstructorID: req.InstructorID,
		Department:   req.Department,
		Subjects:     req.Subjects,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, instructor)
}

// GetStudent handles GET /api/users/students/:id.
//
// @Summary      Get a student by ID
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "Generated student ID"
// @Success      200  {object}  domain.Student
// @Failure      404  {object}  map[string]string
// @Router       /api/users/students/{id} [get]
func (h *UserHandler) GetStudent(c echo.Context) error {
	student, err := h.service.GetStudent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, student)
}

// GetInstructor handles GET /api/users/instructors/:id.
func (h *UserHandler) GetInstructor(c echo.Context) error {
	instructor, err := h.service.GetInstructor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, instructor)
}

// ListStudents handles GET /api/users/students.
func (h *UserHandler) ListStudents(c echo.Context) error {
	students, err := h.service.ListStudents(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, students)
}

// ListInstructors handles GET /api/users/instructors.
func (h *UserHandler) ListInstructors(c echo.Context) error {
	instructors, err := h.service.ListInstructors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, instructors)
}

// UpdateStudentProfile handles PUT /api/users/students/:id/profile.
//
// @Summary      Update a student's profile image
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Generated student ID"
// @Param        body  body      updateProfileRequest  true  "New profile URL"
// @Success      200   {object}  domain.Student
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/users/students/{id}/profile [put]
func (h *UserHandler) UpdateStudentProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	student, err := h.service.UpdateStudentProfile(c.Request().Context(), c.Param("id"), req.ProfileURL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, student)
}

// UpdateInstructorProfile handles PUT /api/users/instructors/:id/profile.
func (h *UserHandler) UpdateInstructorProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	instructor, err := h.service.UpdateInstructorProfile(c.Request().Context(), c.Param("id"), req.ProfileURL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, instructor)
}

// IssueToken handles POST /api/users/:id/token. The platform response is
// proxied verbatim so the frontend SDK can connect with a session token
// instead of the master API token.
//
// @Summary      Issue a chat session token
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "Generated user ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/users/{id}/token [post]
func (h *UserHandler) IssueToken(c echo.Context) error {
	raw, err := h.service.IssueSessionToken(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, raw)
}

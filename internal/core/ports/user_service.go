package ports

import (
	"context"
	"encoding/json"

	"github.com/campuslink/campus-chat-api/internal/core/domain"
)

// CreateStudentInput carries all data needed to register a student.
// The generated ID and the derived nickname are not part of the input.
type CreateStudentInput struct {
	Email      string
	FirstName  string
	LastName   string
	ProfileURL string
	StudentID  string
	Course     string
	Year       int
}

// CreateInstructorInput carries all data needed to register an instructor.
type CreateInstructorInput struct {
	Email        string
	FirstName    string
	LastName     string
	ProfileURL   string
	InstructorID string
	Department   string
	Subjects     []string
}

// UserService defines the directory use cases. Every create and profile
// update provisions or mutates the remote platform account first; the
// local record only commits after the remote call succeeds.
type UserService interface {
	CreateStudent(ctx context.Context, in CreateStudentInput) (*domain.Student, error)
	CreateInstructor(ctx context.Context, in CreateInstructorInput) (*domain.Instructor, error)
	GetStudent(ctx context.Context, id string) (*domain.Student, error)
	GetInstructor(ctx context.Context, id string) (*domain.Instructor, error)
	ListStudents(ctx context.Context) ([]domain.Student, error)
	ListInstructors(ctx context.Context) ([]domain.Instructor, error)
	UpdateStudentProfile(ctx context.Context, id, profileURL string) (*domain.Student, error)
	UpdateInstructorProfile(ctx context.Context, id, profileURL string) (*domain.Instructor, error)
	// IssueSessionToken mints a platform session token for a known
	// directory member, so clients never see the master API token.
	IssueSessionToken(ctx context.Context, id string) (json.RawMessage, error)
}

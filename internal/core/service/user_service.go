package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campuslink/campus-chat-api/internal/core/domain"
	"github.com/campuslink/campus-chat-api/internal/core/ports"
)

// UserService implements the directory use cases on top of two in-memory
// collections and the remote chat platform. The write discipline is
// remote-first: platform provisioning must succeed before a local record
// is inserted or mutated. The two steps are not transactional — if the
// process dies in between, local state diverges from the platform and
// there is no reconciliation.
type UserService struct {
	platform    ports.ChatPlatform
	students    ports.Directory[domain.Student]
	instructors ports.Directory[domain.Instructor]
	logger      zerolog.Logger
}

func NewUserService(
	platform ports.ChatPlatform,
	students ports.Directory[domain.Student],
	instructors ports.Directory[domain.Instructor],
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		platform:    platform,
		students:    students,
		instructors: instructors,
		logger:      logger,
	}
}

// CreateStudent generates an identifier, derives the display nickname,
// provisions the platform account, then commits the local record.
func (s *UserService) CreateStudent(ctx context.Context, in ports.CreateStudentInput) (*domain.Student, error) {
	student := domain.Student{
		ID:         uuid.NewString(),
		Email:      in.Email,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Nickname:   domain.StudentNickname(in.StudentID, in.FirstName),
		ProfileURL: in.ProfileURL,
		StudentID:  in.StudentID,
		Course:     in.Course,
		Year:       in.Year,
	}

	if _, err := s.platform.CreateUser(ctx, ports.CreateRemoteUserInput{
		UserID:     student.ID,
		Nickname:   student.Nickname,
		ProfileURL: student.ProfileURL,
	}); err != nil {
		s.logger.Error().Err(err).Str("student_id", in.StudentID).Msg("failed to provision student account")
		return nil, fmt.Errorf("create student: %w", err)
	}

	s.students.Insert(student.ID, student)
	s.logger.Info().Str("id", student.ID).Str("nickname", student.Nickname).Msg("student created")
	return &student, nil
}

// CreateInstructor mirrors CreateStudent for the instructor collection.
func (s *UserService) CreateInstructor(ctx context.Context, in ports.CreateInstructorInput) (*domain.Instructor, error) {
	instructor := domain.Instructor{
		ID:           uuid.NewString(),
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Nickname:     domain.InstructorNickname(in.InstructorID, in.FirstName),
		ProfileURL:   in.ProfileURL,
		InstructorID: in.InstructorID,
		Department:   in.Department,
		Subjects:     in.Subjects,
	}

	if _, err := s.platform.CreateUser(ctx, ports.CreateRemoteUserInput{
		UserID:     instructor.ID,
		Nickname:   instructor.Nickname,
		ProfileURL: instructor.ProfileURL,
	}); err != nil {
		s.logger.Error().Err(err).Str("instructor_id", in.InstructorID).Msg("failed to provision instructor account")
		return nil, fmt.Errorf("create instructor: %w", err)
	}

	s.instructors.Insert(instructor.ID, instructor)
	s.logger.Info().Str("id", instructor.ID).Str("nickname", instructor.Nickname).Msg("instructor created")
	return &instructor, nil
}

func (s *UserService) GetStudent(_ context.Context, id string) (*domain.Student, error) {
	student, ok := s.students.Get(id)
	if !ok {
		return nil, domain.ErrStudentNotFound
	}
	return &student, nil
}

func (s *UserService) GetInstructor(_ context.Context, id string) (*domain.Instructor, error) {
	instructor, ok := s.instructors.Get(id)
	if !ok {
		return nil, domain.ErrInstructorNotFound
	}
	return &instructor, nil
}

func (s *UserService) ListStudents(_ context.Context) ([]domain.Student, error) {
	return s.students.List(), nil
}

func (s *UserService) ListInstructors(_ context.Context) ([]domain.Instructor, error) {
	return s.instructors.List(), nil
}

// UpdateStudentProfile updates the platform account first; the local
// record only changes after the remote call succeeds. Unknown ids fail
// before any remote call is made.
func (s *UserService) UpdateStudentProfile(ctx context.Context, id, profileURL string) (*domain.Student, error) {
	if _, ok := s.students.Get(id); !ok {
		return nil, domain.ErrStudentNotFound
	}

	if _, err := s.platform.UpdateUser(ctx, id, ports.UpdateRemoteUserInput{ProfileURL: profileURL}); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to update student profile remotely")
		return nil, fmt.Errorf("update student profile: %w", err)
	}

	student, ok := s.students.Update(id, func(st *domain.Student) {
		st.ProfileURL = profileURL
	})
	if !ok {
		return nil, domain.ErrStudentNotFound
	}
	return &student, nil
}

func (s *UserService) UpdateInstructorProfile(ctx context.Context, id, profileURL string) (*domain.Instructor, error) {
	if _, ok := s.instructors.Get(id); !ok {
		return nil, domain.ErrInstructorNotFound
	}

	if _, err := s.platform.UpdateUser(ctx, id, ports.UpdateRemoteUserInput{ProfileURL: profileURL}); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to update instructor profile remotely")
		return nil, fmt.Errorf("update instructor profile: %w", err)
	}

	instructor, ok := s.instructors.Update(id, func(in *domain.Instructor) {
		in.ProfileURL = profileURL
	})
	if !ok {
		return nil, domain.ErrInstructorNotFound
	}
	return &instructor, nil
}

// IssueSessionToken proxies platform token issuance for a known
// directory member. The id may belong to either collection.
func (s *UserService) IssueSessionToken(ctx context.Context, id string) (json.RawMessage, error) {
	_, isStudent := s.students.Get(id)
	_, isInstructor := s.instructors.Get(id)
	if !isStudent && !isInstructor {
		return nil, domain.ErrUserNotFound
	}

	raw, err := s.platform.IssueSessionToken(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}
	return raw, nil
}

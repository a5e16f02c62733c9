package domain

import "errors"

var ErrStudentNotFound = errors.New("student not found")
var ErrInstructorNotFound = errors.New("instructor not found")
var ErrUserNotFound = errors.New("user not found")
var ErrRemoteService = errors.New("chat platform request failed")

// Student is a directory record for a student account. ID is a generated
// identifier; StudentID is the natural (university) one. Records live
// only in the in-process directory, never in a database.
type Student struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Nickname   string `json:"nickname"`
	ProfileURL string `json:"profileUrl,omitempty"`
	StudentID  string `json:"studentId"`
	Course     string `json:"course"`
	Year       int    `json:"year"`
}

// Instructor is a directory record for an instructor account.
type Instructor struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Nickname     string   `json:"nickname"`
	ProfileURL   string   `json:"profileUrl,omitempty"`
	InstructorID string   `json:"instructorId"`
	Department   string   `json:"department"`
	Subjects     []string `json:"subjects"`
}

package domain

import "strings"

// Role classifies a chat identity as student or instructor.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
)

// studentPrefix is the identifier convention the whole routing topology
// hangs on: identities look like "Student_<studentId>_<firstName>" or
// "Instructor_<instructorId>_<firstName>".
const studentPrefix = "Student_"

// ClassifyIdentity derives the role from an identity string. Identities
// that do not start with "Student_" classify as instructor, including
// malformed ones — the original convention is preserved deliberately,
// since channel filtering and operator assignment depend on it.
func ClassifyIdentity(identity string) Role {
	if strings.HasPrefix(identity, studentPrefix) {
		return RoleStudent
	}
	return RoleInstructor
}

// StudentNickname derives the canonical display identity for a student.
func StudentNickname(studentID, firstName string) string {
	return "Student_" + studentID + "_" + firstName
}

// InstructorNickname derives the canonical display identity for an instructor.
func InstructorNickname(instructorID, firstName string) string {
	return "Instructor_" + instructorID + "_" + firstName
}

package domain

import "testing"

func TestClassifyIdentity(t *testing.T) {
	cases := []struct {
		identity string
		want     Role
	}{
		{"Student_123_Amy", RoleStudent},
		{"Student_", RoleStudent},
		{"Instructor_9_Lee", RoleInstructor},
		{"anything", RoleInstructor},
		{"student_123_amy", RoleInstructor}, // prefix match is case-sensitive
		{"", RoleInstructor},
		{"STUDENT_1_X", RoleInstructor},
	}

	for _, tc := range cases {
		if got := ClassifyIdentity(tc.identity); got != tc.want {
			t.Errorf("ClassifyIdentity(%q) = %q, want %q", tc.identity, got, tc.want)
		}
	}
}

func TestStudentNickname(t *testing.T) {
	if got := StudentNickname("S1", "Amy"); got != "Student_S1_Amy" {
		t.Errorf("StudentNickname = %q, want %q", got, "Student_S1_Amy")
	}
}

func TestInstructorNickname(t *testing.T) {
	if got := InstructorNickname("I1", "Lee"); got != "Instructor_I1_Lee" {
		t.Errorf("InstructorNickname = %q, want %q", got, "Instructor_I1_Lee")
	}
}

func TestNicknameRoundTripsThroughClassifier(t *testing.T) {
	if ClassifyIdentity(StudentNickname("S1", "Amy")) != RoleStudent {
		t.Error("student nickname must classify as student")
	}
	if ClassifyIdentity(InstructorNickname("I1", "Lee")) != RoleInstructor {
		t.Error("instructor nickname must classify as instructor")
	}
}
